package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactName(t *testing.T) {
	assert.Equal(t, "Pr***", RedactName("Priya Sharma"))
	assert.Equal(t, "***", RedactName("Al"))
	assert.Equal(t, "***", RedactName("  "))
}

func TestRedactPIIValue(t *testing.T) {
	assert.Equal(t, "jo***@example.com", redactPIIValue("email", "john@example.com"))
	assert.Equal(t, "Al***", redactPIIValue("reviewer_name", "Alice Kumar"))
	assert.Equal(t, "flagged by jo***@example.com", redactPIIValue("note", "flagged by john@example.com"))
}
