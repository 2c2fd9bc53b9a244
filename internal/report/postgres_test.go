package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/review-trust/internal/scoring"
)

func setupArchive(t *testing.T) (*Archive, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewArchive(db), mock
}

func sampleReport() *scoring.TrustReport {
	return &scoring.TrustReport{
		TrustScore:         85,
		FakeReviewsPercent: 15,
		RiskLevel:          scoring.RiskLow,
		Confidence:         0.9,
	}
}

func TestSaveUpsert(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`INSERT INTO trust_reports`).
		WithArgs(sqlmock.AnyArg(), "https://amazon.in/dp/X?ref=x", "hash1", "https://amazon.in/dp/X",
			sqlmock.AnyArg(), 7, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"report_id"}).AddRow("rid-1"))

	id, err := a.Save(context.Background(), "https://amazon.in/dp/X?ref=x", "hash1", "https://amazon.in/dp/X", sampleReport(), 7)
	require.NoError(t, err)
	assert.Equal(t, "rid-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func archiveRow(t *testing.T, reportID string) *sqlmock.Rows {
	t.Helper()
	payload, err := json.Marshal(sampleReport())
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"report_id", "url", "url_hash", "normalized_url", "report",
		"ttl_days", "created_at", "updated_at", "expires_at",
	}).AddRow(reportID, "https://amazon.in/dp/X", "hash1", "https://amazon.in/dp/X",
		payload, 7, now, now, now.AddDate(0, 0, 7))
}

func TestGet(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM trust_reports\s+WHERE report_id`).
		WithArgs("rid-1").
		WillReturnRows(archiveRow(t, "rid-1"))

	got, err := a.Get(context.Background(), "rid-1")
	require.NoError(t, err)
	assert.Equal(t, "rid-1", got.ReportID)
	assert.Equal(t, 85, got.Report.TrustScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM trust_reports\s+WHERE report_id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := a.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trust_reports`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`(?s)SELECT report_id, url,.*FROM trust_reports ORDER BY created_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "url", "trust_score", "risk_level", "created_at"}).
			AddRow("rid-2", "https://a.example/p/2", 72, "medium", time.Now()).
			AddRow("rid-1", "https://a.example/p/1", 85, "low", time.Now()))

	out, total, err := a.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, out, 2)
	assert.Equal(t, "rid-2", out[0].ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilteredByRisk(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trust_reports WHERE`).
		WithArgs("critical").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT report_id, url,.*WHERE report->>'risk_level'`).
		WithArgs("critical", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "url", "trust_score", "risk_level", "created_at"}).
			AddRow("rid-9", "https://a.example/p/9", 20, "critical", time.Now()))

	out, total, err := a.List(context.Background(), ListFilter{RiskLevel: "critical", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)
	assert.Equal(t, "critical", out[0].RiskLevel)
}

func TestListSortColumn(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trust_reports`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT report_id, url,.*ORDER BY expires_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "url", "trust_score", "risk_level", "created_at"}).
			AddRow("rid-1", "https://a.example/p/1", 85, "low", time.Now()))

	_, _, err := a.List(context.Background(), ListFilter{SortBy: "expires_at"})
	require.NoError(t, err)

	// Unknown columns fall back to created_at rather than reaching SQL.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trust_reports`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)SELECT report_id, url,.*ORDER BY created_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "url", "trust_score", "risk_level", "created_at"}))

	_, _, err = a.List(context.Background(), ListFilter{SortBy: "url; DROP TABLE trust_reports"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectExec(`DELETE FROM trust_reports WHERE report_id`).
		WithArgs("rid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	existed, err := a.Delete(context.Background(), "rid-1")
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestStats(t *testing.T) {
	a, mock := setupArchive(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\),`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "active", "avg"}).AddRow(10, 8, 63.5))
	mock.ExpectQuery(`GROUP BY report->>'risk_level'`).
		WillReturnRows(sqlmock.NewRows([]string{"risk_level", "count"}).
			AddRow("low", 5).AddRow("medium", 3).AddRow("critical", 2))

	s, err := a.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, s.TotalReports)
	assert.Equal(t, 8, s.ActiveReports)
	assert.InDelta(t, 63.5, s.AvgTrustScore, 0.001)
	assert.Equal(t, 5, s.RiskBreakdown["low"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
