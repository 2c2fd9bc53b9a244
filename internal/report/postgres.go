package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trustlens/review-trust/internal/scoring"
)

// Archive implements the report archive against PostgreSQL.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// NewArchive wraps an open connection pool.
func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db, now: time.Now}
}

// Save upserts a report by url_hash and returns the report id. A fresh
// id is minted on insert; updates keep the existing one.
func (a *Archive) Save(ctx context.Context, url, urlHash, normalizedURL string, rep *scoring.TrustReport, ttlDays int) (string, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	now := a.now().UTC()
	expires := now.AddDate(0, 0, ttlDays)
	reportID := uuid.NewString()

	var id string
	err = a.db.QueryRowContext(ctx, `
		INSERT INTO trust_reports (report_id, url, url_hash, normalized_url, report, ttl_days, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $8)
		ON CONFLICT (url_hash) DO UPDATE SET
			url = EXCLUDED.url,
			normalized_url = EXCLUDED.normalized_url,
			report = EXCLUDED.report,
			ttl_days = EXCLUDED.ttl_days,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
		RETURNING report_id
	`, reportID, url, urlHash, normalizedURL, payload, ttlDays, now, expires).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return id, nil
}

// Get retrieves one archived report by its id.
func (a *Archive) Get(ctx context.Context, reportID string) (*ArchivedReport, error) {
	return a.scanOne(a.db.QueryRowContext(ctx, `
		SELECT report_id, url, url_hash, normalized_url, report, ttl_days, created_at, updated_at, expires_at
		FROM trust_reports
		WHERE report_id = $1
	`, reportID))
}

// GetByHash retrieves the archived report for a URL fingerprint.
func (a *Archive) GetByHash(ctx context.Context, urlHash string) (*ArchivedReport, error) {
	return a.scanOne(a.db.QueryRowContext(ctx, `
		SELECT report_id, url, url_hash, normalized_url, report, ttl_days, created_at, updated_at, expires_at
		FROM trust_reports
		WHERE url_hash = $1
	`, urlHash))
}

func (a *Archive) scanOne(row *sql.Row) (*ArchivedReport, error) {
	var r ArchivedReport
	var payload []byte
	err := row.Scan(&r.ReportID, &r.URL, &r.URLHash, &r.NormalizedURL, &payload,
		&r.TTLDays, &r.CreatedAt, &r.UpdatedAt, &r.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	r.Report = &scoring.TrustReport{}
	if err := json.Unmarshal(payload, r.Report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", r.ReportID, err)
	}
	return &r, nil
}

// sortColumns whitelists the ORDER BY targets accepted from callers.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"expires_at": "expires_at",
}

// List returns report summaries, newest first by the sort column
// (created_at unless the filter names another).
func (a *Archive) List(ctx context.Context, f ListFilter) ([]Summary, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	sortCol, ok := sortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}

	countQ := `SELECT COUNT(*) FROM trust_reports`
	args := []interface{}{}
	if f.RiskLevel != "" {
		countQ += ` WHERE report->>'risk_level' = $1`
		args = append(args, f.RiskLevel)
	}
	var total int
	if err := a.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	q := `
		SELECT report_id, url, (report->>'trust_score')::int, report->>'risk_level', created_at
		FROM trust_reports`
	qArgs := []interface{}{}
	idx := 1
	if f.RiskLevel != "" {
		q += fmt.Sprintf(" WHERE report->>'risk_level' = $%d", idx)
		qArgs = append(qArgs, f.RiskLevel)
		idx++
	}
	q += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", sortCol, idx, idx+1)
	qArgs = append(qArgs, limit, f.Offset)

	rows, err := a.db.QueryContext(ctx, q, qArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ReportID, &s.URL, &s.TrustScore, &s.RiskLevel, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate report rows: %w", err)
	}
	return out, total, nil
}

// Delete removes an archived report, reporting whether it existed.
func (a *Archive) Delete(ctx context.Context, reportID string) (bool, error) {
	res, err := a.db.ExecContext(ctx, `DELETE FROM trust_reports WHERE report_id = $1`, reportID)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	return n > 0, nil
}

// Stats aggregates archive-wide numbers in one round trip plus a
// per-risk breakdown query.
func (a *Archive) Stats(ctx context.Context) (*Stats, error) {
	s := &Stats{RiskBreakdown: map[string]int{}}
	err := a.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE expires_at > NOW()),
		       COALESCE(AVG((report->>'trust_score')::int), 0)
		FROM trust_reports
	`).Scan(&s.TotalReports, &s.ActiveReports, &s.AvgTrustScore)
	if err != nil {
		return nil, fmt.Errorf("report stats: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT report->>'risk_level', COUNT(*)
		FROM trust_reports
		GROUP BY report->>'risk_level'
	`)
	if err != nil {
		return nil, fmt.Errorf("risk breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		s.RiskBreakdown[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate breakdown rows: %w", err)
	}
	return s, nil
}

// Ping verifies database connectivity.
func (a *Archive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
