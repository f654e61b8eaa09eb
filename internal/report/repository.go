// AngelaMos | 2026
// repository.go

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Report, int, error)
	ListAllForStats(ctx context.Context) ([]StatsRow, error)
	FindReporters(ctx context.Context, userIDs []string) ([]Reporter, error)
	GetByID(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, report *Report) error
}

type StatsRow struct {
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const reportColumns = `id, reporter_id, report_type, category, title,
	description, content_id, content_data, context_data, status,
	admin_notes, resolved_by, resolved_at, created_at, updated_at`

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Report, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argn := 1

	if params.Search != "" {
		where += fmt.Sprintf(
			" AND (title ILIKE $%d OR description ILIKE $%d)",
			argn, argn,
		)
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argn++
	}
	if params.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argn)
		args = append(args, params.Status)
		argn++
	}
	if params.ReportType != "" {
		where += fmt.Sprintf(" AND report_type = $%d", argn)
		args = append(args, params.ReportType)
		argn++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM reports" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		reportColumns, where, argn, argn+1,
	)
	args = append(args, params.Limit, params.Offset())

	reports := []Report{}
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	return reports, total, nil
}

func (r *repository) ListAllForStats(ctx context.Context) ([]StatsRow, error) {
	query := `SELECT status, created_at FROM reports`

	rows := []StatsRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list reports for stats: %w", err)
	}

	return rows, nil
}

// FindReporters fetches the profile slice for a page of reporter ids.
// The id set comes from an already-fetched report page, so it is small.
func (r *repository) FindReporters(
	ctx context.Context,
	userIDs []string,
) ([]Reporter, error) {
	if len(userIDs) == 0 {
		return []Reporter{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT user_id, email, full_name FROM user_profiles WHERE user_id IN (?)`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("build reporter query: %w", err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	reporters := []Reporter{}
	if err := r.db.SelectContext(ctx, &reporters, query, args...); err != nil {
		return nil, fmt.Errorf("find reporters: %w", err)
	}

	return reporters, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Report, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM reports WHERE id = $1`,
		reportColumns,
	)

	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	return &report, nil
}

func (r *repository) Update(ctx context.Context, report *Report) error {
	query := `
		UPDATE reports
		SET status = $2,
		    admin_notes = $3,
		    resolved_by = $4,
		    resolved_at = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(
		ctx,
		&report.UpdatedAt,
		query,
		report.ID,
		report.Status,
		report.AdminNotes,
		report.ResolvedBy,
		report.ResolvedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update report: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}

	return nil
}
