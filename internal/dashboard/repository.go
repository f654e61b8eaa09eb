// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/deenhub-app/admin-backend/internal/core"
)

// Repository answers the overview counters with direct COUNT queries;
// the dashboard card needs totals only, never rows.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
	CountSubscribedUsers(ctx context.Context) (int, error)
	CountPendingReports(ctx context.Context) (int, error)
	CountOpenQuranRequests(ctx context.Context) (int, error)
	CountMosques(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) count(
	ctx context.Context,
	label, query string,
) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", label, err)
	}
	return total, nil
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM user_profiles`)
}

func (r *repository) CountSubscribedUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "subscribed users",
		`SELECT COUNT(*) FROM user_profiles WHERE has_subscription = TRUE`)
}

func (r *repository) CountPendingReports(ctx context.Context) (int, error) {
	return r.count(ctx, "pending reports",
		`SELECT COUNT(*) FROM reports WHERE status = 'pending'`)
}

func (r *repository) CountOpenQuranRequests(ctx context.Context) (int, error) {
	return r.count(ctx, "open quran requests",
		`SELECT COUNT(*) FROM free_quran_requests
		 WHERE status IN ('requested', 'processing')`)
}

func (r *repository) CountMosques(ctx context.Context) (int, error) {
	return r.count(ctx, "mosques", `SELECT COUNT(*) FROM mosques_metadata`)
}
