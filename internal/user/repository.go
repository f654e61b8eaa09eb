// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Profile, int, error)
	ListAllForStats(ctx context.Context) ([]StatsRow, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, userID string) error
}

// StatsRow is the projection the stats scan needs; pulling only these
// two columns keeps the full-table read cheap.
type StatsRow struct {
	SubscriptionStatus string    `db:"subscription_status"`
	CreatedAt          time.Time `db:"created_at"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Profile, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argn := 1

	if params.Search != "" {
		where += fmt.Sprintf(
			" AND (full_name ILIKE $%d OR email ILIKE $%d)",
			argn, argn,
		)
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argn++
	}
	if params.SubscriptionStatus != "" {
		where += fmt.Sprintf(" AND subscription_status = $%d", argn)
		args = append(args, params.SubscriptionStatus)
		argn++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM user_profiles" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	// Sort column and direction were whitelisted in Normalize.
	query := fmt.Sprintf(`
		SELECT id, user_id, email, full_name, has_subscription,
		       subscription_status, subscription_expiry, ai_usage_data,
		       created_at, updated_at
		FROM user_profiles%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, sortColumns[params.SortBy], params.SortOrder, argn, argn+1,
	)
	args = append(args, params.Limit, params.Offset())

	profiles := []Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return profiles, total, nil
}

func (r *repository) ListAllForStats(ctx context.Context) ([]StatsRow, error) {
	query := `SELECT subscription_status, created_at FROM user_profiles`

	rows := []StatsRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users for stats: %w", err)
	}

	return rows, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, has_subscription,
		       subscription_status, subscription_expiry, ai_usage_data,
		       created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`

	var profile Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO user_profiles (
			user_id, email, full_name, has_subscription,
			subscription_status, subscription_expiry
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, ai_usage_data, created_at, updated_at`

	err := r.db.GetContext(
		ctx,
		profile,
		query,
		profile.UserID,
		profile.Email,
		profile.FullName,
		profile.HasSubscription,
		profile.SubscriptionStatus,
		profile.SubscriptionExpiry,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create user profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user profile: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, profile *Profile) error {
	query := `
		UPDATE user_profiles
		SET full_name = $2,
		    has_subscription = $3,
		    subscription_status = $4,
		    subscription_expiry = $5,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`

	err := r.db.GetContext(
		ctx,
		&profile.UpdatedAt,
		query,
		profile.UserID,
		profile.FullName,
		profile.HasSubscription,
		profile.SubscriptionStatus,
		profile.SubscriptionExpiry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM user_profiles WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete user profile: %w", core.ErrNotFound)
	}

	return nil
}
