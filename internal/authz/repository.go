// AngelaMos | 2026
// repository.go

package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Repository interface {
	FindActiveByUserID(ctx context.Context, userID string) (*AdminUser, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByUserID(
	ctx context.Context,
	userID string,
) (*AdminUser, error) {
	query := `
		SELECT id, user_id, role, permissions, is_active, created_by,
		       created_at, updated_at
		FROM admin_users
		WHERE user_id = $1 AND is_active = TRUE`

	var admin AdminUser
	err := r.db.GetContext(ctx, &admin, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find admin user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}

	return &admin, nil
}
