// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/deenhub-app/admin-backend/internal/core"
)

// TokenRepository reads and prunes the device token store. The token
// table is provisioned by the mobile backend, so every method treats
// an undefined table as an empty store rather than a failure.
type TokenRepository interface {
	LatestForUser(ctx context.Context, userID string) (string, error)
	ListAll(ctx context.Context) ([]string, error)
	DeleteTokens(ctx context.Context, tokens []string) (int, error)
}

type tokenRepository struct {
	db core.DBTX
}

func NewTokenRepository(db core.DBTX) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) LatestForUser(
	ctx context.Context,
	userID string,
) (string, error) {
	query := `
		SELECT fcm_token
		FROM user_fcm_tokens
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	var token string
	err := r.db.GetContext(ctx, &token, query, userID)
	if errors.Is(err, sql.ErrNoRows) || core.IsUndefinedTable(err) {
		return "", fmt.Errorf("latest token for user: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("latest token for user: %w", err)
	}

	return token, nil
}

func (r *tokenRepository) ListAll(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT fcm_token FROM user_fcm_tokens WHERE fcm_token <> ''`

	tokens := []string{}
	err := r.db.SelectContext(ctx, &tokens, query)
	if core.IsUndefinedTable(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list all tokens: %w", err)
	}

	return tokens, nil
}

// DeleteTokens removes rows whose token FCM has rejected. An empty
// list is a no-op and a missing table deletes nothing.
func (r *tokenRepository) DeleteTokens(
	ctx context.Context,
	tokens []string,
) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		`DELETE FROM user_fcm_tokens WHERE fcm_token IN (?)`,
		tokens,
	)
	if err != nil {
		return 0, fmt.Errorf("build token delete query: %w", err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if core.IsUndefinedTable(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}

	return int(affected), nil
}
