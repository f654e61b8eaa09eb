// AngelaMos | 2026
// service.go

package authz

import (
	"context"
	"log/slog"

	"github.com/deenhub-app/admin-backend/internal/identity"
)

// Decision is the gate's answer for a subject id. Denial is a normal,
// representable outcome, not an error: lookup failures and absent or
// inactive rows all collapse to Allowed=false.
type Decision struct {
	Allowed   bool
	AdminUser *AdminUser
}

type Service struct {
	repo     Repository
	provider identity.Provider
}

func NewService(repo Repository, provider identity.Provider) *Service {
	return &Service{repo: repo, provider: provider}
}

func (s *Service) Verify(ctx context.Context, userID string) Decision {
	if userID == "" {
		return Decision{}
	}

	admin, err := s.repo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return Decision{}
	}

	return Decision{Allowed: true, AdminUser: admin}
}

// VerifyAdmin adapts Verify to the middleware's gate interface.
func (s *Service) VerifyAdmin(
	ctx context.Context,
	userID string,
) (bool, string, error) {
	decision := s.Verify(ctx, userID)
	if !decision.Allowed {
		return false, "", nil
	}
	return true, decision.AdminUser.Role, nil
}

// CallbackOutcome tells the handler where to land the browser after
// the code exchange: the dashboard for admins, the unauthorized page
// for everyone else.
type CallbackOutcome struct {
	Allowed bool
	UserID  string
}

// HandleCallback exchanges the one-time code for a session, then runs
// the gate before the subject ever reaches a protected page. A denied
// subject's freshly minted session is signed out so an authenticated
// non-admin cannot keep a live session.
func (s *Service) HandleCallback(
	ctx context.Context,
	code string,
) (CallbackOutcome, error) {
	session, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return CallbackOutcome{}, err
	}

	decision := s.Verify(ctx, session.User.ID)
	if !decision.Allowed {
		if err := s.provider.SignOut(ctx, session.AccessToken); err != nil {
			slog.Warn("failed to sign out non-admin session",
				"user_id", session.User.ID,
				"error", err,
			)
		}
		return CallbackOutcome{Allowed: false, UserID: session.User.ID}, nil
	}

	return CallbackOutcome{Allowed: true, UserID: session.User.ID}, nil
}
