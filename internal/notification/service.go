// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"firebase.google.com/go/v4/messaging"

	"github.com/deenhub-app/admin-backend/internal/core"
	"github.com/deenhub-app/admin-backend/internal/push"
)

type Service struct {
	tokens TokenRepository
	client push.Client
}

func NewService(tokens TokenRepository, client push.Client) *Service {
	return &Service{tokens: tokens, client: client}
}

// Send dispatches a notification to a single token, a topic, or every
// registered device. Target defaults to the broadcast.
func (s *Service) Send(
	ctx context.Context,
	req SendRequest,
) (*DispatchResult, error) {
	switch req.Target {
	case TargetSingle, TargetToken:
		if req.Token == "" {
			return nil, fmt.Errorf("single target: %w", core.ErrInvalidInput)
		}
		return s.sendOne(ctx, req, req.Token)
	case TargetTopic:
		if req.Topic == "" {
			return nil, fmt.Errorf("topic target: %w", core.ErrInvalidInput)
		}
		return s.sendTopic(ctx, req)
	case TargetAll, "":
		return s.broadcast(ctx, req)
	default:
		return nil, fmt.Errorf("send target %q: %w", req.Target, core.ErrInvalidInput)
	}
}

func (s *Service) sendOne(
	ctx context.Context,
	req SendRequest,
	token string,
) (*DispatchResult, error) {
	message := &messaging.Message{
		Token:        token,
		Notification: push.Notification(req.Title, req.Body),
		Data:         req.Data,
		Android:      push.AndroidConfig(),
		APNS:         push.APNSConfig(req.Title, req.Body),
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return &DispatchResult{TotalTokens: 1, FailureCount: 1}, err
	}

	return &DispatchResult{TotalTokens: 1, SuccessCount: 1}, nil
}

func (s *Service) sendTopic(
	ctx context.Context,
	req SendRequest,
) (*DispatchResult, error) {
	message := &messaging.Message{
		Topic:        req.Topic,
		Notification: push.Notification(req.Title, req.Body),
		Data:         req.Data,
		Android:      push.AndroidConfig(),
		APNS:         push.APNSConfig(req.Title, req.Body),
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return &DispatchResult{FailureCount: 1}, err
	}

	return &DispatchResult{SuccessCount: 1}, nil
}

// broadcast fans the token list out in multicast batches dispatched
// concurrently, then gathers the per-batch outcomes. A batch whose
// call is rejected outright counts every token in it as failed; a
// batch that partially fails contributes its per-token results and
// queues the rejected tokens for pruning.
func (s *Service) broadcast(
	ctx context.Context,
	req SendRequest,
) (*DispatchResult, error) {
	tokens, err := s.tokens.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &DispatchResult{}, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		result  = DispatchResult{TotalTokens: len(tokens)}
		invalid []string
	)

	for start := 0; start < len(tokens); start += push.MulticastLimit {
		end := min(start+push.MulticastLimit, len(tokens))
		batch := tokens[start:end]

		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()

			message := &messaging.MulticastMessage{
				Tokens:       batch,
				Notification: push.Notification(req.Title, req.Body),
				Data:         req.Data,
				Android:      push.AndroidConfig(),
				APNS:         push.APNSConfig(req.Title, req.Body),
			}

			resp, err := s.client.SendMulticast(ctx, message)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				slog.Error("multicast batch rejected",
					"batch_size", len(batch),
					"error", err,
				)
				result.FailureCount += len(batch)
				return
			}

			result.SuccessCount += resp.SuccessCount
			result.FailureCount += resp.FailureCount
			for i, sendResp := range resp.Responses {
				if !sendResp.Success {
					invalid = append(invalid, batch[i])
				}
			}
		}(batch)
	}

	wg.Wait()

	s.pruneTokens(ctx, invalid)

	return &result, nil
}

// pruneTokens drops rejected registrations so the next broadcast does
// not pay for them again. Best effort; a prune failure never fails the
// send that discovered the bad tokens.
func (s *Service) pruneTokens(ctx context.Context, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	deleted, err := s.tokens.DeleteTokens(ctx, tokens)
	if err != nil {
		slog.Warn("failed to prune invalid tokens",
			"count", len(tokens),
			"error", err,
		)
		return
	}

	slog.Info("pruned invalid fcm tokens", "deleted", deleted)
}

// UserToken returns the user's most recently refreshed device token,
// or ErrNotFound when the user has no registered device.
func (s *Service) UserToken(ctx context.Context, userID string) (string, error) {
	return s.tokens.LatestForUser(ctx, userID)
}

const suspensionTitle = "Account Suspended"

// SendSuspension notifies a suspended user's current device. The user
// must have a registered token; admins see a 404 otherwise and can
// fall back to email.
func (s *Service) SendSuspension(
	ctx context.Context,
	req SuspensionRequest,
) error {
	token, err := s.tokens.LatestForUser(ctx, req.UserID)
	if err != nil {
		return err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Violation of terms of service"
	}
	body := fmt.Sprintf(
		"Your account has been suspended. Reason: %s Contact admin for more information.",
		reason,
	)

	result, err := s.sendOne(ctx, SendRequest{
		Title: suspensionTitle,
		Body:  body,
		Data: map[string]string{
			"type":     "account_suspension",
			"admin_id": req.AdminID,
		},
	}, token)
	if err != nil {
		if result != nil && result.FailureCount > 0 {
			slog.Error("suspension notification failed",
				"user_id", req.UserID,
				"error", err,
			)
		}
		return err
	}

	return nil
}
