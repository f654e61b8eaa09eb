// AngelaMos | 2026
// service_test.go

package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenhub-app/admin-backend/internal/core"
	"github.com/deenhub-app/admin-backend/internal/push"
)

type fakeTokenRepo struct {
	tokens       []string
	latestByUser map[string]string
	deleted      []string
	deleteErr    error
}

func (f *fakeTokenRepo) LatestForUser(
	_ context.Context,
	userID string,
) (string, error) {
	if token, ok := f.latestByUser[userID]; ok {
		return token, nil
	}
	return "", core.ErrNotFound
}

func (f *fakeTokenRepo) ListAll(context.Context) ([]string, error) {
	return f.tokens, nil
}

func (f *fakeTokenRepo) DeleteTokens(
	_ context.Context,
	tokens []string,
) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, tokens...)
	return len(tokens), nil
}

type fakePushClient struct {
	mu           sync.Mutex
	sent         []*messaging.Message
	batches      [][]string
	failBatch    int
	badTokens    map[string]bool
	sendErr      error
	multicastErr error
}

func (f *fakePushClient) Send(
	_ context.Context,
	message *messaging.Message,
) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, message)
	return "msg-id", nil
}

func (f *fakePushClient) SendMulticast(
	_ context.Context,
	message *messaging.MulticastMessage,
) (*messaging.BatchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, message.Tokens)

	if f.multicastErr != nil && len(f.batches) == f.failBatch {
		return nil, f.multicastErr
	}

	resp := &messaging.BatchResponse{}
	for _, token := range message.Tokens {
		if f.badTokens[token] {
			resp.FailureCount++
			resp.Responses = append(resp.Responses, &messaging.SendResponse{
				Success: false,
				Error:   errors.New("registration-token-not-registered"),
			})
			continue
		}
		resp.SuccessCount++
		resp.Responses = append(resp.Responses, &messaging.SendResponse{
			Success:   true,
			MessageID: "msg-" + token,
		})
	}

	return resp, nil
}

func makeTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%04d", i)
	}
	return tokens
}

func TestBroadcastSplitsIntoBatches(t *testing.T) {
	tokens := makeTokens(push.MulticastLimit + 250)
	repo := &fakeTokenRepo{tokens: tokens}
	client := &fakePushClient{}
	svc := NewService(repo, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title: "Eid Mubarak",
		Body:  "Eid prayers at 8am",
	})
	require.NoError(t, err)

	assert.Equal(t, len(tokens), result.TotalTokens)
	assert.Equal(t, len(tokens), result.SuccessCount)
	assert.Zero(t, result.FailureCount)

	require.Len(t, client.batches, 2)
	sizes := []int{len(client.batches[0]), len(client.batches[1])}
	assert.ElementsMatch(t, []int{push.MulticastLimit, 250}, sizes)
}

func TestBroadcastCountsRejectedBatchAsFailed(t *testing.T) {
	tokens := makeTokens(push.MulticastLimit + 100)
	repo := &fakeTokenRepo{tokens: tokens}
	client := &fakePushClient{
		multicastErr: errors.New("unavailable"),
		failBatch:    1,
	}
	svc := NewService(repo, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title: "t",
		Body:  "b",
	})
	require.NoError(t, err, "a rejected batch degrades the result, not the call")

	assert.Equal(t, len(tokens), result.TotalTokens)
	assert.Equal(t, len(tokens), result.SuccessCount+result.FailureCount)
	assert.NotZero(t, result.FailureCount)
	assert.Empty(t, repo.deleted,
		"a whole-batch error says nothing about individual tokens")
}

func TestBroadcastPrunesInvalidTokens(t *testing.T) {
	repo := &fakeTokenRepo{tokens: []string{"good-1", "bad-1", "good-2", "bad-2"}}
	client := &fakePushClient{
		badTokens: map[string]bool{"bad-1": true, "bad-2": true},
	}
	svc := NewService(repo, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title: "t",
		Body:  "b",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	assert.ElementsMatch(t, []string{"bad-1", "bad-2"}, repo.deleted)
}

func TestBroadcastPruneFailureDoesNotFailSend(t *testing.T) {
	repo := &fakeTokenRepo{
		tokens:    []string{"bad-1"},
		deleteErr: errors.New("delete failed"),
	}
	client := &fakePushClient{badTokens: map[string]bool{"bad-1": true}}
	svc := NewService(repo, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title: "t",
		Body:  "b",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FailureCount)
}

func TestBroadcastNoTokens(t *testing.T) {
	repo := &fakeTokenRepo{}
	client := &fakePushClient{}
	svc := NewService(repo, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title: "t",
		Body:  "b",
	})
	require.NoError(t, err)

	assert.Zero(t, result.TotalTokens)
	assert.Empty(t, client.batches, "no batches dispatched for an empty store")
}

func TestSendSingleToken(t *testing.T) {
	client := &fakePushClient{}
	svc := NewService(&fakeTokenRepo{}, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title:  "t",
		Body:   "b",
		Target: TargetToken,
		Token:  "device-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "device-1", client.sent[0].Token)
}

func TestSendSingleTargetLiteral(t *testing.T) {
	client := &fakePushClient{}
	svc := NewService(&fakeTokenRepo{}, client)

	result, err := svc.Send(context.Background(), SendRequest{
		Title:  "t",
		Body:   "b",
		Target: TargetSingle,
		Token:  "device-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "device-1", client.sent[0].Token)
}

func TestSendTokenTargetRequiresToken(t *testing.T) {
	svc := NewService(&fakeTokenRepo{}, &fakePushClient{})

	_, err := svc.Send(context.Background(), SendRequest{
		Title:  "t",
		Body:   "b",
		Target: TargetToken,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSendTopic(t *testing.T) {
	client := &fakePushClient{}
	svc := NewService(&fakeTokenRepo{}, client)

	_, err := svc.Send(context.Background(), SendRequest{
		Title:  "t",
		Body:   "b",
		Target: TargetTopic,
		Topic:  "announcements",
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "announcements", client.sent[0].Topic)
	assert.Empty(t, client.sent[0].Token)
}

func TestSendSuspensionBody(t *testing.T) {
	repo := &fakeTokenRepo{
		latestByUser: map[string]string{"u1": "device-1"},
	}
	client := &fakePushClient{}
	svc := NewService(repo, client)

	err := svc.SendSuspension(context.Background(), SuspensionRequest{
		UserID:  "u1",
		AdminID: "admin-1",
		Reason:  "Spam",
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	msg := client.sent[0]
	assert.Equal(t, "device-1", msg.Token)
	assert.Equal(t, suspensionTitle, msg.Notification.Title)
	assert.True(t, strings.HasPrefix(
		msg.Notification.Body,
		"Your account has been suspended. Reason: Spam",
	))
	assert.Equal(t, "account_suspension", msg.Data["type"])
	assert.Equal(t, "admin-1", msg.Data["admin_id"])
}

func TestSendSuspensionWithoutDevice(t *testing.T) {
	svc := NewService(&fakeTokenRepo{}, &fakePushClient{})

	err := svc.SendSuspension(context.Background(), SuspensionRequest{
		UserID:  "u1",
		AdminID: "admin-1",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUserToken(t *testing.T) {
	repo := &fakeTokenRepo{
		latestByUser: map[string]string{"u1": "device-1"},
	}
	svc := NewService(repo, &fakePushClient{})

	token, err := svc.UserToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "device-1", token)

	_, err = svc.UserToken(context.Background(), "nobody")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
