// AngelaMos | 2026
// dto.go

package notification

type SendRequest struct {
	Title  string            `json:"title"  validate:"required,max=200"`
	Body   string            `json:"body"   validate:"required,max=1000"`
	Target string            `json:"target" validate:"omitempty,oneof=single token topic all"`
	Token  string            `json:"token"  validate:"omitempty"`
	Topic  string            `json:"topic"  validate:"omitempty,max=100"`
	Data   map[string]string `json:"data"   validate:"omitempty"`
}

type SuspensionRequest struct {
	UserID  string `json:"user_id"  validate:"required"`
	AdminID string `json:"admin_id" validate:"required"`
	Reason  string `json:"reason"   validate:"omitempty,max=500"`
}

// DispatchResult aggregates a broadcast across all its batches.
type DispatchResult struct {
	TotalTokens  int `json:"totalTokens"`
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

type SendResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Details *DispatchResult `json:"details,omitempty"`
}

type UserTokenResponse struct {
	Success bool    `json:"success"`
	Token   *string `json:"token"`
}
