package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/spyfall/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetErrorMessage classifies a failed command and returns a user-friendly message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetPhaseMessage returns an announcement for a phase change
	GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error)

	// GetRoundSummaryMessage describes the outcome of a won round
	GetRoundSummaryMessage(ctx context.Context, input *GetRoundSummaryMessageInput) (*GetRoundSummaryMessageOutput, error)
}
