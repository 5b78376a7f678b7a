// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockSummarizer is a mock implementation of aisummary.Summarizer.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Execute(ctx context.Context, input models.AiSummaryInput) (*models.AiSummaryResult, error) {
	args := m.Called(ctx, input)

	result, _ := args.Get(0).(*models.AiSummaryResult)

	return result, args.Error(1)
}
