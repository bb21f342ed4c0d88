package service

import (
	"context"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/stretchr/testify/mock"
)

type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) AnalyzeProductImage(ctx context.Context, imageURL string, categories []string) (*ImageAnalysis, error) {
	args := m.Called(ctx, imageURL, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ImageAnalysis), args.Error(1)
}

func (m *MockAIService) SuggestDescription(ctx context.Context, req DescriptionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) GenerateImagePrompt(ctx context.Context, req ImagePromptRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) RecommendProducts(ctx context.Context, product model.Product, candidates []model.Product, limit int) ([]string, error) {
	args := m.Called(ctx, product, candidates, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockImageDeleter struct {
	mock.Mock
}

func (m *MockImageDeleter) DeleteImage(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
