package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/justicejet/defensepack/internal/model"
)

// --- Service Mock ---

type mockService struct {
	mock.Mock
}

func (m *mockService) Run(ctx context.Context, req model.CaseRequest) (*model.DefensePack, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DefensePack), args.Error(1)
}

func (m *mockService) Analyze(ctx context.Context, text string, depth model.AnalysisDepth) (string, error) {
	args := m.Called(ctx, text, depth)
	return args.String(0), args.Error(1)
}

func (m *mockService) Search(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse {
	args := m.Called(ctx, query, jurisdiction, caseType)
	return args.Get(0).(model.SearchResponse)
}

// --- Extractor Mock ---

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) ExtractText(ctx context.Context, doc model.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}
