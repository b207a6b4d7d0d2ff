package pipeline

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/justicejet/defensepack/internal/model"
)

// --- Researcher Mock ---

type mockResearcher struct {
	mock.Mock
}

func (m *mockResearcher) Research(ctx context.Context, terms []string) []model.ResearchResult {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.ResearchResult)
}

// --- Searcher Mock ---

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Query(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse {
	args := m.Called(ctx, query, jurisdiction, caseType)
	return args.Get(0).(model.SearchResponse)
}

// --- Completer Mock ---

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, job model.PromptJob) (model.CompletionResult, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(model.CompletionResult), args.Error(1)
}

func (m *mockCompleter) CompleteWithSystem(ctx context.Context, name, system, user string) (model.CompletionResult, error) {
	args := m.Called(ctx, name, system, user)
	return args.Get(0).(model.CompletionResult), args.Error(1)
}

// jobIs matches a PromptJob by name.
func jobIs(name model.JobName) any {
	return mock.MatchedBy(func(job model.PromptJob) bool { return job.Name == name })
}

// --- Sleep recorder ---

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}
