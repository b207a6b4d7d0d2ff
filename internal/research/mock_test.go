package research

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/justicejet/defensepack/pkg/exa"
)

// --- Exa Mock ---

type mockExaClient struct {
	mock.Mock
}

func (m *mockExaClient) Search(ctx context.Context, req exa.SearchRequest) (*exa.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exa.SearchResponse), args.Error(1)
}

// queryIs matches a SearchRequest by its query string.
func queryIs(q string) any {
	return mock.MatchedBy(func(req exa.SearchRequest) bool { return req.Query == q })
}

// --- Sleep recorder ---

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}
