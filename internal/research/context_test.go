package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justicejet/defensepack/internal/model"
)

func TestContext(t *testing.T) {
	t.Parallel()
	results := []model.ResearchResult{
		{Term: "CA eviction defense", Hits: []model.Hit{
			{Title: "Eviction Defense", Excerpt: "answer within 5 days"},
			{Title: "Unlawful Detainer", Excerpt: "summary proceeding"},
		}},
		{Term: "CA habitability defense", Hits: []model.Hit{
			{Title: "Green v. Superior Court", Excerpt: "implied warranty"},
		}},
	}

	want := `Research for "CA eviction defense": Eviction Defense - answer within 5 days; Unlawful Detainer - summary proceeding` +
		"\n\n" +
		`Research for "CA habitability defense": Green v. Superior Court - implied warranty`
	assert.Equal(t, want, Context(results))
}

func TestContext_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Context(nil))
}
