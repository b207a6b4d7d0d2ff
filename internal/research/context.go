package research

import (
	"fmt"
	"strings"

	"github.com/justicejet/defensepack/internal/model"
)

// Context flattens research results into the block interpolated into the
// defense pack prompts: one `Research for "<term>": <title> - <text>; ...`
// line per term, separated by blank lines.
func Context(results []model.ResearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		hits := make([]string, 0, len(r.Hits))
		for _, h := range r.Hits {
			hits = append(hits, h.Title+" - "+h.Excerpt)
		}
		blocks = append(blocks, fmt.Sprintf(`Research for "%s": %s`, r.Term, strings.Join(hits, "; ")))
	}
	return strings.Join(blocks, "\n\n")
}
