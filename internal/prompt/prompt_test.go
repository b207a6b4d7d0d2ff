package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justicejet/defensepack/internal/model"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "empty", text: "", max: 10, want: ""},
		{name: "under", text: "short", max: 10, want: "short"},
		{name: "at_boundary", text: "0123456789", max: 10, want: "0123456789"},
		{name: "over", text: "0123456789ABC", max: 10, want: "0123456789" + TruncationMarker},
		{name: "disabled", text: "0123456789ABC", max: 0, want: "0123456789ABC"},
		{name: "multibyte_under", text: "§§§§§", max: 5, want: "§§§§§"},
		{name: "multibyte_over", text: "§§§§§§", max: 5, want: "§§§§§" + TruncationMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Truncate(tt.text, tt.max))
		})
	}
}

func TestTruncate_ExactLength(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("a", PackMaxInput+500)

	got := Truncate(text, PackMaxInput)
	require.True(t, strings.HasSuffix(got, TruncationMarker))
	assert.Equal(t, PackMaxInput, utf8.RuneCountInString(strings.TrimSuffix(got, TruncationMarker)))
}

func TestTruncate_IdempotentAtBoundary(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("x", AnalysisMaxInput)
	assert.Equal(t, text, Truncate(Truncate(text, AnalysisMaxInput), AnalysisMaxInput))
}

func TestBuild_OrderAndNames(t *testing.T) {
	t.Parallel()
	jobs := Build(model.NewCaseRequest("doc", "CA", "EVICTION"), "ctx")

	require.Len(t, jobs, 4)
	for i, name := range model.JobNames() {
		assert.Equal(t, name, jobs[i].Name)
		assert.NotEmpty(t, jobs[i].Prompt)
	}
}

func TestBuild_InterpolatesVerbatim(t *testing.T) {
	t.Parallel()
	doc := "UNLAWFUL DETAINER filed 03/01/2024 under Cal. Civ. Proc. Code § 1161"
	research := `Research for "CA eviction defense": Green v. Superior Court - warranty of habitability`
	jobs := Build(model.NewCaseRequest(doc, "ny", "debt"), research)

	for _, job := range jobs {
		assert.True(t, strings.HasSuffix(job.Prompt, "Case Documents: "+doc), job.Name)
		assert.Contains(t, job.Prompt, research, job.Name)
		assert.NotContains(t, job.Prompt, "%!", job.Name)
	}

	byName := make(map[model.JobName]string)
	for _, job := range jobs {
		byName[job.Name] = job.Prompt
	}
	assert.Contains(t, byName[model.JobDefinitions], "*Jurisdiction: NY*")
	assert.Contains(t, byName[model.JobDefinitions], "Answer due: [X] days from service (NY rules)")
	assert.Contains(t, byName[model.JobDefinitions], "deadlines for NY DEBT cases")
	assert.Contains(t, byName[model.JobFlashcards], "## Legal Research Context")
	assert.Contains(t, byName[model.JobMCQ], "## Current Legal Research")
	assert.Contains(t, byName[model.JobSummary], "## Legal Precedents & Research")
}

func TestBuild_EmptyInputsPassThrough(t *testing.T) {
	t.Parallel()
	jobs := Build(model.CaseRequest{}, "")
	require.Len(t, jobs, 4)
	for _, job := range jobs {
		assert.True(t, strings.HasSuffix(job.Prompt, "Case Documents: "), job.Name)
	}
}

func TestAnalysis(t *testing.T) {
	t.Parallel()

	got := Analysis("LEASE AGREEMENT", model.DepthQuick)
	assert.True(t, strings.HasPrefix(got, "Analyze the following client case documents and generate a comprehensive Quick Review Rapid Defense Pack."))
	assert.True(t, strings.HasSuffix(got, "Client Case Documents:\nLEASE AGREEMENT"))

	assert.Contains(t, Analysis("", model.DepthComprehensive), "comprehensive Comprehensive Defense Rapid Defense Pack")
}

func TestSystemPrompts(t *testing.T) {
	t.Parallel()
	assert.True(t, strings.HasPrefix(PackSystemPrompt, "You are JusticeJet"))
	assert.Contains(t, AnalysisSystemPrompt, "## Defense Strategy")
	assert.Contains(t, AnalysisSystemPrompt, "FORBIDDEN:")
}
