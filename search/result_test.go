package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimpleResult_ReferenceCleaning(t *testing.T) {
	testCases := []struct {
		name    string
		rawRef  string
		wantRef string
	}{
		{"BareKey", "Gravity", "Gravity"},
		{"SiteRelative", "/wiki/Gravity", "Gravity"},
		{"FullURL", "https://en.wikipedia.org/wiki/Gravity", "Gravity"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewSimpleResult("Gravity", tc.rawRef, "en")

			assert.Equal(t, tc.wantRef, r.RawRef)
			assert.Equal(t, "https://en.wikipedia.org/wiki/Gravity", r.URL)
		})
	}
}

func TestSimpleResultHTML(t *testing.T) {
	r := NewSimpleResult("Gravity", "Gravity", "en")
	assert.Equal(t, "<i><a href='https://en.wikipedia.org/wiki/Gravity'>Gravity</a></i>", r.HTML())
}

func TestNewResult_URLDerivation(t *testing.T) {
	r := NewResult("Entropy", "Entropy", "en", "summary text", nil)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Entropy", r.URL)
}

func TestNewResult_SimpleResultsCapAndSelfExclusion(t *testing.T) {
	for _, size := range []int{0, 1, 3, 5, 6, 10, 50} {
		t.Run(fmt.Sprintf("ListLen%d", size), func(t *testing.T) {
			simple := make([]SimpleResult, 0, size+2)
			simple = append(simple, NewSimpleResult("Entropy", "Entropy", "en"))
			simple = append(simple, NewSimpleResult("ENTROPY", "Entropy", "en"))
			for i := 0; i < size; i++ {
				simple = append(simple, NewSimpleResult(fmt.Sprintf("Related %d", i), fmt.Sprintf("Related_%d", i), "en"))
			}

			r := NewResult("Entropy", "Entropy", "en", "summary text", simple)

			require.NotNil(t, r.SimpleResults)
			assert.LessOrEqual(t, len(r.SimpleResults), 5)
			for _, s := range r.SimpleResults {
				assert.False(t, strings.EqualFold(s.Title, r.Title),
					"result must not reference itself: %q", s.Title)
			}

			want := size
			if want > 5 {
				want = 5
			}
			assert.Len(t, r.SimpleResults, want)
		})
	}
}

func TestNewResult_NilVersusEmpty(t *testing.T) {
	withoutEnrichment := NewResult("Entropy", "Entropy", "en", "s", nil)
	assert.Nil(t, withoutEnrichment.SimpleResults)

	enrichedButEmpty := NewResult("Entropy", "Entropy", "en", "s", []SimpleResult{})
	require.NotNil(t, enrichedButEmpty.SimpleResults)
	assert.Empty(t, enrichedButEmpty.SimpleResults)
}

func TestResultCompile(t *testing.T) {
	related := []SimpleResult{
		NewSimpleResult("Gravity", "Gravity", "en"),
		NewSimpleResult("Heat", "Heat", "en"),
	}

	t.Run("WithRelated", func(t *testing.T) {
		r := NewResult("Entropy", "Entropy", "en", "A measure of disorder.", related)
		out := r.Compile(DefaultTemplate)

		assert.Contains(t, out, "===<b><i>Entropy</i></b>===")
		assert.Contains(t, out, "A measure of disorder.")
		assert.Contains(t, out, "Related results")
		assert.Contains(t, out, "<i><a href='https://en.wikipedia.org/wiki/Gravity'>Gravity</a></i>")
		assert.NotContains(t, out, "<srtitle>")
		assert.NotContains(t, out, "{")
	})

	t.Run("WithoutEnrichment", func(t *testing.T) {
		r := NewResult("Entropy", "Entropy", "en", "A measure of disorder.", nil)
		out := r.Compile(DefaultTemplate)

		assert.NotContains(t, out, "Related results")
		assert.NotContains(t, out, "<srtitle>")
		assert.NotContains(t, out, "{")
	})

	t.Run("EnrichedButEmpty", func(t *testing.T) {
		r := NewResult("Entropy", "Entropy", "en", "A measure of disorder.", []SimpleResult{})
		out := r.Compile(DefaultTemplate)

		assert.Contains(t, out, "Related results")
		assert.Contains(t, out, "Sorry, but nothing else was found")
	})

	t.Run("EnrichedButEmptyRussian", func(t *testing.T) {
		r := NewResult("Энтропия", "Энтропия", "ru", "Мера беспорядка.", []SimpleResult{})
		out := r.Compile(DefaultTemplate)

		assert.Contains(t, out, "Увы, но ничего не нашлось")
	})

	t.Run("AngleBracketsSoftenedInSummary", func(t *testing.T) {
		r := NewResult("Entropy", "Entropy", "en", "bounded by x < y < z always", nil)
		out := r.Compile(SummaryTag)

		assert.Equal(t, "bounded by x y z always", out)
	})
}
