package search

import "strings"

// Template substitution markers. The related-results heading lives inside a
// <srtitle> block so it can be dropped when there is nothing to head.
const (
	TitleTag         = "{title}"
	SummaryTag       = "{summary}"
	PageURLTag       = "{page_url}"
	SimpleResultsTag = "{simple_results}"

	srTitleOpen  = "<srtitle>"
	srTitleClose = "</srtitle>"
)

// DefaultTemplate renders a result with HTML markup suitable for messenger
// output.
const DefaultTemplate = "===<b><i>" + TitleTag + "</i></b>===\n\n" +
	SummaryTag + "\n" +
	"<i><a href='" + PageURLTag + "'>Original...</a></i>\n\n" +
	srTitleOpen + "===<b><i>Related results</i></b>===\n" + srTitleClose +
	SimpleResultsTag

// Compile applies a marker template to the result. When related results were
// not gathered, the <srtitle> block is removed wholesale; when they were, the
// block's tags are stripped and the marker is replaced with rendered anchors,
// or with a per-language filler if the list came back empty.
func (r *Result) Compile(template string) string {
	out := template

	start := strings.Index(out, srTitleOpen)
	end := strings.Index(out, srTitleClose)
	hasBlock := start != -1 && end > start

	if r.SimpleResults != nil {
		if hasBlock {
			out = strings.Replace(out, srTitleOpen, "", 1)
			out = strings.Replace(out, srTitleClose, "", 1)
		}

		if len(r.SimpleResults) > 0 {
			links := make([]string, 0, len(r.SimpleResults))
			for _, s := range r.SimpleResults {
				links = append(links, s.HTML())
			}
			out = strings.Replace(out, SimpleResultsTag, strings.Join(links, "\n"), 1)
		} else {
			filler := "Sorry, but nothing else was found"
			if r.Lang == "ru" {
				filler = "Увы, но ничего не нашлось"
			}
			out = strings.Replace(out, SimpleResultsTag, filler, 1)
		}
	} else {
		if hasBlock {
			out = out[:start] + out[end+len(srTitleClose):]
		}
		out = strings.Replace(out, SimpleResultsTag, "", 1)
	}

	summary := strings.NewReplacer(" < ", " ", " > ", " ").Replace(r.Summary)

	out = strings.ReplaceAll(out, TitleTag, r.Title)
	out = strings.ReplaceAll(out, SummaryTag, summary)
	out = strings.ReplaceAll(out, PageURLTag, r.URL)
	return out
}

func (r *Result) String() string {
	return r.Compile(DefaultTemplate)
}
