package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Extraction failure kinds. All of them mean "this markup does not yield an
// article", which callers treat as a retrieval miss rather than a hard error.
var (
	ErrContentNotFound   = errors.New("parser: content not found")
	ErrParagraphNotFound = errors.New("parser: first paragraph not found")
	ErrSummaryNotFound   = errors.New("parser: summary not found")
	ErrShortSummary      = errors.New("parser: summary too short")
)

const (
	summaryParagraphs   = 5
	summaryLenThreshold = 10
)

// citationPattern matches inline footnote markers like [1] or [a].
var citationPattern = regexp.MustCompile(`\[[0-9]+\]|\[[a-z]\]`)

// PageContent is the full extraction of an article page.
type PageContent struct {
	Key     string
	Title   string
	Summary string
}

// IsExtractionFailure reports whether err is one of the extraction failure
// kinds, as opposed to malformed input.
func IsExtractionFailure(err error) bool {
	return errors.Is(err, ErrContentNotFound) ||
		errors.Is(err, ErrParagraphNotFound) ||
		errors.Is(err, ErrSummaryNotFound) ||
		errors.Is(err, ErrShortSummary)
}

// Parse extracts the page key, title and summary from article markup.
func Parse(page string) (*PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	summary, err := summaryFrom(doc)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	canonical, _ := doc.Find("link[rel=canonical]").First().Attr("href")
	if title == "" || canonical == "" {
		return nil, ErrContentNotFound
	}
	segments := strings.Split(canonical, "/")
	key := segments[len(segments)-1]

	return &PageContent{Key: key, Title: title, Summary: summary}, nil
}

// Summary extracts only the lead-section summary from article markup.
func Summary(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	return summaryFrom(doc)
}

// summaryFrom finds the lead paragraphs of the article: the first paragraph
// carrying the bolded article term plus the following sibling paragraphs.
func summaryFrom(doc *goquery.Document) (string, error) {
	content := doc.Find("div.mw-content-ltr.mw-parser-output").First()
	if content.Length() == 0 {
		return "", ErrContentNotFound
	}
	content.Find("table.infobox").Remove()

	paragraphs := content.Find("p")
	if paragraphs.Length() == 0 {
		return "", ErrParagraphNotFound
	}

	first := -1
	paragraphs.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Find("b").Length() > 0 {
			first = i
			return false
		}
		return true
	})
	if first == -1 {
		return "", ErrSummaryNotFound
	}

	firstP := paragraphs.Eq(first)
	lead := []*goquery.Selection{firstP}
	firstP.NextAllFiltered("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		lead = append(lead, s)
		return len(lead) < summaryParagraphs
	})

	parts := make([]string, 0, len(lead))
	for _, p := range lead {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrSummaryNotFound
	}

	summary := citationPattern.ReplaceAllString(strings.Join(parts, "\n"), "")
	summary = strings.TrimSpace(summary)

	if utf8.RuneCountInString(summary) < summaryLenThreshold {
		return "", ErrShortSummary
	}
	return summary, nil
}
