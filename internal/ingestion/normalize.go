package ingestion

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sghansard/hansardkb/internal/types"
)

// timePattern matches heading text like "1.30 pm", "9 am", "12 noon".
var timePattern = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?:\.(\d{2}))?\s*(am|pm|noon)\s*$`)

// whitespaceRun collapses any run of whitespace to a single space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// speakerLabel matches both historical speaker-colon formats:
// <strong>Name:</strong> and <strong>Name</strong>: .
var speakerLabel = regexp.MustCompile(`^(.*?):?\s*$`)

// cleanText decodes entities, strips tags (the caller passes already
// tag-stripped text via goquery's .Text()), and collapses whitespace.
func cleanText(raw string) string {
	decoded := html.UnescapeString(raw)
	collapsed := whitespaceRun.ReplaceAllString(decoded, " ")
	return strings.TrimSpace(collapsed)
}

// normalizedSegment is a segment under construction before ids are
// assigned globally across the transcript.
type normalizedSegment struct {
	speaker      string
	text         string
	timestamp    string
	sectionTitle string
	sectionType  types.SectionType
	page         int
}

// normalizeSection walks one section's HTML content in document order,
// reconstructing segments per the §3 invariant: a paragraph either
// starts a segment (leading strong-emphasis speaker label, optional
// colon) or continues the previous one; continuation paragraphs fuse
// with a single joining space; a paragraph with no current speaker and
// no label is dropped. Headings matching the time pattern set the
// section's current timestamp, applied to every segment started from
// then on until a later heading replaces it.
func normalizeSection(section types.RawSection) ([]normalizedSegment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(section.Content))
	if err != nil {
		return nil, err
	}

	var segments []normalizedSegment
	var current *normalizedSegment
	var sectionTimestamp string

	doc.Find("body").Children().Each(func(_ int, node *goquery.Selection) {
		tag := goquery.NodeName(node)

		if isHeading(tag) {
			if m := timePattern.FindStringSubmatch(strings.TrimSpace(node.Text())); m != nil {
				sectionTimestamp = strings.TrimSpace(node.Text())
			}
			return
		}

		if tag != "p" {
			return
		}

		strongSel := node.Find("strong, b").First()
		label := ""
		if strongSel.Length() > 0 && strings.HasPrefix(cleanText(node.Text()), cleanText(strongSel.Text())) {
			label = strings.TrimSpace(strongSel.Text())
		}

		clone := node.Clone()
		clone.Find("strong, b").First().Remove()
		remainder := cleanText(clone.Text())
		remainder = strings.TrimPrefix(remainder, ":")
		remainder = strings.TrimSpace(remainder)

		if label != "" {
			speaker := speakerLabel.FindStringSubmatch(label)
			name := label
			if len(speaker) > 1 && speaker[1] != "" {
				name = speaker[1]
			}
			current = &normalizedSegment{
				speaker:      strings.TrimSpace(name),
				sectionTitle: section.Title,
				sectionType:  section.Type,
				page:         section.Page,
			}
			if sectionTimestamp != "" {
				current.timestamp = sectionTimestamp
			}
			if remainder != "" {
				current.text = remainder
			}
			segments = append(segments, *current)
			current = &segments[len(segments)-1]
			return
		}

		// Continuation paragraph: only attaches if a current speaker exists.
		if current == nil {
			return
		}
		cleaned := cleanText(node.Text())
		if cleaned == "" {
			return
		}
		if current.text != "" {
			current.text += " " + cleaned
		} else {
			current.text = cleaned
		}
	})

	return segments, nil
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	default:
		return false
	}
}
