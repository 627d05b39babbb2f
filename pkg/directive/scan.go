// Package directive turns the narrator's free-form text into structured
// game-state mutations. Four tags are recognized; everything else in the
// text is narrative prose to display. The channel is unreliable by nature,
// so a tag with nothing after it is silently skipped and unknown names are
// synthesized rather than treated as errors.
package directive

import (
	"sort"
	"strings"
)

// Tag is one of the four directive markers the narrator may embed.
type Tag string

const (
	TagCombat   Tag = "[COMBAT]"
	TagItem     Tag = "[ITEM]"
	TagLocation Tag = "[LOCATION]"
	TagEvent    Tag = "[EVENT]"
)

var allTags = []Tag{TagCombat, TagItem, TagLocation, TagEvent}

// Match is one directive found in a text block. Start and End delimit the
// span removed from the display text (marker plus payload).
type Match struct {
	Tag     Tag
	Payload string
	Start   int
	End     int
}

// span is a half-open byte range to drop from the display text.
type span struct {
	start, end int
}

// Scan finds every directive occurrence in text in a single forward pass
// and returns the matches in order of appearance plus the text with all
// matched spans removed. Each occurrence of the same tag is its own match.
// Markers with an empty payload are stripped but produce no match.
//
// Stripping removes the marker and the rest of its line. If the marker
// began its line, the whole line goes, including the trailing newline;
// otherwise the text before the marker keeps its line ending.
func Scan(text string) ([]Match, string) {
	var matches []Match
	var spans []span

	for _, tag := range allTags {
		marker := string(tag)
		for from := 0; ; {
			rel := strings.Index(text[from:], marker)
			if rel < 0 {
				break
			}
			idx := from + rel
			payloadStart := idx + len(marker)
			lineEnd := len(text)
			if nl := strings.IndexByte(text[payloadStart:], '\n'); nl >= 0 {
				lineEnd = payloadStart + nl
			}

			payload := strings.TrimSpace(text[payloadStart:lineEnd])
			if payload != "" {
				matches = append(matches, Match{
					Tag:     tag,
					Payload: payload,
					Start:   idx,
					End:     lineEnd,
				})
			}
			spans = append(spans, stripSpan(text, idx, lineEnd))
			from = lineEnd
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches, removeSpans(text, spans)
}

// stripSpan widens [markerStart, lineEnd) to cover the text to strip for
// one directive occurrence.
func stripSpan(text string, markerStart, lineEnd int) span {
	lineStart := strings.LastIndexByte(text[:markerStart], '\n') + 1

	if strings.TrimSpace(text[lineStart:markerStart]) == "" {
		// Marker starts its line: delete the full line and its newline.
		end := lineEnd
		if end < len(text) {
			end++
		}
		return span{lineStart, end}
	}

	// Mid-line marker: also eat the whitespace run before it, keep the newline.
	start := markerStart
	for start > lineStart && (text[start-1] == ' ' || text[start-1] == '\t') {
		start--
	}
	return span{start, lineEnd}
}

// removeSpans builds the complement of the given spans over text, merging
// overlaps, and trims surrounding whitespace from the result.
func removeSpans(text string, spans []span) string {
	if len(spans) == 0 {
		return strings.TrimSpace(text)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			b.WriteString(text[pos:sp.start])
		}
		if sp.end > pos {
			pos = sp.end
		}
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return strings.TrimSpace(b.String())
}
