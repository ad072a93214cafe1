// Package placeholder masks the parts of a message a translation model must
// not touch: HTML tags, code spans, and format placeholders such as {name},
// {{count}} and %s. Masked parts become numbered markers that are put back
// after translation.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reFencedCode = regexp.MustCompile("(?s)```.*?```")
	reInlineCode = regexp.MustCompile("`[^`\n]+`")
	reHTMLTag    = regexp.MustCompile(`<[^<>]+>`)
	// {{var}}, {var}, {0}, ${var}
	reTemplateVar = regexp.MustCompile(`\$?\{\{?\s*[\w.]+\s*\}?\}`)
	// %s, %d, %1$s, %.2f, %%
	rePrintfVerb = regexp.MustCompile(`%(?:\d+\$)?[-+0#]*\d*(?:\.\d+)?[sdfvqxXeEgGc%]`)

	reMarker = regexp.MustCompile(`\[\s*PH\s*(\d+)\s*\]`)
)

// Masked is text with its protected parts replaced by markers.
type Masked struct {
	Text      string
	originals []string
}

// Mask replaces protected parts of text with markers [PH0], [PH1], ... in
// order of pattern priority: fenced code, inline code, HTML tags, template
// variables, printf verbs.
func Mask(text string) Masked {
	var originals []string
	replace := func(match string) string {
		marker := fmt.Sprintf("[PH%d]", len(originals))
		originals = append(originals, match)
		return marker
	}

	for _, re := range []*regexp.Regexp{reFencedCode, reInlineCode, reHTMLTag, reTemplateVar, rePrintfVerb} {
		text = re.ReplaceAllStringFunc(text, replace)
	}
	return Masked{Text: text, originals: originals}
}

// Len reports how many parts were masked.
func (m Masked) Len() int {
	return len(m.originals)
}

// Unmask puts the originals back into translated. Markers the model spaced
// out ("[ PH 0 ]") are recognised. Unknown marker indices are left alone.
func (m Masked) Unmask(translated string) string {
	if len(m.originals) == 0 {
		return translated
	}
	return reMarker.ReplaceAllStringFunc(translated, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx >= len(m.originals) {
			return match
		}
		return m.originals[idx]
	})
}

// Missing returns the indices of markers absent from translated.
func (m Masked) Missing(translated string) []int {
	seen := make(map[int]bool, len(m.originals))
	for _, sub := range reMarker.FindAllStringSubmatch(translated, -1) {
		if idx, err := strconv.Atoi(sub[1]); err == nil {
			seen[idx] = true
		}
	}

	var missing []int
	for i := range m.originals {
		if !seen[i] {
			missing = append(missing, i)
		}
	}
	return missing
}
