// Package chunker splits long input into pieces small enough for a single
// translate request. Each piece ends at the best boundary available, trying
// paragraph breaks, then sentence ends, then whitespace, then a hard cut.
package chunker

import (
	"strings"
	"unicode"
)

// DefaultMaxChars keeps each translate request body well under the
// service's request size limit.
const DefaultMaxChars = 10000

// Piece is one part of a split text. Sep is the whitespace that followed
// Text in the input: a paragraph break, a space, or "" after a hard cut.
type Piece struct {
	Text string
	Sep  string
}

// Split cuts text into pieces whose Text has at most maxChars runes, not
// counting leading whitespace of the input, which stays on the first piece.
// Join(pieces, Texts(pieces)) reproduces text exactly. maxChars <= 0
// disables splitting.
func Split(text string, maxChars int) []Piece {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return []Piece{{Text: text}}
	}

	lead := leadingSpace(runes)
	runes = runes[lead:]
	if len(runes) == 0 {
		return []Piece{{Text: text}}
	}

	var pieces []Piece
	for len(runes) > maxChars {
		cut := boundary(runes[:maxChars])
		head := runes[:cut]
		end := len(head) - trailingSpace(head)
		rest := runes[cut:]
		skip := leadingSpace(rest)

		pieces = append(pieces, Piece{
			Text: string(head[:end]),
			Sep:  string(head[end:]) + string(rest[:skip]),
		})
		runes = rest[skip:]
	}
	if len(runes) > 0 {
		end := len(runes) - trailingSpace(runes)
		pieces = append(pieces, Piece{Text: string(runes[:end]), Sep: string(runes[end:])})
	}

	pieces[0].Text = string([]rune(text)[:lead]) + pieces[0].Text
	return pieces
}

// boundary returns the rune offset at which window should be cut.
func boundary(window []rune) int {
	for i := len(window) - 1; i > 0; i-- {
		if window[i] == '\n' && window[i-1] == '\n' {
			return i + 1
		}
		if i > 2 && string(window[i-3:i+1]) == "\r\n\r\n" {
			return i + 1
		}
	}

	for i := len(window) - 2; i > 0; i-- {
		switch window[i] {
		case '.', '!', '?', '。':
			if unicode.IsSpace(window[i+1]) {
				return i + 1
			}
		}
	}

	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}

	return len(window)
}

func leadingSpace(r []rune) int {
	n := 0
	for n < len(r) && unicode.IsSpace(r[n]) {
		n++
	}
	return n
}

func trailingSpace(r []rune) int {
	n := 0
	for n < len(r) && unicode.IsSpace(r[len(r)-1-n]) {
		n++
	}
	return n
}

// Texts returns the Text of every piece, in order.
func Texts(pieces []Piece) []string {
	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Text
	}
	return texts
}

// Join puts texts back together with the separators recorded in pieces.
// texts[i] replaces pieces[i].Text; missing entries keep the original.
func Join(pieces []Piece, texts []string) string {
	var sb strings.Builder
	for i, p := range pieces {
		if i < len(texts) {
			sb.WriteString(texts[i])
		} else {
			sb.WriteString(p.Text)
		}
		sb.WriteString(p.Sep)
	}
	return sb.String()
}
