package chunker_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/valpere/lantran/internal/chunker"
)

func TestSplit_ShortText(t *testing.T) {
	text := "Hello, world!"
	pieces := chunker.Split(text, 100)
	if len(pieces) != 1 || pieces[0].Text != text || pieces[0].Sep != "" {
		t.Errorf("expected text unchanged, got %+v", pieces)
	}
}

func TestSplit_Disabled(t *testing.T) {
	text := strings.Repeat("word ", 500)
	if pieces := chunker.Split(text, 0); len(pieces) != 1 {
		t.Errorf("expected 1 piece when maxChars=0, got %d", len(pieces))
	}
}

func TestSplit_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		first    string
		sep      string
	}{
		{"paragraph", "First paragraph text here.\n\nSecond paragraph text here.", 40, "First paragraph text here.", "\n\n"},
		{"windows paragraph", "First paragraph text.\r\n\r\nSecond paragraph text.", 30, "First paragraph text.", "\r\n\r\n"},
		{"sentence", "First sentence ends here. Second sentence follows.", 40, "First sentence ends here.", " "},
		{"word", "alpha beta gamma delta epsilon", 14, "alpha beta", " "},
		{"hard cut", "abcdefghijklmnopqrstuvwxyz", 10, "abcdefghij", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := chunker.Split(tt.text, tt.maxChars)
			if len(pieces) < 2 {
				t.Fatalf("expected at least 2 pieces, got %+v", pieces)
			}
			if pieces[0].Text != tt.first {
				t.Errorf("expected first piece %q, got %q", tt.first, pieces[0].Text)
			}
			if pieces[0].Sep != tt.sep {
				t.Errorf("expected separator %q, got %q", tt.sep, pieces[0].Sep)
			}
		})
	}
}

func TestSplit_JoinRestoresLayout(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
	}{
		{"sentences in one paragraph", strings.TrimSpace(strings.Repeat("One sentence here. ", 10)), 60},
		{"words without punctuation", strings.TrimSpace(strings.Repeat("alpha beta gamma ", 20)), 25},
		{"paragraphs and sentences", strings.Repeat("First line. Second line!\n\nThird line?  Fourth.\n", 8), 45},
		{"surrounding whitespace", "  \n" + strings.Repeat("Привіт, світе. ", 12) + "\n\n", 50},
		{"hard cuts", strings.Repeat("x", 95), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := chunker.Split(tt.text, tt.maxChars)
			if len(pieces) < 2 {
				t.Fatalf("expected input to be split, got %d piece(s)", len(pieces))
			}
			if got := chunker.Join(pieces, chunker.Texts(pieces)); got != tt.text {
				t.Errorf("round trip changed the text:\nwant %q\ngot  %q", tt.text, got)
			}
		})
	}
}

func TestSplit_RespectsLimit(t *testing.T) {
	text := strings.Repeat("Привіт, світе! Як справи сьогодні? ", 50)
	for _, p := range chunker.Split(text, 60) {
		if n := utf8.RuneCountInString(p.Text); n > 60 {
			t.Errorf("piece has %d runes, limit 60: %q", n, p.Text)
		}
		if p.Text == "" || p.Text != strings.TrimSpace(p.Text) {
			t.Errorf("piece not trimmed: %q", p.Text)
		}
		if strings.TrimSpace(p.Sep) != "" {
			t.Errorf("separator holds text: %q", p.Sep)
		}
	}
}

func TestJoin_TranslatedPieces(t *testing.T) {
	pieces := chunker.Split("Hello there. How are you?", 15)
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %+v", pieces)
	}

	got := chunker.Join(pieces, []string{"Hola.", "¿Cómo estás?"})
	if got != "Hola. ¿Cómo estás?" {
		t.Errorf("unexpected join %q", got)
	}
}
