// Package detector identifies languages locally with lingua-go. It backs the
// offline counterpart of the identify operation and the check that a
// translation came back in the requested target language.
package detector

import (
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/lantran/internal/translator"
)

// minVerifyLength is the minimum rune count required to verify a translation.
// Shorter texts produce unreliable results and are accepted as-is.
const minVerifyLength = 20

// Detector wraps a lingua detector. Building one loads every language model;
// reuse the instance.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lower-case ISO 639-1 code of the most likely language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return isoCode(lang), true
}

// Identify returns up to limit candidate languages ordered by confidence, in
// the same shape the remote identify operation answers with. A limit <= 0
// returns every candidate.
func (d *Detector) Identify(text string, limit int) translator.IdentifiedLanguages {
	result := translator.IdentifiedLanguages{Languages: []translator.IdentifiedLanguage{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, cv := range d.detector.ComputeLanguageConfidenceValues(text) {
		if cv.Value() <= 0 {
			continue
		}
		result.Languages = append(result.Languages, translator.IdentifiedLanguage{
			Language:   isoCode(cv.Language()),
			Confidence: cv.Value(),
		})
		if limit > 0 && len(result.Languages) == limit {
			break
		}
	}
	return result
}

// Verify reports whether translated appears to be written in targetLang.
// Short texts and texts whose language cannot be determined pass.
func (d *Detector) Verify(translated, targetLang string) error {
	if targetLang == "" {
		return nil
	}

	text := strings.TrimSpace(translated)
	if text == "" {
		return fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minVerifyLength {
		return nil
	}

	detected, ok := d.DetectISO(text)
	if !ok {
		return nil
	}

	// The service accepts regional codes such as pt-BR; compare the base language.
	base, _, _ := strings.Cut(targetLang, "-")
	if !strings.EqualFold(detected, base) {
		return fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return nil
}

func isoCode(lang lingua.Language) string {
	return strings.ToLower(lang.IsoCode639_1().String())
}
