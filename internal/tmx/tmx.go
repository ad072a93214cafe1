// Package tmx reads and writes the TMX 1.4 documents the service accepts as
// forced glossaries and parallel corpora.
package tmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Pair is one source/target term mapping.
type Pair struct {
	Source string
	Target string
}

type document struct {
	XMLName xml.Name `xml:"tmx"`
	Version string   `xml:"version,attr"`
	Header  header   `xml:"header"`
	Units   []unit   `xml:"body>tu"`
}

type header struct {
	CreationTool        string `xml:"creationtool,attr"`
	CreationToolVersion string `xml:"creationtoolversion,attr"`
	SegType             string `xml:"segtype,attr"`
	OTMF                string `xml:"o-tmf,attr"`
	AdminLang           string `xml:"adminlang,attr"`
	SrcLang             string `xml:"srclang,attr"`
	DataType            string `xml:"datatype,attr"`
}

type unit struct {
	Variants []variant `xml:"tuv"`
}

type variant struct {
	Lang    string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Segment string `xml:"seg"`
}

// Write encodes pairs as a TMX document with one translation unit per pair.
func Write(w io.Writer, sourceLang, targetLang string, pairs []Pair) error {
	if sourceLang == "" || targetLang == "" {
		return fmt.Errorf("source and target languages are required")
	}

	doc := document{
		Version: "1.4",
		Header: header{
			CreationTool:        "lantran",
			CreationToolVersion: "1",
			SegType:             "phrase",
			OTMF:                "lantran",
			AdminLang:           "en",
			SrcLang:             sourceLang,
			DataType:            "plaintext",
		},
	}
	for _, p := range pairs {
		doc.Units = append(doc.Units, unit{Variants: []variant{
			{Lang: sourceLang, Segment: p.Source},
			{Lang: targetLang, Segment: p.Target},
		}})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode tmx: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Read decodes the translation units of a TMX document that carry both
// sourceLang and targetLang variants. Language codes compare case-insensitively.
func Read(r io.Reader, sourceLang, targetLang string) ([]Pair, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode tmx: %w", err)
	}

	var pairs []Pair
	for _, u := range doc.Units {
		var p Pair
		var haveSource, haveTarget bool
		for _, v := range u.Variants {
			switch {
			case strings.EqualFold(v.Lang, sourceLang):
				p.Source, haveSource = v.Segment, true
			case strings.EqualFold(v.Lang, targetLang):
				p.Target, haveTarget = v.Segment, true
			}
		}
		if haveSource && haveTarget {
			pairs = append(pairs, p)
		}
	}
	return pairs, nil
}
