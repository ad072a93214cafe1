package translator

import (
	"io"
	"strconv"
)

type Param struct {
	Name  string
	Value string
}

// Attachment is a binary part of a multipart request body.
type Attachment struct {
	Name        string
	Filename    string
	ContentType string
	Data        io.Reader
}

// Params holds the values of one operation call in the order they were supplied.
type Params struct {
	Values      []Param
	Attachments []Attachment
}

func (p *Params) Add(name, value string) {
	p.Values = append(p.Values, Param{Name: name, Value: value})
}

func (p *Params) Attach(name, filename string, data io.Reader) {
	if data == nil {
		return
	}
	if filename == "" {
		filename = name
	}
	p.Attachments = append(p.Attachments, Attachment{
		Name:        name,
		Filename:    filename,
		ContentType: "application/octet-stream",
		Data:        data,
	})
}

// Get returns the first non-empty value recorded for name.
func (p Params) Get(name string) (string, bool) {
	for _, v := range p.Values {
		if v.Name == name && v.Value != "" {
			return v.Value, true
		}
	}
	return "", false
}

func (p Params) attachment(name string) (Attachment, bool) {
	for _, a := range p.Attachments {
		if a.Name == name {
			return a, true
		}
	}
	return Attachment{}, false
}

type paramSource interface {
	params() Params
}

type ListModelsOptions struct {
	Source  string
	Target  string
	Default *bool
}

func (o *ListModelsOptions) params() Params {
	var p Params
	if o == nil {
		return p
	}
	p.Add("source", o.Source)
	p.Add("target", o.Target)
	if o.Default != nil {
		p.Add("default", strconv.FormatBool(*o.Default))
	}
	return p
}

type TranslateOptions struct {
	Text    string
	Source  string
	Target  string
	ModelID string
}

func (o *TranslateOptions) params() Params {
	var p Params
	if o == nil {
		return p
	}
	p.Add("text", o.Text)
	p.Add("source", o.Source)
	p.Add("target", o.Target)
	p.Add("model_id", o.ModelID)
	return p
}

type IdentifyOptions struct {
	Text string
}

func (o *IdentifyOptions) params() Params {
	var p Params
	if o == nil {
		return p
	}
	p.Add("text", o.Text)
	return p
}

// CreateModelOptions describes a custom model trained on top of BaseModelID.
// Each reader is sent as its own multipart file and consumed when the request
// is built.
type CreateModelOptions struct {
	BaseModelID string
	Name        string

	ForcedGlossary    io.Reader
	ParallelCorpus    io.Reader
	MonolingualCorpus io.Reader
}

func (o *CreateModelOptions) params() Params {
	var p Params
	if o == nil {
		return p
	}
	p.Add("base_model_id", o.BaseModelID)
	p.Add("name", o.Name)
	p.Attach("forced_glossary", "forced_glossary.tmx", o.ForcedGlossary)
	p.Attach("parallel_corpus", "parallel_corpus.tmx", o.ParallelCorpus)
	p.Attach("monolingual_corpus", "monolingual_corpus.txt", o.MonolingualCorpus)
	return p
}

// ModelOptions addresses a single model for GetModel and DeleteModel.
type ModelOptions struct {
	ModelID string
}

func (o *ModelOptions) params() Params {
	var p Params
	if o == nil {
		return p
	}
	p.Add("model_id", o.ModelID)
	return p
}

type noParams struct{}

func (noParams) params() Params { return Params{} }
