package translator

import "net/http"

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyMultipart
)

// Operation describes how one remote call maps onto HTTP. Path is relative to
// the versioned service root and may contain {name} placeholders.
type Operation struct {
	Name        string
	Method      string
	Path        string
	Required    []string
	AnyOf       []string
	Query       []string
	Body        BodyKind
	BodyFields  []string
	Attachments []string
}

var (
	OpListModels = Operation{
		Name:   "listModels",
		Method: http.MethodGet,
		Path:   "/models",
		Query:  []string{"source", "target", "default"},
	}

	OpTranslate = Operation{
		Name:       "translate",
		Method:     http.MethodPost,
		Path:       "/translate",
		Required:   []string{"text"},
		AnyOf:      []string{"source", "target", "model_id"},
		Body:       BodyJSON,
		BodyFields: []string{"text", "source", "target", "model_id"},
	}

	OpListIdentifiableLanguages = Operation{
		Name:   "listIdentifiableLanguages",
		Method: http.MethodGet,
		Path:   "/identifiable_languages",
	}

	OpIdentify = Operation{
		Name:       "identify",
		Method:     http.MethodPost,
		Path:       "/identify",
		Required:   []string{"text"},
		Body:       BodyJSON,
		BodyFields: []string{"text"},
	}

	OpCreateModel = Operation{
		Name:        "createModel",
		Method:      http.MethodPost,
		Path:        "/models",
		Required:    []string{"base_model_id"},
		Query:       []string{"base_model_id", "name"},
		Body:        BodyMultipart,
		Attachments: []string{"forced_glossary", "parallel_corpus", "monolingual_corpus"},
	}

	OpDeleteModel = Operation{
		Name:     "deleteModel",
		Method:   http.MethodDelete,
		Path:     "/models/{model_id}",
		Required: []string{"model_id"},
	}

	OpGetModel = Operation{
		Name:     "getModel",
		Method:   http.MethodGet,
		Path:     "/models/{model_id}",
		Required: []string{"model_id"},
	}
)

// Operations lists every operation the client exposes.
var Operations = []Operation{
	OpListModels,
	OpTranslate,
	OpListIdentifiableLanguages,
	OpIdentify,
	OpCreateModel,
	OpDeleteModel,
	OpGetModel,
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
