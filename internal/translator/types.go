package translator

type Translation struct {
	Translation string `json:"translation"`
}

type TranslationResult struct {
	Translations   []Translation `json:"translations"`
	WordCount      int           `json:"word_count"`
	CharacterCount int           `json:"character_count"`
}

// Text returns the first translation, or "" if the service returned none.
func (r *TranslationResult) Text() string {
	if r == nil || len(r.Translations) == 0 {
		return ""
	}
	return r.Translations[0].Translation
}

type Model struct {
	ModelID      string `json:"model_id"`
	Name         string `json:"name,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	BaseModelID  string `json:"base_model_id,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Customizable bool   `json:"customizable"`
	DefaultModel bool   `json:"default_model"`
	Owner        string `json:"owner,omitempty"`
	Status       string `json:"status,omitempty"`
}

type ModelList struct {
	Models []Model `json:"models"`
}

type DeleteModelResult struct {
	Status string `json:"status"`
}

type IdentifiedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type IdentifiedLanguages struct {
	Languages []IdentifiedLanguage `json:"languages"`
}

type IdentifiableLanguage struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

type IdentifiableLanguages struct {
	Languages []IdentifiableLanguage `json:"languages"`
}
