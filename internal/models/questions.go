package models

// SuggestedQuestion is one starter question offered to the user before they
// type their own.
type SuggestedQuestion struct {
	Text     string `json:"text" yaml:"text"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// QuestionSet mirrors the suggested-questions YAML file.
type QuestionSet struct {
	Questions []SuggestedQuestion `json:"questions" yaml:"questions"`
}
