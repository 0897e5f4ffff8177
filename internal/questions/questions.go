// Package questions loads the bundled suggested-question catalog shown to
// users before they type their own question.
package questions

import (
	"io"
	"os"

	"github.com/studyquery/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Load parses a YAML question catalog from a file.
func Load(filePath string) (*models.QuestionSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader parses a question catalog from an io.Reader.
func LoadFromReader(r io.Reader) (*models.QuestionSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var set models.QuestionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}

	return &set, nil
}

// DefaultSet returns the built-in catalog used when no YAML file is
// configured or the configured file is missing.
func DefaultSet() *models.QuestionSet {
	return &models.QuestionSet{
		Questions: []models.SuggestedQuestion{
			{Text: "Summarize the key points of my notes", Category: "summary"},
			{Text: "What are the main definitions I should memorize?", Category: "summary"},
			{Text: "Compare the approaches discussed in my notes and the paper", Category: "comparison"},
			{Text: "What does the paper conclude that my notes do not cover?", Category: "comparison"},
			{Text: "Quote the exact passage about the main theorem", Category: "verbatim"},
		},
	}
}
