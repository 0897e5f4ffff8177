// Package answer turns the inference service's mode-tagged text payloads
// into typed, renderable results.
package answer

import "github.com/studyquery/backend/internal/models"

// Interpret maps a (mode, rawText, imageRef, sources) payload onto one of
// the four answer variants. It is pure and cannot fail: malformed content
// degrades to a displayable fallback instead of signalling an error.
//
// Mode tags are matched case-sensitively. Any unrecognized or missing tag
// is treated as verbatim; older service versions omitted the tag entirely,
// so this default is load-bearing compatibility behavior.
func Interpret(mode, rawText, imageRef, sources string) models.AnswerResult {
	switch mode {
	case models.ModeError:
		// Errors never carry auxiliary display data.
		return models.AnswerResult{
			Kind:    models.AnswerError,
			Message: rawText,
		}

	case models.ModeComparison:
		res := models.AnswerResult{
			Kind:     models.AnswerComparison,
			ImageRef: imageRef,
			Sources:  sources,
		}
		if table, ok := ParseTable(rawText); ok {
			res.Table = table
		} else {
			res.Text = rawText
		}
		return res

	case models.ModeFullText:
		return models.AnswerResult{
			Kind:     models.AnswerFullText,
			Text:     rawText,
			ImageRef: imageRef,
			Sources:  sources,
		}

	default:
		return models.AnswerResult{
			Kind:     models.AnswerVerbatim,
			Text:     rawText,
			ImageRef: imageRef,
			Sources:  sources,
		}
	}
}
