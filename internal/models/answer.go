package models

// Mode tags declared by the inference service. Matching is case-sensitive;
// anything else falls back to the verbatim variant.
const (
	ModeVerbatim   = "VERBATIM"
	ModeFullText   = "FULL_TEXT"
	ModeComparison = "COMPARISON"
	ModeError      = "ERROR"
)

// AnswerKind identifies the variant of an interpreted answer.
type AnswerKind string

const (
	AnswerVerbatim   AnswerKind = "verbatim"
	AnswerFullText   AnswerKind = "full_text"
	AnswerComparison AnswerKind = "comparison"
	AnswerError      AnswerKind = "error"
)

// Table is a parsed pipe-delimited grid, render-ready. Column order follows
// the header; row order follows the source text.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// AnswerResult is the interpreted form of a remote answer payload. Exactly
// one variant applies, selected by Kind:
//   - verbatim / full_text: Text holds the answer body.
//   - comparison: Table holds the parsed grid, or is nil and Text holds the
//     raw fallback when the payload did not parse as a table.
//   - error: Message holds the failure text; ImageRef and Sources are
//     always empty for this variant.
//
// ImageRef and Sources are display-only and never branched on.
type AnswerResult struct {
	Kind     AnswerKind `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Table    *Table     `json:"table,omitempty"`
	Message  string     `json:"message,omitempty"`
	ImageRef string     `json:"imageRef,omitempty"`
	Sources  string     `json:"sources,omitempty"`
}
