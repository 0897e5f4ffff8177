package models

import "time"

// HistoryEntry records one answered question for the history view.
type HistoryEntry struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Kind       AnswerKind `json:"kind"`
	AnsweredAt time.Time  `json:"answeredAt"`
	ElapsedMs  int64      `json:"elapsedMs"`
}
