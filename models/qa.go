package models

import "time"

type QuestionRequest struct {
	Question string  `json:"question"`
	Image    *string `json:"image"`
}

type Link struct {
	URL  *string `json:"url"`
	Text string  `json:"text"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
	Links  []Link `json:"links"`
}

// QuestionEvent is published to the broker after a question has been answered.
type QuestionEvent struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Matched    bool      `json:"matched"`
	MatchCount int       `json:"match_count"`
	HasImage   bool      `json:"has_image"`
	AskedAt    time.Time `json:"asked_at"`
}
