package services

import "virtualta/models"

const (
	NoAnswer = "Sorry, I don't have an answer for that yet."

	answerLimit = 500
	titleLimit  = 80
	// appended to every matched answer, whether or not it was cut
	answerSuffix = "..."
)

// BuildAnswer shapes matcher output into the public response.
func BuildAnswer(top []models.Record) models.AnswerResponse {
	if len(top) == 0 {
		return models.AnswerResponse{Answer: NoAnswer, Links: []models.Link{}}
	}

	text, _ := top[0].EffectiveText()
	resp := models.AnswerResponse{
		Answer: truncate(text, answerLimit) + answerSuffix,
		Links:  make([]models.Link, 0, len(top)),
	}
	for _, rec := range top {
		link := models.Link{Text: truncate(rec.Title, titleLimit)}
		if u, ok := rec.Link(); ok {
			link.URL = &u
		}
		resp.Links = append(resp.Links, link)
	}
	return resp
}

// truncate keeps the first n characters (runes) of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
