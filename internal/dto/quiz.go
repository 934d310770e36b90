package dto

import "mcq-quiz/internal/domain"

// StartQuizRequest asks for a freshly generated quiz.
// @Description Request body for generating a quiz
type StartQuizRequest struct {
	Topic string `json:"topic" example:"The solar system"`
	Count int    `json:"count" example:"5"`
	// SessionID, when set, replaces that session instead of creating a new one.
	SessionID string `json:"session_id,omitempty" example:"01HZX8Y3Q9K6V2D4M7N1P0R5ST"`
}

// SubmitAnswerRequest carries the option the user picked.
// @Description Request body for answering the current question
type SubmitAnswerRequest struct {
	Selected string `json:"selected" example:"Jupiter"`
}

// QuestionView is a question without its answer.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuizSessionResponse is what the user sees of a session.
// @Description Current state of a quiz session
type QuizSessionResponse struct {
	ID             string               `json:"id"`
	Topic          string               `json:"topic"`
	Status         domain.SessionStatus `json:"status" example:"in_progress"`
	Notice         string               `json:"notice,omitempty"`
	QuestionNumber int                  `json:"question_number"`
	TotalQuestions int                  `json:"total_questions"`
	Score          int                  `json:"score"`
	Question       *QuestionView        `json:"question,omitempty"`
	Summary        *ScorecardResponse   `json:"summary,omitempty"`
}

// SubmitAnswerResponse is the immediate feedback for an answer.
// @Description Result of answering a question
type SubmitAnswerResponse struct {
	Correct       bool                `json:"correct"`
	CorrectAnswer string              `json:"correct_answer"`
	Session       QuizSessionResponse `json:"session"`
}

// ReviewItemResponse is one row of the end-of-quiz review.
type ReviewItemResponse struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	AnswerListed  bool   `json:"answer_listed"`
}

// ScorecardResponse summarises a finished quiz.
// @Description Final score and per-question review
type ScorecardResponse struct {
	Score   int                  `json:"score"`
	Total   int                  `json:"total"`
	Perfect bool                 `json:"perfect"`
	Review  []ReviewItemResponse `json:"review"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewQuizSessionResponse renders sess for the API. The correct answer of the
// current question is never included.
func NewQuizSessionResponse(sess domain.QuizSession) QuizSessionResponse {
	resp := QuizSessionResponse{
		ID:             sess.ID,
		Topic:          sess.Topic,
		Status:         sess.Status(),
		Notice:         sess.Notice,
		TotalQuestions: len(sess.Questions),
		Score:          sess.Score,
	}
	if q, ok := sess.CurrentQuestion(); ok {
		resp.QuestionNumber = sess.CurrentIndex + 1
		resp.Question = &QuestionView{Text: q.Question, Options: append([]string(nil), q.Options...)}
	}
	if card, err := sess.Summary(); err == nil {
		summary := NewScorecardResponse(card)
		resp.Summary = &summary
	}
	return resp
}

func NewScorecardResponse(card domain.Scorecard) ScorecardResponse {
	resp := ScorecardResponse{
		Score:   card.Score,
		Total:   card.Total,
		Perfect: card.Perfect,
		Review:  make([]ReviewItemResponse, 0, len(card.Review)),
	}
	for _, item := range card.Review {
		resp.Review = append(resp.Review, ReviewItemResponse(item))
	}
	return resp
}
