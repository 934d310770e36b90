package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/dto"
	"mcq-quiz/internal/logger"
	"mcq-quiz/internal/monitoring"
	"mcq-quiz/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz session operations
type QuizService interface {
	StartQuiz(ctx context.Context, req *dto.StartQuizRequest) (*dto.QuizSessionResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizSessionResponse, error)
	SubmitAnswer(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	GetScorecard(ctx context.Context, id string) (*dto.ScorecardResponse, error)
	ResetQuiz(ctx context.Context, id string) (*dto.QuizSessionResponse, error)
}

// quizService implements QuizService
type quizService struct {
	source domain.QuestionSource
	store  SessionStore
	now    func() time.Time
	newID  func() string
}

// NewQuizService creates a new instance of quizService
func NewQuizService(source domain.QuestionSource, store SessionStore) QuizService {
	return &quizService{
		source: source,
		store:  store,
		now:    time.Now,
		newID:  util.NewULID,
	}
}

// GenerationFailedNotice is the message a session shows when the question source failed.
func GenerationFailedNotice(err error) string {
	msg := err.Error()
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
	}
	return "An error occurred: " + msg
}

// StartSession generates questions for topic and loads them into sess.
// A failing source never propagates: the session comes back Unavailable
// with the failure as its notice.
func StartSession(ctx context.Context, source domain.QuestionSource, sess domain.QuizSession, topic string, count int, now time.Time) domain.QuizSession {
	questions, err := source.Generate(ctx, topic, count)
	if err != nil {
		logger.Get().Error("Quiz generation failed",
			zap.Error(err),
			zap.String("sessionID", sess.ID),
			zap.String("topic", topic))
		monitoring.QuizGenerations.WithLabelValues(monitoring.OutcomeFailed).Inc()

		next := sess.Start(topic, count, nil, now)
		next.Notice = GenerationFailedNotice(err)
		return next
	}

	if len(questions) == 0 {
		logger.Get().Warn("Quiz generation produced no usable questions",
			zap.String("sessionID", sess.ID),
			zap.String("topic", topic),
			zap.Int("requested", count))
		monitoring.QuizGenerations.WithLabelValues(monitoring.OutcomeEmpty).Inc()
	} else {
		monitoring.QuizGenerations.WithLabelValues(monitoring.OutcomeGenerated).Inc()
	}
	return sess.Start(topic, count, questions, now)
}

// StartQuiz implements QuizService
func (s *quizService) StartQuiz(ctx context.Context, req *dto.StartQuizRequest) (*dto.QuizSessionResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	topic := strings.TrimSpace(req.Topic)

	now := s.now()
	sess := StartSession(ctx, s.source, domain.NewQuizSession(s.newID(), now), topic, req.Count, now)
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	if req.SessionID != "" && req.SessionID != sess.ID {
		if err := s.store.Delete(ctx, req.SessionID); err != nil {
			logger.Get().Warn("Failed to delete replaced quiz session",
				zap.Error(err),
				zap.String("sessionID", req.SessionID))
		}
	}

	logger.Get().Info("Quiz session started",
		zap.String("sessionID", sess.ID),
		zap.String("status", string(sess.Status())),
		zap.Int("questions", len(sess.Questions)))

	resp := dto.NewQuizSessionResponse(sess)
	return &resp, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizSessionResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizSessionResponse(sess)
	return &resp, nil
}

// SubmitAnswer implements QuizService
func (s *quizService) SubmitAnswer(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if req == nil {
		return nil, domain.NewNoAnswerSelectedError()
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, outcome, err := sess.SubmitAnswer(req.Selected, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, next); err != nil {
		return nil, err
	}
	monitoring.RecordAnswer(outcome.Correct)

	if next.Status() == domain.StatusFinished {
		logger.Get().Info("Quiz session finished",
			zap.String("sessionID", next.ID),
			zap.Int("score", next.Score),
			zap.Int("total", len(next.Questions)))
	}

	return &dto.SubmitAnswerResponse{
		Correct:       outcome.Correct,
		CorrectAnswer: outcome.CorrectAnswer,
		Session:       dto.NewQuizSessionResponse(next),
	}, nil
}

// GetScorecard implements QuizService
func (s *quizService) GetScorecard(ctx context.Context, id string) (*dto.ScorecardResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	card, err := sess.Summary()
	if err != nil {
		return nil, err
	}
	resp := dto.NewScorecardResponse(card)
	return &resp, nil
}

// ResetQuiz implements QuizService
func (s *quizService) ResetQuiz(ctx context.Context, id string) (*dto.QuizSessionResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := sess.Reset(s.now())
	if err := s.store.Put(ctx, next); err != nil {
		return nil, err
	}
	resp := dto.NewQuizSessionResponse(next)
	return &resp, nil
}
