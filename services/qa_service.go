package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"virtualta/models"
)

var (
	ErrMissingQuestion = errors.New("Missing question.")
	ErrInvalidImage    = errors.New("Invalid base64 image.")
)

// AnswerCache stores finished answers keyed by normalized question.
type AnswerCache interface {
	Get(key string) (*models.AnswerResponse, bool, error)
	Set(key string, resp models.AnswerResponse) error
}

// QuestionSink receives an event for every answered question. Publish must not block.
type QuestionSink interface {
	Publish(ev models.QuestionEvent)
}

type QAService struct {
	corpus []models.Record
	cache  AnswerCache
	sink   QuestionSink
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*QAService)

func WithCache(c AnswerCache) Option {
	return func(s *QAService) { s.cache = c }
}

func WithSink(q QuestionSink) Option {
	return func(s *QAService) { s.sink = q }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *QAService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewQAService answers questions against corpus, which must not be modified afterwards.
func NewQAService(corpus []models.Record, opts ...Option) *QAService {
	s := &QAService{
		corpus: corpus,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *QAService) CorpusSize() int {
	return len(s.corpus)
}

// Answer validates req and returns the best-matching answer. Validation
// failures wrap ErrMissingQuestion or ErrInvalidImage. The image, when valid,
// does not influence the answer.
func (s *QAService) Answer(req models.QuestionRequest) (models.AnswerResponse, error) {
	if req.Question == "" {
		return models.AnswerResponse{}, ErrMissingQuestion
	}
	hasImage := req.Image != nil && *req.Image != ""
	if hasImage {
		if err := ValidateImage(*req.Image); err != nil {
			return models.AnswerResponse{}, err
		}
	}

	key := strings.Join(Tokenize(req.Question), " ")
	if resp, ok := s.cached(key); ok {
		s.emit(req.Question, hasImage, len(resp.Links))
		return resp, nil
	}

	top, found := Match(req.Question, s.corpus)
	resp := BuildAnswer(top)
	s.logger.Debug("question matched",
		zap.Int("candidates", found),
		zap.Int("returned", len(top)),
	)

	if s.cache != nil {
		if err := s.cache.Set(key, resp); err != nil {
			s.logger.Warn("answer cache write failed", zap.Error(err))
		}
	}
	s.emit(req.Question, hasImage, len(top))
	return resp, nil
}

func (s *QAService) cached(key string) (models.AnswerResponse, bool) {
	if s.cache == nil {
		return models.AnswerResponse{}, false
	}
	resp, ok, err := s.cache.Get(key)
	if err != nil {
		s.logger.Warn("answer cache read failed", zap.Error(err))
		return models.AnswerResponse{}, false
	}
	if !ok || resp == nil {
		return models.AnswerResponse{}, false
	}
	return *resp, true
}

func (s *QAService) emit(question string, hasImage bool, matches int) {
	if s.sink == nil {
		return
	}
	s.sink.Publish(models.QuestionEvent{
		ID:         uuid.NewString(),
		Question:   question,
		Matched:    matches > 0,
		MatchCount: matches,
		HasImage:   hasImage,
		AskedAt:    s.now().UTC(),
	})
}
