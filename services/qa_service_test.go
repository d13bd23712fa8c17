package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtualta/models"
)

type memCache struct {
	entries map[string]models.AnswerResponse
	sets    int
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]models.AnswerResponse{}}
}

func (m *memCache) Get(key string) (*models.AnswerResponse, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	resp, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &resp, true, nil
}

func (m *memCache) Set(key string, resp models.AnswerResponse) error {
	m.sets++
	m.entries[key] = resp
	return nil
}

type memSink struct {
	events []models.QuestionEvent
}

func (m *memSink) Publish(ev models.QuestionEvent) {
	m.events = append(m.events, ev)
}

func strPtr(s string) *string { return &s }

var dockerCorpus = []models.Record{
	{Text: "Docker containers are lightweight", Source: "http://a", Title: "Docker Guide"},
}

func TestAnswer_DockerScenario(t *testing.T) {
	svc := NewQAService(dockerCorpus)

	resp, err := svc.Answer(models.QuestionRequest{Question: "what is docker"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Answer, "Docker containers are lightweight..."))
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "http://a", *resp.Links[0].URL)
	assert.Equal(t, "Docker Guide", resp.Links[0].Text)
}

func TestAnswer_Validation(t *testing.T) {
	svc := NewQAService(dockerCorpus)

	_, err := svc.Answer(models.QuestionRequest{Question: ""})
	assert.ErrorIs(t, err, ErrMissingQuestion)

	_, err = svc.Answer(models.QuestionRequest{Question: "docker", Image: strPtr("not-base64!!")})
	assert.ErrorIs(t, err, ErrInvalidImage)

	// missing question is reported before a bad image
	_, err = svc.Answer(models.QuestionRequest{Image: strPtr("not-base64!!")})
	assert.ErrorIs(t, err, ErrMissingQuestion)
}

func TestAnswer_ImageIgnoredWhenValid(t *testing.T) {
	svc := NewQAService(dockerCorpus)

	plain, err := svc.Answer(models.QuestionRequest{Question: "docker"})
	require.NoError(t, err)

	for _, img := range []*string{strPtr(""), strPtr("aGVsbG8=")} {
		withImage, err := svc.Answer(models.QuestionRequest{Question: "docker", Image: img})
		require.NoError(t, err)
		assert.Equal(t, plain, withImage)
	}
}

func TestAnswer_NoMatch(t *testing.T) {
	svc := NewQAService(dockerCorpus)

	resp, err := svc.Answer(models.QuestionRequest{Question: "xyz123nomatch"})
	require.NoError(t, err)
	assert.Equal(t, NoAnswer, resp.Answer)
	assert.Empty(t, resp.Links)
}

func TestAnswer_Idempotent(t *testing.T) {
	svc := NewQAService([]models.Record{
		{Text: "abc one", Title: "1"},
		{Text: "abc two", Title: "2"},
		{Text: "abc three", Title: "3"},
	})

	first, err := svc.Answer(models.QuestionRequest{Question: "abc"})
	require.NoError(t, err)
	second, err := svc.Answer(models.QuestionRequest{Question: "abc"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.Links, 2)
}

func TestAnswer_CacheMissThenHit(t *testing.T) {
	cache := newMemCache()
	svc := NewQAService(dockerCorpus, WithCache(cache))

	first, err := svc.Answer(models.QuestionRequest{Question: "  What IS   docker "})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.entries, "what is docker")

	second, err := svc.Answer(models.QuestionRequest{Question: "what is DOCKER"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestAnswer_CacheErrorFallsBackToScan(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	svc := NewQAService(dockerCorpus, WithCache(cache))

	resp, err := svc.Answer(models.QuestionRequest{Question: "docker"})
	require.NoError(t, err)
	assert.Equal(t, "Docker containers are lightweight...", resp.Answer)
}

func TestAnswer_PublishesEvents(t *testing.T) {
	sink := &memSink{}
	svc := NewQAService(dockerCorpus, WithSink(sink))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Answer(models.QuestionRequest{Question: "docker", Image: strPtr("aGVsbG8=")})
	require.NoError(t, err)
	_, err = svc.Answer(models.QuestionRequest{Question: "xyz123nomatch"})
	require.NoError(t, err)
	_, err = svc.Answer(models.QuestionRequest{Question: ""})
	require.Error(t, err)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "docker", sink.events[0].Question)
	assert.True(t, sink.events[0].Matched)
	assert.Equal(t, 1, sink.events[0].MatchCount)
	assert.True(t, sink.events[0].HasImage)
	assert.Equal(t, fixed, sink.events[0].AskedAt)
	assert.NotEmpty(t, sink.events[0].ID)

	assert.False(t, sink.events[1].Matched)
	assert.Zero(t, sink.events[1].MatchCount)
	assert.NotEqual(t, sink.events[0].ID, sink.events[1].ID)
}
