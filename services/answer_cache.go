package services

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"golang.org/x/crypto/blake2b"

	"virtualta/models"
)

const answerKeyPrefix = "answer:"

// RedisAnswerCache keeps serialized answers in Redis with a fixed TTL.
// Keys are scoped to one corpus digest, so a restart with a different corpus
// never reads answers computed from the previous one.
type RedisAnswerCache struct {
	client *redis.Client
	ttl    time.Duration
	corpus string
}

func NewRedisAnswerCache(client *redis.Client, ttl time.Duration, corpusDigest string) *RedisAnswerCache {
	return &RedisAnswerCache{client: client, ttl: ttl, corpus: corpusDigest}
}

// CorpusDigest fingerprints the loaded records.
func CorpusDigest(corpus []models.Record) (string, error) {
	b, err := json.Marshal(corpus)
	if err != nil {
		return "", fmt.Errorf("encode corpus: %w", err)
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// AnswerKey maps a corpus digest and a normalized question to a Redis key.
func AnswerKey(corpusDigest, normalized string) string {
	sum := blake2b.Sum256([]byte(normalized))
	return answerKeyPrefix + corpusDigest + ":" + hex.EncodeToString(sum[:])
}

func (c *RedisAnswerCache) Get(key string) (*models.AnswerResponse, bool, error) {
	raw, err := c.client.Get(AnswerKey(c.corpus, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var resp models.AnswerResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false, fmt.Errorf("decode cached answer: %w", err)
	}
	if resp.Links == nil {
		resp.Links = []models.Link{}
	}
	return &resp, true, nil
}

func (c *RedisAnswerCache) Set(key string, resp models.AnswerResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	if err := c.client.Set(AnswerKey(c.corpus, key), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
