// pkg/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"quiz-portal/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	// paperTTL keeps question sets cached for a day; papers rarely change.
	paperTTL = 24 * time.Hour
	// leaderboardTTL is short because submits invalidate explicitly and a
	// stale board is only ever a few seconds old.
	leaderboardTTL = 30 * time.Second
)

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func (c *RedisCache) SetPaperQuestions(paperName string, questions []models.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}

	key := "paper:" + paperName + ":questions"
	return c.client.Set(c.ctx, key, data, paperTTL).Err()
}

func (c *RedisCache) GetPaperQuestions(paperName string) ([]models.Question, error) {
	key := "paper:" + paperName + ":questions"
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	err = json.Unmarshal(data, &questions)
	return questions, err
}

// SetLeaderboard stores the ranked snapshot for a paper. The ranked view
// carries tie-break ordering a plain sorted set cannot express, so it is
// cached as one JSON blob.
func (c *RedisCache) SetLeaderboard(paperName string, entries []models.RankedEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	key := "leaderboard:" + paperName
	return c.client.Set(c.ctx, key, data, leaderboardTTL).Err()
}

func (c *RedisCache) GetLeaderboard(paperName string) ([]models.RankedEntry, error) {
	key := "leaderboard:" + paperName
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var entries []models.RankedEntry
	err = json.Unmarshal(data, &entries)
	return entries, err
}

func (c *RedisCache) InvalidateLeaderboard(paperName string) error {
	return c.client.Del(c.ctx, "leaderboard:"+paperName).Err()
}

func (c *RedisCache) InvalidatePaperQuestions(paperName string) error {
	return c.client.Del(c.ctx, "paper:"+paperName+":questions").Err()
}
