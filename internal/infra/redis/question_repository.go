package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
)

// QuestionRepository caches question sets in Redis and falls back to a loader on cache miss.
// Sets are stored as JSON: SET mcq:questions:{category} [{question,options,correctAnswer},...]
type QuestionRepository struct {
	client *redis.Client
	loader app.QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewQuestionRepository(client *redis.Client, loader app.QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, category string) ([]domain.Question, error) {
	if qs, ok := r.cached(ctx, category); ok {
		return qs, nil
	}

	result, err, _ := r.sf.Do(category, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if qs, ok := r.cached(ctx, category); ok {
			return qs, nil
		}

		questions, err := r.loader.LoadQuestions(ctx, category)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, domain.ErrEmptyResult
		}

		raw, err := json.Marshal(questions)
		if err == nil {
			// best-effort; a failed write only costs a reload
			_ = r.client.Set(ctx, r.key(category), raw, r.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate deletes the cached set for a category.
func (r *QuestionRepository) Invalidate(ctx context.Context, category string) {
	_ = r.client.Del(ctx, r.key(category)).Err()
}

func (r *QuestionRepository) cached(ctx context.Context, category string) ([]domain.Question, bool) {
	raw, err := r.client.Get(ctx, r.key(category)).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (r *QuestionRepository) key(category string) string {
	return "mcq:questions:" + category
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
