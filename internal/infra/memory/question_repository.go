package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
)

// QuestionRepository caches question sets with TTL to avoid repeated loader hits.
type QuestionRepository struct {
	loader app.QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader app.QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, category string) ([]domain.Question, error) {
	if qs, ok := r.lookup(category); ok {
		return qs, nil
	}

	result, err, _ := r.sf.Do(category, func() (interface{}, error) {
		if qs, ok := r.lookup(category); ok {
			return qs, nil
		}

		questions, err := r.loader.LoadQuestions(ctx, category)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, domain.ErrEmptyResult
		}

		r.mu.Lock()
		r.cache[category] = cachedSet{
			questions: questions,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneQuestions(result.([]domain.Question)), nil
}

// Invalidate drops the cached set for a category.
func (r *QuestionRepository) Invalidate(_ context.Context, category string) {
	r.mu.Lock()
	delete(r.cache, category)
	r.mu.Unlock()
}

func (r *QuestionRepository) lookup(category string) ([]domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[category]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return nil, false
	}
	return cloneQuestions(entry.questions), true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func cloneQuestions(qs []domain.Question) []domain.Question {
	out := make([]domain.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
