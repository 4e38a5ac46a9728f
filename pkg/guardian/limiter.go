package guardian

import (
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore keeps one token bucket per subject. A subject is a
// wearable device id for telemetry or a user id for the HTTP surface.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(subject string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[subject]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[subject] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) Allow(subject string) bool {
	return s.GetLimiter(subject).Allow()
}

func (s *RateLimiterStore) SetLimiter(subject string, subjectRate rate.Limit, subjectBurst int) error {
	if subjectRate <= 0 || subjectBurst <= 0 {
		return fmt.Errorf("rate and burst must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[subject] = rate.NewLimiter(subjectRate, subjectBurst)
	return nil
}
