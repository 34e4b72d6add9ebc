package accounts

import (
	"sync"

	"golang.org/x/time/rate"
)

// loginLimiter throttles authentication attempts per lowercased username.
type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   float64
	burst int
}

var loginLimiter = &limiterPool{}

// SetLoginLimits configures the per-username login rate limit and clears
// any accumulated limiter state. Zero or negative values fall back to the
// defaults (5 rps, burst 10).
func SetLoginLimits(rps float64, burst int) {
	loginLimiter.mu.Lock()
	defer loginLimiter.mu.Unlock()
	loginLimiter.rps = rps
	loginLimiter.burst = burst
	loginLimiter.m = nil
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string]*rate.Limiter)
	}
	if l, ok := p.m[key]; ok {
		return l
	}
	rps := p.rps
	if rps <= 0 {
		rps = 5
	}
	burst := p.burst
	if burst <= 0 {
		burst = 10
	}
	l := rate.NewLimiter(rate.Limit(rps), burst)
	p.m[key] = l
	return l
}

func (p *limiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}
