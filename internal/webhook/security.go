package webhook

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// GuardConfig holds the intake limits applied before any payload work.
type GuardConfig struct {
	// AllowedIPs lists addresses or CIDR ranges; empty allows everyone.
	AllowedIPs []string
	// RateLimitPerMin is per source key; zero disables limiting.
	RateLimitPerMin int
}

// Guard enforces the IP allow-list and per-source rate limits on webhook intake.
type Guard struct {
	exact       map[string]struct{}
	nets        []*net.IPNet
	rateLimiter *rateLimiter
}

func NewGuard(cfg GuardConfig) (*Guard, error) {
	g := &Guard{exact: make(map[string]struct{})}
	for _, entry := range cfg.AllowedIPs {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, ipNet, err := net.ParseCIDR(entry)
			if err != nil {
				return nil, fmt.Errorf("webhook.allowed_ips: %w", err)
			}
			g.nets = append(g.nets, ipNet)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("webhook.allowed_ips: invalid address %q", entry)
		}
		g.exact[ip.String()] = struct{}{}
	}
	if cfg.RateLimitPerMin > 0 {
		g.rateLimiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return g, nil
}

// AllowIP checks ip against the allow-list.
func (g *Guard) AllowIP(ip string) bool {
	if len(g.exact) == 0 && len(g.nets) == 0 {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	if _, ok := g.exact[parsed.String()]; ok {
		return true
	}
	for _, n := range g.nets {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// Allow consumes one token from key's bucket.
func (g *Guard) Allow(key string) bool {
	if g.rateLimiter == nil {
		return true
	}
	return g.rateLimiter.Allow(key)
}

// rateLimiter keeps one token bucket per key; idle buckets expire.
type rateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](1000, nil, 5*time.Minute),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}
