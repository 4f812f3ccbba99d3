package webhook

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGuardAllowIP(t *testing.T) {
	g, err := NewGuard(GuardConfig{AllowedIPs: []string{"10.0.0.0/8", "192.168.1.7", " "}})
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}

	tcs := map[string]bool{
		"10.1.2.3":    true,
		"192.168.1.7": true,
		"192.168.1.8": false,
		"not-an-ip":   false,
		"":            false,
	}
	for ip, want := range tcs {
		if got := g.AllowIP(ip); got != want {
			t.Errorf("AllowIP(%q) = %v, want %v", ip, got, want)
		}
	}

	open, _ := NewGuard(GuardConfig{})
	if !open.AllowIP("203.0.113.9") {
		t.Error("empty allow-list should allow everyone")
	}
}

func TestNewGuardInvalidEntry(t *testing.T) {
	for _, entry := range []string{"10.0.0.0/99", "example.com"} {
		if _, err := NewGuard(GuardConfig{AllowedIPs: []string{entry}}); err == nil {
			t.Errorf("expected error for %q", entry)
		}
	}
}

func TestGuardRateLimit(t *testing.T) {
	t.Run("Burst then reject", func(t *testing.T) {
		g, _ := NewGuard(GuardConfig{RateLimitPerMin: 60})
		// burst is 60/10 = 6
		for i := 0; i < 6; i++ {
			if !g.Allow("github") {
				t.Fatalf("request %d rejected inside burst", i)
			}
		}
		if g.Allow("github") {
			t.Error("request beyond burst should be rejected")
		}
		if !g.Allow("gitlab") {
			t.Error("buckets must be per key")
		}
	})

	t.Run("Concurrent first requests share one bucket", func(t *testing.T) {
		g, _ := NewGuard(GuardConfig{RateLimitPerMin: 60})
		var (
			allowed atomic.Int32
			wg      sync.WaitGroup
		)
		start := make(chan struct{})
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if g.Allow("10.0.0.1") {
					allowed.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()
		if got := allowed.Load(); got > 6 {
			t.Errorf("allowed %d concurrent first requests, burst is 6", got)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		g, _ := NewGuard(GuardConfig{})
		for i := 0; i < 100; i++ {
			if !g.Allow("github") {
				t.Fatal("limiter should be disabled")
			}
		}
	})
}
