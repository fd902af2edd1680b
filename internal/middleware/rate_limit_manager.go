package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdleTimeout = 3 * time.Minute
	cleanupInterval    = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitManager keeps one token bucket per client IP and evicts idle ones
// from a background goroutine until Shutdown is called.
type RateLimitManager struct {
	visitors   map[string]*visitor
	visitorsMu sync.Mutex

	requestsPerWindow int
	windowSeconds     int
	burst             int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRateLimitManager(ctx context.Context, requestsPerWindow, windowSeconds, burst int) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors:          make(map[string]*visitor),
		requestsPerWindow: requestsPerWindow,
		windowSeconds:     windowSeconds,
		burst:             burst,
		ctx:               managerCtx,
		cancel:            cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor returns the limiter for ip, or nil when limiting is disabled.
func (m *RateLimitManager) GetVisitor(ip string) *rate.Limiter {
	if m.requestsPerWindow <= 0 {
		return nil
	}

	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		windowSeconds := m.windowSeconds
		if windowSeconds <= 0 {
			windowSeconds = 60
		}

		limit := rate.Limit(float64(m.requestsPerWindow) / float64(windowSeconds))

		burst := m.burst
		if burst < m.requestsPerWindow {
			burst = m.requestsPerWindow
		}

		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		m.visitors[ip] = v
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

func (m *RateLimitManager) cleanup(now time.Time) {
	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(m.visitors, ip)
		}
	}
}

func (m *RateLimitManager) visitorCount() int {
	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()
	return len(m.visitors)
}

// Shutdown stops the cleanup goroutine and waits for it to finish.
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
