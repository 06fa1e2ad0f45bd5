package techreader

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SubmitLimiter rate-limits write requests (posts, uploads, forms) per IP address.
type SubmitLimiter struct {
	mu      sync.Mutex
	clients map[string]*visitor
	rate    rate.Limit
	burst   int
	idle    time.Duration
	stop    chan struct{}
	once    sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSubmitLimiter allows burst requests at once, refilled at perSecond.
// Visitors idle for longer than idle are forgotten.
func NewSubmitLimiter(perSecond float64, burst int, idle time.Duration) *SubmitLimiter {
	l := &SubmitLimiter{
		clients: make(map[string]*visitor),
		rate:    rate.Limit(perSecond),
		burst:   burst,
		idle:    idle,
		stop:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SubmitLimiter) cleanup() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep(time.Now().Add(-l.idle))
		}
	}
}

func (l *SubmitLimiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	for ip, v := range l.clients {
		if v.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
	l.mu.Unlock()
}

// Allow reports whether ip may submit now and consumes a token if so.
func (l *SubmitLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.clients[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// Len reports the number of tracked addresses.
func (l *SubmitLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop ends the cleanup goroutine.
func (l *SubmitLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
