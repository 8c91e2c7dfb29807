// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxKeys bounds memory per limiter. The least recently seen key is
// evicted first, which only ever lets that client start a fresh window.
const maxKeys = 10_000

// Limiter counts requests per key in fixed windows. A window opens on the
// first request for a key and expires with its cache entry.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows *expirable.LRU[string, *window]
	limit   int
}

type window struct {
	count int
}

// New creates a limiter allowing limit requests per key per duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows: expirable.NewLRU[string, *window](maxKeys, nil, duration),
		limit:   limit,
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows.Get(key)
	if !ok {
		l.windows.Add(key, &window{count: 1})
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many requests are left for key in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows.Peek(key)
	if !ok {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows.Remove(key)
}

// ClientIP extracts the client IP from an HTTP request.
// X-Forwarded-For and X-Real-IP win over RemoteAddr, so run behind a proxy
// that sets them.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles sign-in attempts per client IP and per email, so
// neither one address nor one account can be hammered.
type LoginLimiter struct {
	ip    *Limiter
	email *Limiter
}

// LoginConfig sets the two windows. A limit <= 0 turns that check off.
type LoginConfig struct {
	IPLimit     int
	IPWindow    time.Duration
	EmailLimit  int
	EmailWindow time.Duration
}

// DefaultLoginConfig allows 10 attempts per IP per minute and 5 per email
// per 5 minutes.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{IPLimit: 10, IPWindow: time.Minute, EmailLimit: 5, EmailWindow: 5 * time.Minute}
}

// NewLoginLimiter returns nil when both checks are off; a nil
// *LoginLimiter allows everything.
func NewLoginLimiter(cfg LoginConfig) *LoginLimiter {
	ll := &LoginLimiter{}
	if cfg.IPLimit > 0 && cfg.IPWindow > 0 {
		ll.ip = New(cfg.IPLimit, cfg.IPWindow)
	}
	if cfg.EmailLimit > 0 && cfg.EmailWindow > 0 {
		ll.email = New(cfg.EmailLimit, cfg.EmailWindow)
	}
	if ll.ip == nil && ll.email == nil {
		return nil
	}
	return ll
}

// Check records an attempt and returns a user-facing reason when it is
// refused.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if ll == nil {
		return true, ""
	}
	if ll.ip != nil && !ll.ip.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if key := emailKey(email); ll.email != nil && key != "" && !ll.email.Allow(key) {
		return false, "Too many login attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the per-account count after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if ll == nil || ll.email == nil {
		return
	}
	if key := emailKey(email); key != "" {
		ll.email.Reset(key)
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
