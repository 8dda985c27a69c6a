package mw

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter stores a rate limiter per client key.
type KeyedRateLimiter struct {
	keys map[string]*rate.Limiter
	mu   *sync.RWMutex
	r    rate.Limit
	b    int
}

// NewKeyedRateLimiter creates a new KeyedRateLimiter.
func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		keys: make(map[string]*rate.Limiter),
		mu:   &sync.RWMutex{},
		r:    r,
		b:    b,
	}
}

// add creates a new rate limiter for a key.
func (k *KeyedRateLimiter) add(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	if limiter, exists := k.keys[key]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(k.r, k.b)
	k.keys[key] = limiter
	return limiter
}

// GetLimiter returns the rate limiter for a key.
func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, exists := k.keys[key]
	k.mu.RUnlock()

	if !exists {
		return k.add(key)
	}
	return limiter
}

// clientKey identifies the caller: the signed-in user when known, else the client IP.
func clientKey(c *gin.Context) string {
	if s, ok := SessionFrom(c); ok {
		return "user:" + strconv.FormatInt(s.UserID, 10)
	}
	return "ip:" + c.ClientIP()
}

// RateLimiter is a middleware for per-client rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(clientKey(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
