package mw

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CachedResponse is a stored copy of a successful GET response.
type CachedResponse struct {
	Status  int         `json:"status"`
	Headers http.Header `json:"headers"`
	Body    []byte      `json:"body"`
}

// ResponseCache stores rendered responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (CachedResponse, bool)
	Set(ctx context.Context, key string, resp CachedResponse, ttl time.Duration)
}

// MemoryCache is an in-process ResponseCache backed by go-cache.
type MemoryCache struct {
	store *cache.Cache
}

// NewMemoryCache creates a MemoryCache with the given default expiration.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{store: cache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (CachedResponse, bool) {
	v, found := m.store.Get(key)
	if !found {
		return CachedResponse{}, false
	}
	return v.(CachedResponse), true
}

func (m *MemoryCache) Set(_ context.Context, key string, resp CachedResponse, ttl time.Duration) {
	m.store.Set(key, resp, ttl)
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache is a middleware for caching GET responses of read-only reports.
func Cache(store ResponseCache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if cached, found := store.Get(c.Request.Context(), key); found {
			for k, v := range cached.Headers {
				if k == "X-Request-Id" {
					continue
				}
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.Status)
			c.Writer.Write(cached.Body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			store.Set(c.Request.Context(), key, CachedResponse{
				Status:  blw.Status(),
				Headers: blw.Header().Clone(),
				Body:    blw.body.Bytes(),
			}, duration)
		}
	}
}
