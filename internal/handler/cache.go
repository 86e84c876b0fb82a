// Package handler provides the HTTP handlers for the agent gateway.
package handler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edulab/agent-gateway/internal/ui"
)

// Identical chat prompts are common in demo and classroom use, and provider
// calls are slow and metered, so successful /chat replies are cached for a
// short TTL keyed by the SHA-256 of the request body. The gateways stay
// cache-free; this lives entirely at the HTTP layer.

const (
	// DefaultCacheTTL is the default time-to-live for cached replies.
	DefaultCacheTTL = 5 * time.Minute

	// cleanupInterval is how often the cache cleaner runs.
	cleanupInterval = 1 * time.Minute
)

// cacheEntry is a cached reply with its expiration time.
type cacheEntry struct {
	response []byte
	expireAt time.Time
}

func (e *cacheEntry) expired() bool {
	return time.Now().After(e.expireAt)
}

// ReplyCache is a thread-safe in-memory cache for chat replies.
type ReplyCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	logger  *slog.Logger

	hits   int64
	misses int64
}

// ReplyCacheOption is a functional option for configuring ReplyCache.
type ReplyCacheOption func(*ReplyCache)

// WithCacheTTL sets a custom TTL for cached replies.
func WithCacheTTL(ttl time.Duration) ReplyCacheOption {
	return func(c *ReplyCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets a custom logger.
func WithCacheLogger(logger *slog.Logger) ReplyCacheOption {
	return func(c *ReplyCache) {
		c.logger = logger
	}
}

// NewReplyCache creates a ReplyCache and starts its TTL cleanup goroutine.
func NewReplyCache(opts ...ReplyCacheOption) *ReplyCache {
	c := &ReplyCache{
		entries: make(map[string]*cacheEntry),
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.startCleanup()

	return c
}

// HashBody returns the SHA-256 cache key for a request body.
func HashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached reply by key.
func (c *ReplyCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}
	if entry.expired() {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	c.hits++
	return entry.response, true
}

// Set stores a reply in the cache with the configured TTL.
func (c *ReplyCache) Set(key string, response []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		response: response,
		expireAt: time.Now().Add(c.ttl),
	}
}

// Stats returns cache hit/miss statistics and the current entry count.
func (c *ReplyCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}

// startCleanup periodically removes expired entries.
func (c *ReplyCache) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes all expired entries from the cache.
func (c *ReplyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0

	for key, entry := range c.entries {
		if now.After(entry.expireAt) {
			delete(c.entries, key)
			expired++
		}
	}

	if expired > 0 && c.logger != nil {
		c.logger.Debug("cache cleanup",
			slog.Int("expired_entries", expired),
			slog.Int("remaining_entries", len(c.entries)),
		)
	}
}

// CacheMiddleware caches successful POST /chat responses.
// Flow: hash the body, return the cached reply on a hit, otherwise capture
// and store the handler's 200 response. Degraded placeholder replies (the
// handler sets "reply_degraded") are never stored, so a transient provider
// failure does not pin a warning text for the full TTL.
func CacheMiddleware(cache *ReplyCache, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.URL.Path != "/chat" {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		cacheKey := HashBody(bodyBytes)

		if cached, found := cache.Get(cacheKey); found {
			if logger != nil {
				logger.Info("cache hit",
					slog.String("cache_key", cacheKey[:12]+"..."),
				)
			}
			ui.PrintCacheHit(cacheKey, 0)

			c.Set("cache_hit", true)
			c.Data(http.StatusOK, "application/json", cached)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK && !c.GetBool("reply_degraded") {
			cache.Set(cacheKey, writer.body.Bytes())

			if logger != nil {
				logger.Debug("response cached",
					slog.String("cache_key", cacheKey[:12]+"..."),
					slog.Int("size_bytes", writer.body.Len()),
				)
			}
		}
	}
}

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write captures the response body while writing to the original writer.
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
