package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"catalog-gateway/pkg/response"
)

// RateLimiterConfig configures per-client rate limiting.
type RateLimiterConfig struct {
	// RPM is requests per minute per client.
	RPM int `json:"rpm"`
	// Burst is the short-term allowance above the steady rate.
	Burst int `json:"burst"`
	// CleanupInterval evicts limiters for clients not seen since then.
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultRateLimiterConfig returns the default configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RPM:             60,
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
	}
}

// RateLimiter applies a token bucket per client.
type RateLimiter struct {
	config  RateLimiterConfig
	clients map[string]*clientLimiter
	mutex   sync.Mutex
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RPM <= 0 {
		config.RPM = 60
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
	}
	go rl.cleanup()
	return rl
}

// RateLimit is the gin middleware entry point.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := rl.clientID(c)

		rl.mutex.Lock()
		client, exists := rl.clients[clientID]
		if !exists {
			client = &clientLimiter{
				limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.config.RPM)), rl.config.Burst),
			}
			rl.clients[clientID] = client
		}
		client.lastSeen = time.Now()
		rl.mutex.Unlock()

		if !client.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, response.ErrorResponse(
				"RATE_LIMIT_EXCEEDED",
				"Rate limit exceeded. Please try again later.",
				fmt.Sprintf("maximum %d requests per minute allowed", rl.config.RPM),
				GetCorrelationID(c),
			))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.config.RPM))
		c.Next()
	}
}

func (rl *RateLimiter) clientID(c *gin.Context) string {
	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		return "apikey:" + apiKey
	}
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return "ip:" + clientIP
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		now := time.Now()
		for clientID, client := range rl.clients {
			if now.Sub(client.lastSeen) > rl.config.CleanupInterval {
				delete(rl.clients, clientID)
			}
		}
		rl.mutex.Unlock()
	}
}
