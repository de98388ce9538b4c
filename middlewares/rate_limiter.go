package middlewares

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/utils"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-IP sliding window.
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(rate int, interval int) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: time.Duration(interval) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

// NewStrictRateLimiter guards PIN login: burst of 5, then one attempt per minute.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(1*time.Minute), 5)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "too many attempts, please wait",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit rejects a client that already made rate requests inside the window.
// Clients with no request inside the window are forgotten.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		cutoff := now.Add(-rl.interval)
		for other, hits := range rl.ips {
			if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
				delete(rl.ips, other)
			}
		}
		valid := rl.ips[ip][:0]
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}
		if len(valid) >= rl.rate {
			rl.ips[ip] = valid
			retry := valid[0].Add(rl.interval).Sub(now)
			rl.mu.Unlock()

			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many requests"))
			c.Abort()
			return
		}
		rl.ips[ip] = append(valid, now)
		rl.mu.Unlock()

		c.Next()
	}
}
