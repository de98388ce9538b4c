package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/utils"
	"golang.org/x/time/rate"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// CheckoutSecurityHeaders is stricter for the money-moving endpoints.
func CheckoutSecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Next()
	}
}

// CheckoutRateLimiter shares one token bucket across all checkout requests.
func CheckoutRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(429, gin.H{
				"status":  false,
				"message": "please wait before making another checkout request",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SettlementLogger records the outcome of every finalize attempt.
func SettlementLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}
		if c.Writer.Status() < 300 {
			utils.InfoLogger.WithFields(fields).Info("checkout request")
		} else {
			utils.ErrorLogger.WithFields(fields).Error("checkout request failed")
		}
	}
}
