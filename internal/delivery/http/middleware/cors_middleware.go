package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins to call the JSON endpoints. Any
// http://localhost origin is accepted outside release mode.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	release := gin.Mode() == gin.ReleaseMode

	return cors.New(cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", CSRFTokenHeaderName, RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}
			return !release && strings.HasPrefix(origin, "http://localhost")
		},
		MaxAge: 24 * time.Hour,
	})
}
