package middleware

import (
	"net/http" // HTTP methods
	"strings"  // Origin list parsing
	"time"     // Preflight cache lifetime

	"github.com/gin-contrib/cors"   // CORS middleware
	"github.com/gin-contrib/secure" // Security headers middleware
	"github.com/gin-gonic/gin"      // Gin web framework
)

// SecureHeaders sets browser security headers on every response.
// Strict-Transport-Security is only sent in production.
func SecureHeaders(isProd bool) gin.HandlerFunc {
	return secure.New(secure.Config{
		STSSeconds:              15552000, // 180 days
		STSIncludeSubdomains:    true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		IENoOpen:                true,
		ReferrerPolicy:          "no-referrer",
		IsDevelopment:           !isProd,
	})
}

// CORS allows the comma separated origins ("*" for any) and answers preflight requests
func CORS(origins string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			cfg.AllowAllOrigins = true
		default:
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowOrigins = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cors.New(cfg), nil
}
