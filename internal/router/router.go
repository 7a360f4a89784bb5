// Package router maps the HTTP surface onto the handlers.
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_tracker/internal/api"
	"finance_tracker/internal/config"
	"finance_tracker/internal/middleware"
	"finance_tracker/internal/service"
)

// New builds the gin engine with every route registered.
func New(cfg *config.Config, auth *service.AuthService, txs *service.TransactionService) (*gin.Engine, error) {
	r := gin.Default() // Logger and Recovery

	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	corsMiddleware, err := middleware.CORS(cfg.CORSOrigin)
	if err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}
	r.Use(middleware.SecureHeaders(cfg.IsProd), corsMiddleware)

	requireToken := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/register", api.RegisterHandler(auth))
	r.POST("/login", api.LoginHandler(auth))
	r.GET("/protected", requireToken, api.ProtectedHandler(auth))

	v1 := r.Group("/api/v1")
	v1.PUT("/user/deactivate", requireToken, api.DeactivateHandler(auth))
	v1.PUT("/user/activate/:id", api.ActivateHandler(auth)) // Open, no token required
	v1.PUT("/changepassword/", requireToken, api.ChangePasswordHandler(auth))
	v1.PUT("/changepassword", requireToken, api.ChangePasswordHandler(auth))
	v1.GET("/users", api.ListUsersHandler(auth)) // Open, no token required

	// Transaction routes
	v1.POST("/addtransaction", requireToken, api.AddTransactionHandler(txs))
	v1.GET("/income", requireToken, api.IncomeHandler(txs))
	v1.GET("/expense", requireToken, api.ExpenseHandler(txs))
	v1.GET("/transactions", requireToken, api.TransactionsHandler(txs))

	return r, nil
}
