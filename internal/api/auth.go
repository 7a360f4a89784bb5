package api

import (
	"errors"                              // Error matching
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated email accessor
	"finance_tracker/internal/service"    // Account operations
	"net/http"                            // HTTP status codes
	"strconv"                             // Path id parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Login key
	Password string `json:"password"` // Plaintext password
}

// Request struct for a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"` // Current password
	NewPassword string `json:"newPassword"` // Replacement password
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// Profile is the public part of a user returned by /protected
type Profile struct {
	ID       uint   `json:"_id"`      // User ID
	Email    string `json:"email"`    // Email
	Username string `json:"username"` // Username
}

// RegisterHandler creates a user account
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing fields are a failed user validation
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register", "error": err.Error()})
			return
		}
		user, err := auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exist"}) // Email is taken
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Requested email
				"error": err.Error(), // Error message
			}).Error("Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register", "error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Email
		}).Info("User registered")
		// Return the stored record, hash included
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Welcome " + req.Username,
			"newUserData": user,
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": err.Error()})
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email not found"})
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		case errors.Is(err, service.ErrAccountInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is inactive"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Error("Login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": err.Error()})
			return
		}
		logrus.WithField("email", req.Email).Info("User logged in")
		c.JSON(http.StatusOK, AuthResponse{Token: token}) // Return the token only
	}
}

// ProtectedHandler returns the profile of the authenticated user
func ProtectedHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := auth.Protected(c.Request.Context(), middleware.Email(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		data := make([]Profile, len(users)) // Project to id, email and username
		for i, u := range users {
			data[i] = Profile{ID: u.ID, Email: u.Email, Username: u.Username}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Protected route", "data": data})
	}
}

// DeactivateHandler soft deletes the authenticated account
func DeactivateHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Deactivate(c.Request.Context(), middleware.Email(c))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"email": middleware.Email(c), "error": err.Error()}).Error("Deactivation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while deactivating the account",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithField("user_id", user.ID).Info("Account deactivated")
		c.JSON(http.StatusOK, gin.H{"message": "Account is deactivated"})
	}
}

// ActivateHandler reactivates the account with the path id
func ActivateHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 0)
		if err != nil {
			// Not a valid user id at all
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while Activating the account",
				"error":   "invalid user id " + strconv.Quote(c.Param("id")),
			})
			return
		}
		user, err := auth.Activate(c.Request.Context(), uint(id))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("Activation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while Activating the account",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithField("user_id", user.ID).Info("Account activated")
		c.JSON(http.StatusOK, gin.H{"message": "Account is Activated"})
	}
}

// ChangePasswordHandler replaces the password of the authenticated user
func ChangePasswordHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while changing the password",
				"error":   err.Error(),
			})
			return
		}
		email := middleware.Email(c)
		err := auth.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		case errors.Is(err, service.ErrIncorrectPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect current password"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("Password change failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while changing the password",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithField("email", email).Info("Password changed")
		c.JSON(http.StatusOK, gin.H{"message": "Password change successful"})
	}
}

// ListUsersHandler returns every user record
func ListUsersHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := auth.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		if users == nil {
			users = []domain.User{} // Encode as an empty array
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}
