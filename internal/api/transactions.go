package api

import (
	"errors"                              // Error matching
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated email accessor
	"finance_tracker/internal/service"    // Bookkeeping operations
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for a new transaction. Pointers let false and 0 pass the
// required check.
type AddTransactionRequest struct {
	CategoryName      string   `json:"categoryName" binding:"required"`      // Category label
	CategoryImageLink string   `json:"categoryImageLink" binding:"required"` // Category icon link
	TransactionType   *bool    `json:"transactionType" binding:"required"`   // true for income, false for expense
	Amount            *float64 `json:"amount" binding:"required"`            // Amount
	Date              string   `json:"date" binding:"required"`              // Date, stored as given
}

// OwnerRef is the populated owner of a listed transaction
type OwnerRef struct {
	ID       uint   `json:"_id"`      // User ID
	Username string `json:"username"` // Username
}

// TransactionResponse is the JSON form of a transaction. UserID is the bare
// owner id on creation and an OwnerRef in listings.
type TransactionResponse struct {
	ID                uint    `json:"_id"`               // Transaction ID
	UserID            any     `json:"userId"`            // Owner id or OwnerRef
	CategoryName      string  `json:"categoryName"`      // Category label
	CategoryImageLink string  `json:"categoryImageLink"` // Category icon link
	TransactionType   bool    `json:"transactionType"`   // true for income, false for expense
	Amount            float64 `json:"amount"`            // Amount
	Date              string  `json:"date"`              // Date
}

func newTransactionResponse(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                tx.ID,
		UserID:            tx.UserID,
		CategoryName:      tx.CategoryName,
		CategoryImageLink: tx.CategoryImageLink,
		TransactionType:   tx.TransactionType,
		Amount:            tx.Amount,
		Date:              tx.Date,
	}
	if tx.Owner != nil {
		resp.UserID = OwnerRef{ID: tx.Owner.ID, Username: tx.Owner.Username} // Populate the owner
	}
	return resp
}

func newTransactionList(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = newTransactionResponse(tx)
	}
	return out
}

// AddTransactionHandler records a transaction for the authenticated user
func AddTransactionHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()}) // Failed transaction validation
			return
		}
		email := middleware.Email(c)
		tx, err := txs.Add(c.Request.Context(), email, service.NewTransaction{
			CategoryName:      req.CategoryName,
			CategoryImageLink: req.CategoryImageLink,
			TransactionType:   *req.TransactionType,
			Amount:            *req.Amount,
			Date:              req.Date,
		})
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		case errors.Is(err, service.ErrOwnerMissing):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"email": email,       // Owner email
				"error": err.Error(), // Error message
			}).Error("Error creating transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        tx.UserID,          // Owner ID
			"transaction_id": tx.ID,              // Transaction ID
			"income":         tx.TransactionType, // Transaction type
			"amount":         tx.Amount,          // Amount
		}).Info("Transaction created")
		c.JSON(http.StatusCreated, gin.H{"newTransaction": newTransactionResponse(*tx)})
	}
}

// IncomeHandler lists the transactions matching the transactionType query value
func IncomeHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := txs.ListIncome(c.Request.Context(), middleware.Email(c), c.Query("transactionType"))
		respondFiltered(c, listing, err)
	}
}

// ExpenseHandler lists the expense transactions of the authenticated user.
// The transactionType query value is accepted but does not change the filter.
func ExpenseHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := txs.ListExpense(c.Request.Context(), middleware.Email(c))
		respondFiltered(c, listing, err)
	}
}

// TransactionsHandler lists every transaction of the authenticated user
func TransactionsHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := txs.ListAll(c.Request.Context(), middleware.Email(c))
		if respondListError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": newTransactionList(listing.Transactions)})
	}
}

// respondFiltered answers a typed listing; an empty result is a 200 message
func respondFiltered(c *gin.Context, listing *service.Listing, err error) {
	if respondListError(c, err) {
		return
	}
	if len(listing.Transactions) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No transactions found for " + listing.Owner.Username})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": newTransactionList(listing.Transactions)})
}

// respondListError writes the failure response and reports whether it did
func respondListError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return true
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error("Error getting transactions")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	return true
}
