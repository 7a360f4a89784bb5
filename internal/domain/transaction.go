package domain

// Transaction Model
type Transaction struct {
	ID                uint    `gorm:"primaryKey" json:"_id"`                    // Primary key
	UserID            uint    `gorm:"not null;index" json:"userId"`             // Foreign key to the owning User
	Owner             *User   `gorm:"foreignKey:UserID" json:"owner,omitempty"` // Owner id and username, loaded on listings
	CategoryName      string  `gorm:"not null" json:"categoryName"`             // Category label
	CategoryImageLink string  `gorm:"not null" json:"categoryImageLink"`        // Category icon link
	TransactionType   bool    `gorm:"not null" json:"transactionType"`          // true for income, false for expense
	Amount            float64 `gorm:"not null" json:"amount"`                   // Amount of the transaction
	Date              string  `gorm:"not null" json:"date"`                     // Caller supplied date, stored as is
}

// Values of Transaction.TransactionType
const (
	Income  = true
	Expense = false
)
