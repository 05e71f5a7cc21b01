package dto

import "github.com/yigit/isluportal/internal/app/models"

// PaymentRequest records a payment made through an online channel. The card
// block is checked and then dropped; only channel and amount are logged.
type PaymentRequest struct {
	Channel    string  `json:"channel" binding:"required,fieldsafe,max=40" example:"GCash"`
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"1500"`
	CardNumber string  `json:"cardNumber" binding:"cardnumber" example:"4111 1111 1111 1111"`
	CVV        string  `json:"cvv" binding:"cvv" example:"123"`
	Expiry     string  `json:"expiry" binding:"cardexpiry" example:"08/27"`
	CardHolder string  `json:"cardHolder" binding:"cardholder,max=60" example:"Juan S. Cruz"`
}

// StatementLine is one row of the breakdown of fees
type StatementLine struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Display     string  `json:"display" example:"P 1,500.00"`
}

// Statement is the statement of accounts for one session
type Statement struct {
	StudentID        string          `json:"studentId"`
	AsOf             string          `json:"asOf" example:"August 01, 2025"`
	AmountDue        float64         `json:"amountDue"`
	CurrentBalance   float64         `json:"currentBalance"`
	BeginningBalance float64         `json:"beginningBalance"`
	Status           string          `json:"status" example:"Outstanding Balance"`
	PrelimStatus     string          `json:"prelimStatus"`
	FinalsStatus     string          `json:"finalsStatus"`
	Lines            []StatementLine `json:"lines"`
}

// PaymentResponse reports a logged payment and the updated statement
type PaymentResponse struct {
	Payment     models.PaymentTransaction `json:"payment"`
	Overpayment float64                   `json:"overpayment"`
	FullyPaid   bool                      `json:"fullyPaid"`
	Statement   *Statement                `json:"statement"`
}
