package models

import (
	"time"
)

// Payment is one confirmed entry-fee charge. Append-only: confirmation
// callbacks only ever insert here, reconciliation reads the whole ledger.
type Payment struct {
	ID           string `json:"id" gorm:"primaryKey"`
	SubmissionID string `json:"submission_id" gorm:"not null;index"`
	TournamentID string `json:"tournament_id" gorm:"index"`
	UserID       string `json:"user_id" gorm:"index"`

	PaidAmount int64 `json:"paid_amount"` // paise

	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`

	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(16);default:'razorpay'"`
	Status        string    `json:"status" gorm:"type:varchar(16);default:'paid'"`
	PaymentDate   time.Time `json:"payment_date" gorm:"autoCreateTime;index"`

	// Relationship used by the dashboard listing
	Tournament *Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
}
