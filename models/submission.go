package models

import (
	"time"
)

// SubmissionStatus is the review lifecycle of an entry
type SubmissionStatus string

const (
	SubmissionDraft         SubmissionStatus = "draft"
	SubmissionPending       SubmissionStatus = "pending"
	SubmissionPendingReview SubmissionStatus = "pending_review"
	SubmissionScored        SubmissionStatus = "scored"
	SubmissionApproved      SubmissionStatus = "approved"
	SubmissionRejected      SubmissionStatus = "rejected"
	SubmissionPaid          SubmissionStatus = "paid"
)

// PaymentState of a submission's entry fee
type PaymentState string

const (
	PaymentUnpaid PaymentState = "unpaid"
	PaymentPaid   PaymentState = "paid"
)

// Submission is one user's artwork entry for one tournament.
// The composite unique index replaces the old application-level
// "already registered?" query, which was racy under concurrent requests.
type Submission struct {
	ID           string           `json:"id" gorm:"primaryKey"`
	UserID       string           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_tournament"`
	TournamentID string           `json:"tournament_id" gorm:"not null;uniqueIndex:idx_user_tournament"`
	Title        string           `json:"title" gorm:"not null"`
	Description  string           `json:"description" gorm:"type:text"`

	ApplicantName string `json:"applicant_name"`
	DateOfBirth   string `json:"date_of_birth" gorm:"type:varchar(10)"` // yyyy-mm-dd
	PhoneNumber   string `json:"phone_number" gorm:"type:varchar(20)"`

	Status        SubmissionStatus `json:"status" gorm:"type:varchar(16);default:'draft';index"`
	PaymentStatus PaymentState     `json:"payment_status" gorm:"type:varchar(8);default:'unpaid'"`
	PaidAmount    int64            `json:"paid_amount" gorm:"default:0"` // paise

	Score    *int   `json:"score,omitempty"`
	Rank     *int   `json:"rank,omitempty"`
	Feedback string `json:"feedback" gorm:"type:text"`

	ImageURL          string `json:"image_url"` // first uploaded file
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Tournament *Tournament      `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
	Files      []SubmissionFile `json:"files,omitempty" gorm:"foreignKey:SubmissionID"`
}

// SubmissionFile records one uploaded artwork binary. Rows are immutable
// after creation; FilePath is the object storage key.
type SubmissionFile struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubmissionID string    `json:"submission_id" gorm:"not null;index"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	FileURL      string    `json:"file_url"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
