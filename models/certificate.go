package models

import (
	"time"
)

// CertificateStatus of an issued record
type CertificateStatus string

const (
	CertificateIssued  CertificateStatus = "issued"
	CertificatePending CertificateStatus = "pending"
	CertificateRevoked CertificateStatus = "revoked"
)

// Certificate is proof of participation/achievement for a scored
// submission. The unique index on SubmissionID is the real duplicate
// guard; CertificateNumber is a human-readable token, not a key.
type Certificate struct {
	ID           string `json:"id" gorm:"primaryKey"`
	SubmissionID string `json:"submission_id" gorm:"not null;uniqueIndex"`
	UserID       string `json:"user_id" gorm:"index"`
	TournamentID string `json:"tournament_id" gorm:"index"`

	CertificateNumber string            `json:"certificate_number" gorm:"not null"`
	IssueDate         time.Time         `json:"issue_date" gorm:"index"`
	Status            CertificateStatus `json:"status" gorm:"type:varchar(16);default:'issued'"`
	FilePath          string            `json:"file_path,omitempty"` // rendered HTML under uploads/

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships for enriched detail views
	Tournament *Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
	Submission *Submission `json:"submission,omitempty" gorm:"foreignKey:SubmissionID"`
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
