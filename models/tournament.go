package models

import (
	"time"
)

// TournamentStatus follows the registration window
type TournamentStatus string

const (
	TournamentComingSoon TournamentStatus = "coming_soon"
	TournamentOpen       TournamentStatus = "open"
	TournamentClosed     TournamentStatus = "closed"
)

// Tournament is a themed, time-boxed art/design competition.
// Status is flipped by the window scheduler, never computed at read time,
// so listings stay a single indexed query.
type Tournament struct {
	ID                 string           `json:"id" gorm:"primaryKey"`
	Title              string           `json:"title" gorm:"not null"`
	Slug               string           `json:"slug" gorm:"index"`
	Description        string           `json:"description" gorm:"type:text"`
	Category           string           `json:"category" gorm:"index"`
	RegistrationStart  time.Time        `json:"registration_start" gorm:"not null;index"`
	RegistrationEnd    time.Time        `json:"registration_end"`
	SubmissionDeadline *time.Time       `json:"submission_deadline,omitempty"`
	EntryFee           float64          `json:"entry_fee" gorm:"default:0"` // rupees
	Status             TournamentStatus `json:"status" gorm:"type:varchar(16);default:'coming_soon'"`
	BannerURL          string           `json:"banner_url"`
	CardImageURL       string           `json:"card_image_url"`
	CreatedAt          time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	// Calculated for listings, not stored
	SubmissionsCount int64 `json:"submissions_count,omitempty" gorm:"-"`
}
