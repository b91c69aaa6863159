package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"tournament-portal/middleware"
	"tournament-portal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type SubmissionService struct {
	DB      *gorm.DB
	Storage ObjectStorage
}

func NewSubmissionService(db *gorm.DB, storage ObjectStorage) *SubmissionService {
	return &SubmissionService{DB: db, Storage: storage}
}

// RegisterForTournament creates a draft submission holding the user's slot.
// The composite unique index on (user_id, tournament_id) is the real guard;
// the lookup below only exists to return a friendly message.
func (s *SubmissionService) RegisterForTournament(c *fiber.Ctx) error {
	tournamentID := c.Params("id")
	userID := middleware.UserID(c)

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching tournament"})
	}

	var existing models.Submission
	err := s.DB.Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		First(&existing).Error
	if err == nil {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": "You are already registered for this tournament",
		})
	}
	if err != gorm.ErrRecordNotFound {
		return c.Status(500).JSON(fiber.Map{"error": "DB error checking registration"})
	}

	submission := &models.Submission{
		ID:           uuid.NewString(),
		UserID:       userID,
		TournamentID: tournamentID,
		Title:        "Draft Submission",
		Status:       models.SubmissionDraft,
	}
	if err := s.DB.Create(submission).Error; err != nil {
		// lost the race against a concurrent registration
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": "You are already registered for this tournament",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"message":       "Successfully registered for tournament",
		"submission_id": submission.ID,
	})
}

// SubmitArtwork records an entry and its files. The submission row and all
// file rows commit in one transaction; objects already pushed to storage
// when the transaction fails are deleted best-effort.
func (s *SubmissionService) SubmitArtwork(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	tournamentID := c.FormValue("tournament_id")
	title := c.FormValue("title")
	description := c.FormValue("description")
	applicantName := c.FormValue("applicant_name")
	dateOfBirth := c.FormValue("date_of_birth")
	phoneNumber := c.FormValue("phone_number")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "multipart form required"})
	}
	files := form.File["files"]

	// --- Validation: reject before any write ---
	if tournamentID == "" || title == "" || description == "" || applicantName == "" || dateOfBirth == "" || len(files) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "tournament_id, title, description, applicant_name, date_of_birth, and at least one file are required"})
	}

	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid date_of_birth (use yyyy-mm-dd)"})
	}

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching tournament"})
	}
	if tournament.Status != models.TournamentOpen {
		log.Printf("⚠️  Submission for non-open tournament %s (status=%s) by user %s", tournamentID, tournament.Status, userID)
	}

	// Reuse the draft created at registration when one exists
	submission := &models.Submission{}
	err = s.DB.Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		First(submission).Error
	isNew := err == gorm.ErrRecordNotFound
	if err != nil && !isNew {
		return c.Status(500).JSON(fiber.Map{"error": "DB error checking existing submission"})
	}
	if isNew {
		submission.ID = uuid.NewString()
		submission.UserID = userID
		submission.TournamentID = tournamentID
	}

	submission.Title = title
	submission.Description = description
	submission.ApplicantName = applicantName
	submission.DateOfBirth = dob.Format("2006-01-02")
	submission.PhoneNumber = phoneNumber
	submission.Status = models.SubmissionPending
	if submission.PaymentStatus == "" {
		submission.PaymentStatus = models.PaymentUnpaid
	}

	var uploadedKeys []string
	var fileURLs []string

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if isNew {
			if err := tx.Create(submission).Error; err != nil {
				return err
			}
		}

		for _, fh := range files {
			key := fmt.Sprintf("submissions/%s/%s/%s", tournamentID, submission.ID, sanitizeFileName(fh.Filename))
			url, err := s.Storage.Upload(fh, key)
			if err != nil {
				return fmt.Errorf("failed to upload artwork file %q: %w", fh.Filename, err)
			}
			uploadedKeys = append(uploadedKeys, key)
			fileURLs = append(fileURLs, url)

			record := models.SubmissionFile{
				ID:           uuid.NewString(),
				SubmissionID: submission.ID,
				FileName:     fh.Filename,
				FilePath:     key,
				FileType:     fh.Header.Get("Content-Type"),
				FileSize:     fh.Size,
				FileURL:      url,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		// Primary image is the first uploaded file
		submission.ImageURL = fileURLs[0]
		return tx.Save(submission).Error
	})
	if txErr != nil {
		log.Printf("ERROR submitting artwork for tournament %s: %v", tournamentID, txErr)
		for _, key := range uploadedKeys {
			if err := s.Storage.Delete(key); err != nil {
				log.Printf("⚠️  Failed to clean up orphaned object %s: %v", key, err)
			}
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to record submission"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"message":       "Submission created successfully",
		"submission_id": submission.ID,
		"file_urls":     fileURLs,
	})
}

func (s *SubmissionService) GetSubmissionByID(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := middleware.UserID(c)

	var submission models.Submission
	err := s.DB.
		Preload("Tournament").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&submission, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "submission not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}

	if submission.UserID != userID && !isAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "not your submission"})
	}

	return c.JSON(submission)
}

// GetMySubmissions lists the caller's entries, newest first, with the
// owning tournament attached.
func (s *SubmissionService) GetMySubmissions(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var submissions []models.Submission
	err := s.DB.
		Preload("Tournament").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		log.Printf("ERROR fetching submissions for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch submissions"})
	}

	return c.JSON(submissions)
}

// GetMyTournaments lists tournaments the caller has entered.
func (s *SubmissionService) GetMyTournaments(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var tournaments []models.Tournament
	err := s.DB.
		Joins("JOIN submissions ON submissions.tournament_id = tournaments.id").
		Where("submissions.user_id = ?", userID).
		Order("tournaments.registration_start DESC").
		Find(&tournaments).Error
	if err != nil {
		log.Printf("ERROR fetching tournaments for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tournaments"})
	}

	return c.JSON(tournaments)
}

// GetMySubmissionForTournament returns the caller's entry for one
// tournament, or 404 when they have not registered.
func (s *SubmissionService) GetMySubmissionForTournament(c *fiber.Ctx) error {
	tournamentID := c.Params("id")
	userID := middleware.UserID(c)

	var submission models.Submission
	err := s.DB.
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "no submission for this tournament"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}

	return c.JSON(submission)
}

// ListSubmissions is the admin review queue. Optional ?status= filter.
func (s *SubmissionService) ListSubmissions(c *fiber.Ctx) error {
	db := s.DB.Preload("Tournament").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var submissions []models.Submission
	if err := db.Find(&submissions).Error; err != nil {
		log.Printf("ERROR fetching submissions: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch submissions"})
	}

	return c.JSON(submissions)
}

// ScoreSubmission records the administrator's review.
func (s *SubmissionService) ScoreSubmission(c *fiber.Ctx) error {
	type Req struct {
		Score    *int                    `json:"score"`
		Rank     *int                    `json:"rank,omitempty"`
		Feedback string                  `json:"feedback,omitempty"`
		Status   models.SubmissionStatus `json:"status,omitempty"`
	}

	id := c.Params("id")

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.Score == nil {
		return c.Status(400).JSON(fiber.Map{"error": "score is required"})
	}
	if *req.Score < 0 || *req.Score > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "score must be between 0 and 100"})
	}

	status := models.SubmissionScored
	switch req.Status {
	case "", models.SubmissionScored:
	case models.SubmissionApproved, models.SubmissionRejected:
		status = req.Status
	default:
		return c.Status(400).JSON(fiber.Map{"error": "status must be one of scored, approved, rejected"})
	}

	var submission models.Submission
	if err := s.DB.First(&submission, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "submission not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}

	submission.Score = req.Score
	if req.Rank != nil {
		submission.Rank = req.Rank
	}
	submission.Feedback = req.Feedback
	submission.Status = status

	if err := s.DB.Save(&submission).Error; err != nil {
		log.Printf("ERROR scoring submission %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Submission scored successfully",
	})
}

// sanitizeFileName slugs the base name but keeps the extension so stored
// keys stay URL-safe.
func sanitizeFileName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	cleaned := slug.Make(base)
	if cleaned == "" {
		cleaned = uuid.NewString()
	}
	return cleaned + ext
}

func isAdmin(c *fiber.Ctx) bool {
	roles, _ := c.Locals("user_roles").([]string)
	for _, r := range roles {
		if r == "admin" {
			return true
		}
	}
	return false
}
