package services

import (
	"log"
	"path/filepath"
	"strconv"
	"time"

	"tournament-portal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TournamentService struct {
	DB      *gorm.DB
	Storage ObjectStorage
}

func NewTournamentService(db *gorm.DB, storage ObjectStorage) *TournamentService {
	return &TournamentService{DB: db, Storage: storage}
}

func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	// --- Parse form values ---
	title := c.FormValue("title")
	description := c.FormValue("description")
	category := c.FormValue("category")
	regStartStr := c.FormValue("registration_start")
	regEndStr := c.FormValue("registration_end")
	deadlineStr := c.FormValue("submission_deadline")
	entryFeeStr := c.FormValue("entry_fee")
	statusStr := c.FormValue("status")

	// --- Validation ---
	if title == "" || category == "" || regStartStr == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title, category, and registration_start are required"})
	}

	regStart, err := time.Parse(time.RFC3339, regStartStr)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid registration_start (use RFC3339)"})
	}

	var regEnd time.Time
	if regEndStr != "" {
		regEnd, err = time.Parse(time.RFC3339, regEndStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid registration_end (use RFC3339)"})
		}
	}

	var deadline *time.Time
	if deadlineStr != "" {
		d, err := time.Parse(time.RFC3339, deadlineStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid submission_deadline (use RFC3339)"})
		}
		deadline = &d
	}

	entryFee := 0.0
	if entryFeeStr != "" {
		if f, err := strconv.ParseFloat(entryFeeStr, 64); err == nil && f >= 0 {
			entryFee = f
		} else {
			return c.Status(400).JSON(fiber.Map{"error": "entry_fee must be a non-negative number"})
		}
	}

	status := models.TournamentComingSoon
	switch models.TournamentStatus(statusStr) {
	case models.TournamentOpen, models.TournamentClosed, models.TournamentComingSoon:
		status = models.TournamentStatus(statusStr)
	case "":
		// scheduler will open it when the window starts
	default:
		return c.Status(400).JSON(fiber.Map{"error": "status must be one of coming_soon, open, closed"})
	}

	tournament := &models.Tournament{
		ID:                 uuid.NewString(),
		Title:              title,
		Slug:               slug.Make(title),
		Description:        description,
		Category:           category,
		RegistrationStart:  regStart,
		RegistrationEnd:    regEnd,
		SubmissionDeadline: deadline,
		EntryFee:           entryFee,
		Status:             status,
	}

	// --- Handle banner / card images → R2 ---
	if banner, err := c.FormFile("banner"); err == nil && banner.Size > 0 {
		key := "tournaments/banners/" + tournament.ID + filepath.Ext(banner.Filename)
		url, err := s.Storage.Upload(banner, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload banner image"})
		}
		tournament.BannerURL = url
	}
	if card, err := c.FormFile("card_image"); err == nil && card.Size > 0 {
		key := "tournaments/cards/" + tournament.ID + filepath.Ext(card.Filename)
		url, err := s.Storage.Upload(card, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload card image"})
		}
		tournament.CardImageURL = url
	}

	if err := s.DB.Create(tournament).Error; err != nil {
		log.Printf("ERROR creating tournament: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	return c.Status(201).JSON(tournament)
}

// GetOpenTournaments is the public listing: open tournaments only,
// newest registration window first.
func (s *TournamentService) GetOpenTournaments(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	err := s.DB.
		Where("status = ?", models.TournamentOpen).
		Order("registration_start DESC").
		Find(&tournaments).Error
	if err != nil {
		log.Printf("ERROR fetching open tournaments: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tournaments"})
	}
	return c.JSON(tournaments)
}

// GetAllTournaments is the admin listing across every status.
func (s *TournamentService) GetAllTournaments(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	err := s.DB.
		Order("registration_start DESC").
		Find(&tournaments).Error
	if err != nil {
		log.Printf("ERROR fetching tournaments: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tournaments"})
	}

	for i := range tournaments {
		s.DB.Model(&models.Submission{}).
			Where("tournament_id = ?", tournaments[i].ID).
			Count(&tournaments[i].SubmissionsCount)
	}

	return c.JSON(tournaments)
}

func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching tournament"})
	}

	s.DB.Model(&models.Submission{}).
		Where("tournament_id = ?", tournament.ID).
		Count(&tournament.SubmissionsCount)

	return c.JSON(tournament)
}

func (s *TournamentService) UpdateTournament(c *fiber.Ctx) error {
	id := c.Params("id")

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching tournament"})
	}

	if v := c.FormValue("title"); v != "" {
		tournament.Title = v
		tournament.Slug = slug.Make(v)
	}
	if v := c.FormValue("description"); v != "" {
		tournament.Description = v
	}
	if v := c.FormValue("category"); v != "" {
		tournament.Category = v
	}
	if v := c.FormValue("registration_start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid registration_start (use RFC3339)"})
		}
		tournament.RegistrationStart = t
	}
	if v := c.FormValue("registration_end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid registration_end (use RFC3339)"})
		}
		tournament.RegistrationEnd = t
	}
	if v := c.FormValue("submission_deadline"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid submission_deadline (use RFC3339)"})
		}
		tournament.SubmissionDeadline = &t
	}
	if v := c.FormValue("entry_fee"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "entry_fee must be a non-negative number"})
		}
		tournament.EntryFee = f
	}
	if v := c.FormValue("status"); v != "" {
		switch models.TournamentStatus(v) {
		case models.TournamentComingSoon, models.TournamentOpen, models.TournamentClosed:
			tournament.Status = models.TournamentStatus(v)
		default:
			return c.Status(400).JSON(fiber.Map{"error": "status must be one of coming_soon, open, closed"})
		}
	}

	if banner, err := c.FormFile("banner"); err == nil && banner.Size > 0 {
		key := "tournaments/banners/" + tournament.ID + filepath.Ext(banner.Filename)
		url, err := s.Storage.Upload(banner, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload banner image"})
		}
		tournament.BannerURL = url
	}
	if card, err := c.FormFile("card_image"); err == nil && card.Size > 0 {
		key := "tournaments/cards/" + tournament.ID + filepath.Ext(card.Filename)
		url, err := s.Storage.Upload(card, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload card image"})
		}
		tournament.CardImageURL = url
	}

	if err := s.DB.Save(&tournament).Error; err != nil {
		log.Printf("ERROR updating tournament %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}

	return c.JSON(tournament)
}

// DeleteTournament is destructive and does not cascade; submissions keep
// their tournament_id and detail views degrade to best-effort enrichment.
func (s *TournamentService) DeleteTournament(c *fiber.Ctx) error {
	id := c.Params("id")

	res := s.DB.Delete(&models.Tournament{}, "id = ?", id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	}

	log.Printf("🗑️  Tournament %s deleted", id)
	return c.JSON(fiber.Map{"success": true, "message": "Tournament deleted"})
}
