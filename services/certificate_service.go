package services

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"tournament-portal/middleware"
	"tournament-portal/models"
	"tournament-portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateService struct {
	DB *gorm.DB
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{DB: db}
}

// IssueCertificate creates the issuance record for a scored submission.
// At most one certificate per submission: the lookup returns the existing
// id, and the unique index on submission_id closes the race the lookup
// alone would leave open.
func (s *CertificateService) IssueCertificate(c *fiber.Ctx) error {
	submissionID := c.Params("id")

	var submission models.Submission
	err := s.DB.Preload("Tournament").First(&submission, "id = ?", submissionID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "submission not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}
	if submission.Score == nil {
		return c.Status(400).JSON(fiber.Map{"error": "submission has not been scored yet"})
	}

	var existing models.Certificate
	err = s.DB.Where("submission_id = ?", submissionID).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{
			"success":        false,
			"message":        "Certificate already exists for this submission",
			"certificate_id": existing.ID,
		})
	}
	if err != gorm.ErrRecordNotFound {
		return c.Status(500).JSON(fiber.Map{"error": "DB error checking certificate"})
	}

	certificate := models.Certificate{
		ID:                uuid.NewString(),
		SubmissionID:      submission.ID,
		UserID:            submission.UserID,
		TournamentID:      submission.TournamentID,
		CertificateNumber: newCertificateNumber(),
		IssueDate:         time.Now(),
		Status:            models.CertificateIssued,
	}

	if path, err := renderCertificate(&certificate, &submission); err != nil {
		// Rendering is cosmetic; the record is still issued without it
		log.Printf("⚠️  Failed to render certificate %s: %v", certificate.ID, err)
	} else {
		certificate.FilePath = path
	}

	if err := s.DB.Create(&certificate).Error; err != nil {
		// lost the race against a concurrent issuance; return the winner
		var winner models.Certificate
		if lookupErr := s.DB.Where("submission_id = ?", submissionID).First(&winner).Error; lookupErr == nil {
			return c.JSON(fiber.Map{
				"success":        false,
				"message":        "Certificate already exists for this submission",
				"certificate_id": winner.ID,
			})
		}
		log.Printf("ERROR creating certificate for submission %s: %v", submissionID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate certificate"})
	}

	log.Printf("🏅 Certificate issued: %s (%s)", certificate.ID, certificate.CertificateNumber)

	return c.Status(201).JSON(fiber.Map{
		"success":        true,
		"message":        "Certificate generated successfully",
		"certificate_id": certificate.ID,
	})
}

// GetMyCertificates lists the caller's certificates, newest first, with
// tournament and submission attached.
func (s *CertificateService) GetMyCertificates(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var certificates []models.Certificate
	err := s.DB.
		Preload("Tournament").
		Preload("Submission").
		Where("user_id = ?", userID).
		Order("issue_date DESC").
		Find(&certificates).Error
	if err != nil {
		log.Printf("ERROR fetching certificates for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch certificates"})
	}

	return c.JSON(certificates)
}

func (s *CertificateService) GetCertificateByID(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := middleware.UserID(c)

	var certificate models.Certificate
	err := s.DB.
		Preload("Tournament").
		Preload("Submission").
		Preload("User").
		First(&certificate, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "certificate not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching certificate"})
	}

	if certificate.UserID != userID && !isAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "not your certificate"})
	}

	return c.JSON(certificate)
}

// ListCertificates is the admin view of every issuance.
func (s *CertificateService) ListCertificates(c *fiber.Ctx) error {
	var certificates []models.Certificate
	err := s.DB.
		Preload("Tournament").
		Preload("User").
		Order("issue_date DESC").
		Find(&certificates).Error
	if err != nil {
		log.Printf("ERROR fetching certificates: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch certificates"})
	}

	return c.JSON(certificates)
}

// newCertificateNumber builds the human-readable token. It is best-effort
// readable, not a key — the unique index on submission_id is what prevents
// duplicate certificates.
func newCertificateNumber() string {
	return fmt.Sprintf("CERT-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// renderCertificate writes a printable HTML certificate under uploads/,
// served by the static route.
func renderCertificate(cert *models.Certificate, submission *models.Submission) (string, error) {
	tournamentTitle := ""
	if submission.Tournament != nil {
		tournamentTitle = submission.Tournament.Title
	}
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Certificate %s</title></head>
<body>
  <h1>Certificate of Achievement</h1>
  <p>Awarded to <strong>%s</strong></p>
  <p>for the entry &ldquo;%s&rdquo; in <strong>%s</strong></p>
  <p>Score: %d/100</p>
  <p>Certificate No: %s &mdash; Issued %s</p>
</body>
</html>
`,
		cert.CertificateNumber,
		submission.ApplicantName,
		submission.Title,
		tournamentTitle,
		*submission.Score,
		cert.CertificateNumber,
		cert.IssueDate.Format("02 Jan 2006"),
	)

	return utils.WriteUploadFile(fmt.Sprintf("certificates/%s.html", cert.ID), []byte(html))
}
