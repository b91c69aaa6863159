package services

import (
	"tournament-portal/middleware"
	"tournament-portal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// AdminStats powers the admin dashboard header counts.
func (s *StatsService) AdminStats(c *fiber.Ctx) error {
	var totalUsers, totalTournaments, totalSubmissions int64
	var pendingSubmissions, totalCertificates, totalPayments int64

	counts := []struct {
		query *gorm.DB
		out   *int64
	}{
		{out: &totalUsers, query: s.DB.Model(&models.User{})},
		{out: &totalTournaments, query: s.DB.Model(&models.Tournament{})},
		{out: &totalSubmissions, query: s.DB.Model(&models.Submission{})},
		{out: &pendingSubmissions, query: s.DB.Model(&models.Submission{}).Where("status = ?", models.SubmissionPending)},
		{out: &totalCertificates, query: s.DB.Model(&models.Certificate{})},
		{out: &totalPayments, query: s.DB.Model(&models.Payment{})},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.out).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to compute stats", "cause": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"total_users":         totalUsers,
		"total_tournaments":   totalTournaments,
		"total_submissions":   totalSubmissions,
		"pending_submissions": pendingSubmissions,
		"total_certificates":  totalCertificates,
		"total_payments":      totalPayments,
	})
}

// MyStats powers the user dashboard header counts.
func (s *StatsService) MyStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var totalSubmissions, pendingSubmissions, approvedSubmissions, totalCertificates int64

	counts := []struct {
		query *gorm.DB
		out   *int64
	}{
		{out: &totalSubmissions, query: s.DB.Model(&models.Submission{}).Where("user_id = ?", userID)},
		{out: &pendingSubmissions, query: s.DB.Model(&models.Submission{}).Where("user_id = ? AND status = ?", userID, models.SubmissionPending)},
		{out: &approvedSubmissions, query: s.DB.Model(&models.Submission{}).Where("user_id = ? AND status = ?", userID, models.SubmissionApproved)},
		{out: &totalCertificates, query: s.DB.Model(&models.Certificate{}).Where("user_id = ?", userID)},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.out).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to compute stats", "cause": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"total_submissions":    totalSubmissions,
		"pending_submissions":  pendingSubmissions,
		"approved_submissions": approvedSubmissions,
		"total_certificates":   totalCertificates,
	})
}
