package services

import (
	"log"

	"tournament-portal/middleware"
	"tournament-portal/models"
	"tournament-portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	DB        *gorm.DB
	Orders    OrderCreator
	KeyID     string
	KeySecret string
}

func NewPaymentService(db *gorm.DB, orders OrderCreator, keyID, keySecret string) *PaymentService {
	return &PaymentService{DB: db, Orders: orders, KeyID: keyID, KeySecret: keySecret}
}

// CreateOrder asks the provider for an order covering the tournament's
// entry fee. Nothing is written locally — a failed provider call leaves
// no state behind.
func (s *PaymentService) CreateOrder(c *fiber.Ctx) error {
	type Req struct {
		SubmissionID string `json:"submission_id"`
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.SubmissionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "submission_id is required"})
	}

	userID := middleware.UserID(c)

	var submission models.Submission
	if err := s.DB.First(&submission, "id = ?", req.SubmissionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "submission not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}
	if submission.UserID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "not your submission"})
	}
	if submission.PaymentStatus == models.PaymentPaid {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": "Payment already processed for this submission",
		})
	}

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", submission.TournamentID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching tournament details"})
	}

	amountPaise := utils.RupeesToPaise(tournament.EntryFee)

	order, err := s.Orders.CreateOrder(amountPaise, submission.ID)
	if err != nil {
		log.Printf("ERROR creating payment order for submission %s: %v", submission.ID, err)
		return c.Status(502).JSON(fiber.Map{"error": "Order creation failed"})
	}

	return c.JSON(fiber.Map{
		"order_id":       order.ID,
		"amount":         order.Amount,
		"amount_display": utils.FormatINR(order.Amount),
		"currency":       order.Currency,
		"key_id":         s.KeyID,
	})
}

// ConfirmPayment handles the checkout widget's callback. The signature is
// verified before any mutation. A duplicate callback appends a second
// ledger row — the ledger is append-only and reconciliation reads it whole.
func (s *PaymentService) ConfirmPayment(c *fiber.Ctx) error {
	type Req struct {
		SubmissionID      string `json:"submission_id"`
		PaidAmount        int64  `json:"paid_amount"` // paise
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.SubmissionID == "" || req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return c.Status(400).JSON(fiber.Map{"error": "submission_id and razorpay order/payment/signature fields are required"})
	}

	if !VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.KeySecret) {
		log.Printf("🚫 [PAYMENT] Signature mismatch for order %s", req.RazorpayOrderID)
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Payment signature verification failed",
		})
	}

	var submission models.Submission
	if err := s.DB.First(&submission, "id = ?", req.SubmissionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "submission not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching submission"})
	}

	userID := middleware.UserID(c)
	if submission.UserID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "not your submission"})
	}

	submission.PaymentStatus = models.PaymentPaid
	submission.PaidAmount = req.PaidAmount
	submission.RazorpayPaymentID = req.RazorpayPaymentID
	if err := s.DB.Save(&submission).Error; err != nil {
		// The user has paid externally at this point; surfacing the
		// failure is all we do — no compensating reversal exists.
		log.Printf("ERROR updating payment state for submission %s: %v", submission.ID, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update payment details",
		})
	}

	payment := models.Payment{
		ID:                uuid.NewString(),
		SubmissionID:      submission.ID,
		TournamentID:      submission.TournamentID,
		UserID:            submission.UserID,
		PaidAmount:        req.PaidAmount,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		PaymentMethod:     "razorpay",
		Status:            "paid",
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		log.Printf("ERROR appending payment ledger for submission %s: %v", submission.ID, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update payment details",
		})
	}

	log.Printf("💰 Payment recorded: submission=%s amount=%s", submission.ID, utils.FormatINR(req.PaidAmount))

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Payment processed successfully",
		"payment_id": payment.ID,
	})
}

// GetMyPayments lists the caller's ledger entries, newest first.
func (s *PaymentService) GetMyPayments(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var payments []models.Payment
	err := s.DB.
		Preload("Tournament").
		Where("user_id = ?", userID).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		log.Printf("ERROR fetching payments for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch payments"})
	}

	return c.JSON(payments)
}

// ListPayments is the admin ledger view.
func (s *PaymentService) ListPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	err := s.DB.
		Preload("Tournament").
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		log.Printf("ERROR fetching payments: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch payments"})
	}

	return c.JSON(payments)
}
