package services

import (
	"log"
	"strconv"
	"strings"

	"tournament-portal/middleware"
	"tournament-portal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// SyncUser is the auth callback hook: find the account by email or create
// it. Email is normalized to lowercase before lookup.
func (s *UserService) SyncUser(c *fiber.Ctx) error {
	type Req struct {
		Email string `json:"email"`
		Name  string `json:"name,omitempty"`
		Image string `json:"image,omitempty"`
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email is required"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		return c.JSON(user)
	}
	if err != gorm.ErrRecordNotFound {
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching user"})
	}

	user = models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  req.Name,
		Image: req.Image,
		Role:  models.RoleUser,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// lost the race against a concurrent sync for the same email
		if lookupErr := s.DB.Where("email = ?", email).First(&user).Error; lookupErr == nil {
			return c.JSON(user)
		}
		log.Printf("ERROR creating user %s: %v", email, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	return c.Status(201).JSON(user)
}

func (s *UserService) GetMe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching user"})
	}

	return c.JSON(user)
}

// SearchUsers filters accounts by name or email for the admin dashboard.
func (s *UserService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.User{}).Limit(limit)
	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "search failed", "details": err.Error()})
	}

	return c.JSON(users)
}
