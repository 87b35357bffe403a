package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/config"
	"github.com/bookitlabs/bookit-server/internal/logging"
	"github.com/bookitlabs/bookit-server/internal/models"
)

// BcryptCost matches the stored hashes' cost factor.
const BcryptCost = 12

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidCredentials covers every authentication failure: unknown
// email, wrong password, inactive or soft-deleted staff. Callers must not
// distinguish between them.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Authenticate verifies credentials against an active, non-deleted staff
// row. The outcome is logged either way, with the password redacted.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var staff models.Staff
	err := s.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&staff).Error

	if err == gorm.ErrRecordNotFound {
		logging.WithRedacted(logrus.Fields{
			"email":    email,
			"password": password,
		}).Warn("login failed: email not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if staff.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)) != nil {
		logging.WithRedacted(logrus.Fields{
			"email":    email,
			"password": password,
		}).Warn("login failed: invalid password")
		return nil, ErrInvalidCredentials
	}

	logrus.WithFields(logrus.Fields{
		"staff_id": staff.ID,
		"email":    staff.Email,
		"role":     staff.Role,
	}).Info("login successful")

	return &staff, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// --------- JWT ---------

func (s *Service) AccessToken(staff *models.Staff) (string, error) {
	claims := jwt.MapClaims{
		"sub":   staff.ID,
		"email": staff.Email,
		"role":  staff.Role,
		"name":  staff.FullName(),
		"exp":   time.Now().Add(AccessTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Service) RefreshToken(staff *models.Staff) (string, error) {
	claims := jwt.MapClaims{
		"sub": staff.ID,
		"typ": "refresh",
		"exp": time.Now().Add(RefreshTokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
