// internal/auth/service.go
package auth

import (
	"errors"
	"log"
	"time"

	"quiz-portal/internal/guard"
	"quiz-portal/internal/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user table the auth flow needs.
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
}

type Service struct {
	repo      UserStore
	guard     *guard.Service
	jwtSecret []byte
}

func NewService(repo UserStore, loginGuard *guard.Service, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		guard:     loginGuard,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login verifies credentials behind the login guard. The guard is checked
// before touching the password at all; a blocked account short-circuits
// with guard.ErrBlocked and no attempt is recorded. Every verification
// that does run is recorded with its outcome, success or failure. The
// returned LoginAttempt lets the handler surface remaining attempts.
func (s *Service) Login(email, password string) (string, *models.LoginAttempt, error) {
	blocked, err := s.guard.IsBlocked(email)
	if err != nil {
		// Store unreachable: surface it rather than silently letting
		// attempts through unchecked.
		return "", nil, err
	}
	if blocked {
		return "", nil, guard.ErrBlocked
	}

	user, err := s.repo.GetUserByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		// User store unreachable. Surface it unrecorded: an outage is
		// not a wrong password, and counting it could lock a
		// legitimate account during a backend blip.
		return "", nil, err
	}
	wasSuccessful := err == nil &&
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil

	// Always record the outcome. A guard write failure is logged and
	// reported alongside, but never overrides the credential result.
	attempt, guardErr := s.guard.RecordAttempt(email, wasSuccessful)
	if guardErr != nil {
		log.Printf("Error recording login attempt for %s: %v", email, guardErr)
	}

	if !wasSuccessful {
		return "", attempt, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", attempt, err
	}

	return tokenString, attempt, nil
}

func (s *Service) Register(user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	return s.repo.CreateUser(user)
}
