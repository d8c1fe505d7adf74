package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aptivo/backend/config"
	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService is the single capability surface the rest of the app sees for
// identity. Two implementations exist: the database-backed one below and the
// in-memory mock store; config selects between them at startup.
type AuthService interface {
	Login(req dto.LoginRequest) (*dto.SessionDTO, error)
	Logout(token string) error
	GetSession(token string) (*dto.UserDTO, error)
	GetProfile(userID uuid.UUID) (*dto.UserDTO, error)
	Register(req dto.RegisterRequest) (*dto.UserDTO, error)
}

// NewAuthService picks the implementation named by config.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	if cfg.Auth.Backend == "mock" {
		log.Warn().Msg("Auth: using in-memory mock store")
		return NewMockAuthService(cfg, nil)
	}
	return NewDatabaseAuthService(cfg, userRepo)
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type databaseAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewDatabaseAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	return &databaseAuthService{cfg: cfg, userRepo: userRepo, revoked: make(map[string]time.Time)}
}

func (s *databaseAuthService) Login(req dto.LoginRequest) (*dto.SessionDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	if req.Remember {
		ttl = time.Duration(s.cfg.Auth.RememberDays) * 24 * time.Hour
	}
	expiresAt := time.Now().Add(ttl)

	claims := authClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing user response: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("User logged in")
	return &dto.SessionDTO{Token: token, ExpiresAt: expiresAt, User: userDTO}, nil
}

func (s *databaseAuthService) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now()
	// Opportunistic cleanup so the set does not grow without bound.
	if len(s.revoked) > 10000 {
		cutoff := time.Now().Add(-time.Duration(s.cfg.Auth.RememberDays) * 24 * time.Hour)
		for t, at := range s.revoked {
			if at.Before(cutoff) {
				delete(s.revoked, t)
			}
		}
	}
	return nil
}

func (s *databaseAuthService) GetSession(token string) (*dto.UserDTO, error) {
	s.mu.Lock()
	_, isRevoked := s.revoked[token]
	s.mu.Unlock()
	if isRevoked {
		return nil, ErrInvalidToken
	}

	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.GetProfile(userID)
}

func (s *databaseAuthService) GetProfile(userID uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", userID, err)
	}
	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing user response: %w", err)
	}
	return &userDTO, nil
}

func (s *databaseAuthService) Register(req dto.RegisterRequest) (*dto.UserDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Email:         req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, &user); err != nil {
		return nil, fmt.Errorf("preparing user response: %w", err)
	}
	log.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("User registered")
	return &userDTO, nil
}
