package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/aptivo/backend/config"
	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/bcrypt"
)

// mockAuthService is the development/test auth backend: an explicit,
// constructor-injected in-memory store rather than ambient package state,
// so tests can run isolated instances. Tokens are opaque uuids mapped to
// users for the configured TTL.
type mockAuthService struct {
	cfg *config.Config

	mu       sync.Mutex
	users    map[string]*model.User // by email
	sessions map[string]mockSession // by token
}

type mockSession struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// NewMockAuthService seeds the store from the given snapshot; nil seeds an
// empty store.
func NewMockAuthService(cfg *config.Config, seed []model.User) AuthService {
	s := &mockAuthService{
		cfg:      cfg,
		users:    make(map[string]*model.User),
		sessions: make(map[string]mockSession),
	}
	for i := range seed {
		u := seed[i]
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		s.users[u.Email] = &u
	}
	return s
}

func (s *mockAuthService) Login(req dto.LoginRequest) (*dto.SessionDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[req.Email]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	if req.Remember {
		ttl = time.Duration(s.cfg.Auth.RememberDays) * 24 * time.Hour
	}
	token := uuid.NewString()
	expiresAt := time.Now().Add(ttl)
	s.sessions[token] = mockSession{userID: user.ID, expiresAt: expiresAt}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing user response: %w", err)
	}
	return &dto.SessionDTO{Token: token, ExpiresAt: expiresAt, User: userDTO}, nil
}

func (s *mockAuthService) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *mockAuthService) GetSession(token string) (*dto.UserDTO, error) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, ErrInvalidToken
	}
	return s.GetProfile(sess.userID)
}

func (s *mockAuthService) GetProfile(userID uuid.UUID) (*dto.UserDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == userID {
			var userDTO dto.UserDTO
			if err := copier.Copy(&userDTO, user); err != nil {
				return nil, fmt.Errorf("preparing user response: %w", err)
			}
			return &userDTO, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", userID)
}

func (s *mockAuthService) Register(req dto.RegisterRequest) (*dto.UserDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := &model.User{
		ID:            uuid.New(),
		Email:         req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
	}
	s.users[req.Email] = user

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing user response: %w", err)
	}
	return &userDTO, nil
}
