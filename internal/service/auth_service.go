package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/form-builder/internal/models"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/platform"
)

// AuthConfig defines configuration for the mock authentication flows.
type AuthConfig struct {
	Secret     string
	TTL        time.Duration
	StorageKey string
	LoginDelay time.Duration
}

// AuthService simulates the authentication backend. The user roster is fixed
// demo data; a successful login persists a signed session record through the
// platform storage so a later boot can restore it.
type AuthService struct {
	users     []models.User
	passwords map[string][]byte

	storage   platform.Storage
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService seeds the demo users. Both accounts use the demo password.
func NewAuthService(storage platform.Storage, validate *validator.Validate, logger *zap.Logger, cfg AuthConfig) *AuthService {
	if storage == nil {
		storage = platform.NewMemory()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = "currentUser"
	}
	if cfg.Secret == "" {
		cfg.Secret = "dev_secret"
	}
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}

	demoHash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		// bcrypt only fails on malformed cost; treat as unreachable but
		// keep the service usable with no valid password.
		logger.Error("failed to hash demo password", zap.Error(err))
		demoHash = nil
	}

	return &AuthService{
		users: []models.User{
			{ID: "1", Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin},
			{ID: "2", Username: "user", Email: "user@example.com", Role: models.RoleUser},
		},
		passwords: map[string][]byte{
			"admin": demoHash,
			"user":  demoHash,
		},
		storage:   storage,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Login authenticates a user after the simulated latency and persists the
// session record on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	req := models.LoginRequest{Username: username, Password: password}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if err := sleep(ctx, s.config.LoginDelay); err != nil {
		return nil, err
	}

	var user *models.User
	for i := range s.users {
		if s.users[i].Username == username {
			user = &s.users[i]
			break
		}
	}
	if user == nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	hash, ok := s.passwords[username]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(*user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	s.storage.Set(s.config.StorageKey, token)

	out := *user
	return &out, nil
}

// Logout removes the persisted session record. Always succeeds.
func (s *AuthService) Logout(ctx context.Context) error {
	s.storage.Remove(s.config.StorageKey)
	return nil
}

// CurrentUser restores the signed-in user from the persisted session record.
// Any missing, malformed or expired record yields nil.
func (s *AuthService) CurrentUser() *models.User {
	token, ok := s.storage.Get(s.config.StorageKey)
	if !ok {
		return nil
	}
	claims, err := s.ValidateToken(token)
	if err != nil {
		s.logger.Warn("persisted session rejected", zap.Error(err))
		s.storage.Remove(s.config.StorageKey)
		return nil
	}
	u := claims.User()
	return &u
}

// IssueToken signs a session record for the user.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	now := time.Now().UTC()
	claims := models.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

// ValidateToken parses and verifies a session record.
func (s *AuthService) ValidateToken(token string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "invalid or expired session")
	}
	return claims, nil
}
