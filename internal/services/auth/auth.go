package auth

import (
	"context"
	"errors"
	"log/slog"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UsersStorage interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}

type AuthService struct {
	log     *slog.Logger
	storage UsersStorage
	secret  []byte
}

func New(log *slog.Logger, storage UsersStorage, secret string) *AuthService {
	return &AuthService{
		log:     log,
		storage: storage,
		secret:  []byte(secret),
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.Register"
	log := s.log.With("op", op, "email", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Error(err.Error())
		return nil, "", err
	}
	user, err := s.storage.Insert(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already registered")
			return nil, "", ErrEmailTaken
		}
		log.Error(err.Error())
		return nil, "", err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		log.Error(err.Error())
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.AuthService.Login"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return user, nil
}

// IssueToken signs {uid, isAdmin} with the process-wide secret. Tokens carry
// no expiry.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":     user.ID,
		"isAdmin": user.IsAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate verifies the token signature and yields the caller's identity
// from the claims alone; no storage lookup is involved.
func (s *AuthService) Authenticate(token string) (*models.Identity, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, ErrInvalidToken
	}
	isAdmin, _ := claims["isAdmin"].(bool)
	return &models.Identity{ID: uid, IsAdmin: isAdmin}, nil
}
