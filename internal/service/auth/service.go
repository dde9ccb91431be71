package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/config"
	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
	apperrors "github.com/sirwalterjones/sessionremind/pkg/errors"
	"github.com/sirwalterjones/sessionremind/pkg/security"
)

const defaultPlanLimit = 100

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	cfg    config.JWTConfig
}

func NewService(repo repository.UserRepository, cfg config.JWTConfig) *Service {
	return &Service{
		repo:   repo,
		hasher: security.NewBcryptHasher(0),
		cfg:    cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Status:       model.UserStatusActive,
		PlanLimit:    defaultPlanLimit,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.BadRequest("email already registered", err)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized(fmt.Errorf("account %s", user.Status))
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ExpiryHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses a bearer token and returns the owner id it carries.
func (s *Service) ValidateToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.Unauthorized(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperrors.Unauthorized(fmt.Errorf("malformed claims"))
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized(err)
	}
	return id, nil
}
