package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"finpress-backend/internal/domains/user"
	"finpress-backend/pkg/jwt"
	"finpress-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

// NewUserService wires the account and authentication service.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{repo: repo, jwt: jwtManager}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := user.RoleAuthor
	if req.Role != "" {
		if role, err = user.ParseRole(req.Role); err != nil {
			return nil, err
		}
	}

	u, err := user.New(uuid.New(), req.Email, string(hashed), req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{"userID": u.ID.String(), "role": u.Role.String()})
	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrAccountDisabled
	}

	u.RecordLogin()
	if err := s.repo.Save(ctx, u); err != nil {
		logger.Warn("failed to record login time", map[string]interface{}{"userID": u.ID.String(), "error": err.Error()})
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, user.ErrAccountDisabled
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, user.ErrEmailAlreadyExists
		}
	}

	if err := u.UpdateProfile(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, req user.ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}

	u.UpdatePassword(string(hashed))
	return s.repo.Save(ctx, u)
}

func (s *userService) issueTokens(u *user.User) (*user.AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, err
	}

	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		User:         user.ToResponse(u),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
