package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/events"
	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	pkg_hash "github.com/arkumar/ecommerce-backend/pkg/hash"
	"github.com/arkumar/ecommerce-backend/pkg/jwthelp"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
	"github.com/arkumar/ecommerce-backend/pkg/tokens"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *events.Producer
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) CreateAccessToken(role, id string, accessExp time.Time) (string, error) {
	accessClaims := tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}

	tokenAccess := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	return tokenAccess.SignedString(s.JWTSecret)
}

func (s *AuthService) CreateRefreshToken(id string, refreshExp time.Time) (string, string, error) {
	jti := jwthelp.NewJTI()
	refreshClaims := tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        jti,
		},
	}

	tokenRefresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	signed, err := tokenRefresh.SignedString(s.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if taken, err := s.Repo.ExistsByUsername(ctx, in.Username); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	} else if taken {
		l.Warn("register_conflict", "status", 409, "reason", "username taken")
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}
	if taken, err := s.Repo.ExistsByEmail(ctx, in.Email); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	} else if taken {
		l.Warn("register_conflict", "status", 409, "reason", "email taken")
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	pwHash, err := pkg_hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		// The unique constraints backstop the existence checks under races.
		l.Error("register_error", "status", 409, "error", err)
		return nil, fmt.Errorf("%w: account already exists", ErrConflict)
	}

	res, err := s.issueTokens(ctx, &user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as the wrong-password path so a caller cannot
			// probe which usernames exist.
			l.Warn("login_failed", "status", 401)
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401)
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	res, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("login_success")
	return res, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	if exists, err := s.Repo.RefreshTokenExists(ctx, claims.ID); err != nil {
		return nil, err
	} else if !exists {
		return nil, fmt.Errorf("%w: refresh token not found", ErrUnauthorized)
	}

	if dead, err := s.Repo.RefreshExpiredOrRevoked(ctx, claims.ID); err != nil {
		return nil, err
	} else if dead {
		return nil, fmt.Errorf("%w: token expired or revoked", ErrUnauthorized)
	}

	userID, err := parseUserID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		l.Error("refresh_error", "status", 500, "error", err)
		return nil, err
	}

	res, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("refresh_error", "status", 500, "error", err)
		return nil, err
	}

	l.Info("refresh_success", "user_id", user.ID)
	return res, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessExp := time.Now().Add(AccessTokenTTL)
	accessToken, err := s.CreateAccessToken(user.Role, user.ID.String(), accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(RefreshTokenTTL)
	refreshToken, jti, err := s.CreateRefreshToken(user.ID.String(), refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AddRefreshToken(ctx, user.ID, refreshToken, jti, refreshExp); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.Role == "admin",
	}, nil
}
