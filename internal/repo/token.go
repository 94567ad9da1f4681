package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/pkg/jwthelp"
)

func (r *GormRepo) AddRefreshToken(ctx context.Context, userID uuid.UUID, rawToken, jti string, expiresAt time.Time) error {
	refreshModel := models.RefreshToken{
		Token:     jwthelp.Sha256Hex(rawToken),
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&refreshModel).Error
}

func (r *GormRepo) RefreshTokenExists(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) RefreshExpiredOrRevoked(ctx context.Context, jti string) (bool, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return true, err
	}
	if token.Revoked {
		return true, nil
	}
	return token.ExpiresAt < time.Now().Unix(), nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, rawToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", jwthelp.Sha256Hex(rawToken)).
		Update("revoked", true).Error
}
