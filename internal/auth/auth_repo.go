package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/internal/user"
)

type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	UpdateUser(u *user.User) error

	SaveRefreshToken(token *user.RefreshToken) error
	GetRefreshToken(tokenString string) (*user.RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForUser(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *authRepository) SaveRefreshToken(token *user.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	if err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	return r.db.Model(&user.RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) InvalidateAllRefreshTokensForUser(userID uint) error {
	return r.db.Model(&user.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
