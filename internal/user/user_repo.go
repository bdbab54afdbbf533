package user

import (
	"errors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(u *User) error
	GetByID(id uint) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	UpdateFields(id uint, fields map[string]interface{}) error
	GetLeaders(teamNameFilter string, page, limit int) ([]User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) GetByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&User{}).Where("id = ?", id).Updates(fields).Error
}

// GetLeaders lists users holding the Leader role, optionally filtered by the
// team name they lead. Backs the public captains directory.
func (r *userRepository) GetLeaders(teamNameFilter string, page, limit int) ([]User, int64, error) {
	var leaders []User
	var total int64

	query := r.db.Model(&User{}).Where("role = ?", RoleLeader)
	if teamNameFilter != "" {
		query = query.Where("team_name ILIKE ?", "%"+teamNameFilter+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("team_name asc").Find(&leaders).Error; err != nil {
		return nil, 0, err
	}
	return leaders, total, nil
}
