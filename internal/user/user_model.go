package user

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

// Role is the single application-wide role stored on a user record.
// Transitions only move upward in capability: registration grants Player,
// creating a team grants Leader, Admin is assigned through the admin console.
// Nothing ever demotes a role automatically.
const (
	RoleUnset  = ""
	RolePlayer = "Player"
	RoleLeader = "Leader"
	RoleAdmin  = "Admin"
)

// matriculaPattern is the enrollment id format: a literal 'A' followed by
// eight digits, e.g. A01234567.
var matriculaPattern = regexp.MustCompile(`^A[0-9]{8}$`)

// ValidMatricula reports whether s is a well-formed enrollment id.
func ValidMatricula(s string) bool {
	return matriculaPattern.MatchString(s)
}

type User struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	Matricula string `gorm:"index" json:"matricula"` // empty until the profile is completed
	Role      string `gorm:"default:'Player'" json:"role"`
	TeamName  string `json:"team_name"` // denormalized display name of the user's current team
}

// EffectiveRole returns the stored role, defaulting to Player for records
// written before the role field existed.
func (u *User) EffectiveRole() string {
	if u.Role == RoleUnset {
		return RolePlayer
	}
	return u.Role
}

// ProfileComplete reports whether the user has supplied their enrollment id.
// Role-gated features stay locked until this is true.
func (u *User) ProfileComplete() bool {
	return u.Matricula != ""
}

// RefreshToken is a persisted, revocable session token.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
