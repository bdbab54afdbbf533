// team/model.go
package team

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is keyed by a generated uuid, not by its display name, so two leaders
// picking the same name in different leagues cannot collide and renames do
// not break back-references.
type Team struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	TeamName   string    `json:"team_name" gorm:"not null;uniqueIndex:idx_team_name_league"`
	LeaderID   uint      `json:"leader_id" gorm:"not null;index"`
	LeagueID   uint      `json:"league_id" gorm:"not null;index;uniqueIndex:idx_team_name_league"`
	DivisionID uint      `json:"division_id" gorm:"not null;index"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember is one confirmed player on a team. The leader always has a
// membership row. The unique index on (team_id, user_id) makes the players
// set a real set.
type TeamMember struct {
	gorm.Model
	TeamID   string    `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_member_team_user"`
	UserID   uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_member_team_user;index"`
	JoinedAt time.Time `json:"joined_at"`
}

// JoinRequest is a pending expression of interest. A row exists only while
// the request is undecided: accepting moves the user into team_members and
// deletes the row, denying just deletes the row. The unique index keeps the
// set free of duplicates, which is what makes RequestToJoin idempotent.
type JoinRequest struct {
	gorm.Model
	TeamID string `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_request_team_user"`
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_request_team_user;index"`
}
