// match/model.go
package match

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchStatus is the scheduling state of a match, set by the admin console.
type MatchStatus string

const (
	StatusPlayed      MatchStatus = "played"
	StatusCanceled    MatchStatus = "canceled"
	StatusRescheduled MatchStatus = "rescheduled"
	StatusToBePlayed  MatchStatus = "to_be_played"
)

// Valid reports whether s is one of the known match statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusPlayed, StatusCanceled, StatusRescheduled, StatusToBePlayed:
		return true
	}
	return false
}

// Match is a scheduled game between two teams of the same division.
// Created and edited only through the admin console; the calendar view
// reads it publicly.
type Match struct {
	ID         string      `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Date       string      `json:"date" gorm:"not null;index"` // YYYY-MM-DD
	Time       string      `json:"time" gorm:"not null"`       // HH:MM, 24h
	HomeTeamID string      `json:"home_team_id" gorm:"type:uuid;not null"`
	AwayTeamID string      `json:"away_team_id" gorm:"type:uuid;not null"`
	Field      string      `json:"field" gorm:"not null"`
	LeagueID   uint        `json:"league_id" gorm:"not null;index"`
	DivisionID uint        `json:"division_id" gorm:"not null;index"`
	Week       string      `json:"week" gorm:"index"` // week label, e.g. "Semana 3"
	Status     MatchStatus `json:"status" gorm:"not null;default:'to_be_played'"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM time.
func ValidTime(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}
