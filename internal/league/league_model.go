// league/model.go
package league

import "gorm.io/gorm"

// League is a top-level competition. Created only through the admin console;
// there is no in-app delete.
type League struct {
	gorm.Model
	LeagueName string `json:"league_name" gorm:"uniqueIndex;not null"`
}

// Division groups teams inside a league for scheduling and standings.
// Team membership of a division lives on the Team record (division_id);
// the source-of-truth is joined at query time rather than kept in a
// denormalized team list here.
type Division struct {
	gorm.Model
	DivisionName string `json:"division_name" gorm:"not null;uniqueIndex:idx_division_name_league"`
	LeagueID     uint   `json:"league_id" gorm:"not null;index;uniqueIndex:idx_division_name_league"`
}
