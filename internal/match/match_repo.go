package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations.
type MatchRepository interface {
	Create(m *Match) error
	GetByID(id string) (*Match, error)
	Update(m *Match) error
	GetCalendar(filters map[string]interface{}, page, limit int) ([]Match, int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetByID(id string) (*Match, error) {
	var m Match
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) Update(m *Match) error {
	return r.db.Save(m).Error
}

// GetCalendar lists matches ordered by date and kickoff time. Supported
// filters: league_id, division_id, week, status.
func (r *matchRepository) GetCalendar(filters map[string]interface{}, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	if leagueID, ok := filters["league_id"]; ok {
		query = query.Where("league_id = ?", leagueID)
	}
	if divisionID, ok := filters["division_id"]; ok {
		query = query.Where("division_id = ?", divisionID)
	}
	if week, ok := filters["week"]; ok {
		query = query.Where("week = ?", week)
	}
	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("date asc, time asc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}
