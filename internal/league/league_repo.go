package league

import (
	"errors"

	"gorm.io/gorm"
)

// LeagueRepository defines the interface for league and division data operations.
type LeagueRepository interface {
	CreateLeague(l *League) error
	GetLeagueByID(id uint) (*League, error)
	GetLeagueByName(name string) (*League, error)
	GetAllLeagues() ([]League, error)

	CreateDivision(d *Division) error
	GetDivisionByID(id uint) (*Division, error)
	GetDivisionsByLeague(leagueID uint) ([]Division, error)

	LeagueExists(id uint) (bool, error)
	DivisionExists(id, leagueID uint) (bool, error)
}

type leagueRepository struct {
	db *gorm.DB
}

// NewLeagueRepository creates a new instance of LeagueRepository.
func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) CreateLeague(l *League) error {
	return r.db.Create(l).Error
}

func (r *leagueRepository) GetLeagueByID(id uint) (*League, error) {
	var l League
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *leagueRepository) GetLeagueByName(name string) (*League, error) {
	var l League
	if err := r.db.Where("league_name = ?", name).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *leagueRepository) GetAllLeagues() ([]League, error) {
	var leagues []League
	if err := r.db.Order("league_name asc").Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *leagueRepository) CreateDivision(d *Division) error {
	return r.db.Create(d).Error
}

func (r *leagueRepository) GetDivisionByID(id uint) (*Division, error) {
	var d Division
	if err := r.db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *leagueRepository) GetDivisionsByLeague(leagueID uint) ([]Division, error) {
	var divisions []Division
	if err := r.db.Where("league_id = ?", leagueID).Order("division_name asc").Find(&divisions).Error; err != nil {
		return nil, err
	}
	return divisions, nil
}

func (r *leagueRepository) LeagueExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&League{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DivisionExists checks that the division exists and belongs to the given league.
func (r *leagueRepository) DivisionExists(id, leagueID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&Division{}).Where("id = ? AND league_id = ?", id, leagueID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
