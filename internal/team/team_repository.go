package team

import (
	"errors"

	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/internal/user"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id string) (*Team, error)
	GetTeamByNameInLeague(name string, leagueID uint) (*Team, error)
	GetTeamsByLeague(leagueID uint, page, limit int) ([]Team, int64, error)
	GetAllTeams(page, limit int) ([]Team, int64, error)
	GetTeamByLeader(leaderID uint) (*Team, error)

	// Membership (players set)
	AddMember(member *TeamMember) error
	RemoveMember(teamID string, userID uint) error
	GetMember(teamID string, userID uint) (*TeamMember, error)
	GetMembers(teamID string) ([]TeamMember, error)
	GetMembershipInLeague(userID, leagueID uint) (*TeamMember, error)

	// Join requests (pending set)
	CreateJoinRequest(request *JoinRequest) error
	DeleteJoinRequest(teamID string, userID uint) error
	GetJoinRequest(teamID string, userID uint) (*JoinRequest, error)
	GetJoinRequests(teamID string) ([]JoinRequest, error)
	GetJoinRequestsByUser(userID uint) ([]JoinRequest, error)
	GetPendingRequestInLeague(userID, leagueID uint) (*JoinRequest, error)

	// Denormalized user fields kept in sync with membership changes.
	PromoteUserToLeader(userID uint, teamName string) error
	SetUserTeamName(userID uint, teamName string) error

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id string) (*Team, error) {
	var team Team
	if err := r.db.Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByNameInLeague(name string, leagueID uint) (*Team, error) {
	var team Team
	if err := r.db.Where("team_name = ? AND league_id = ?", name, leagueID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByLeague(leagueID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).Where("league_id = ?", leagueID)
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("team_name asc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) GetAllTeams(page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) GetTeamByLeader(leaderID uint) (*Team, error) {
	var team Team
	if err := r.db.Where("leader_id = ?", leaderID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// --- Membership operations ---

func (r *teamRepository) AddMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) RemoveMember(teamID string, userID uint) error {
	return r.db.Unscoped().Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamMember{}).Error
}

func (r *teamRepository) GetMember(teamID string, userID uint) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetMembers(teamID string) ([]TeamMember, error) {
	var members []TeamMember
	if err := r.db.Where("team_id = ?", teamID).Order("joined_at asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetMembershipInLeague finds the user's membership on any team of the given
// league. Backs the one-team-per-league rule.
func (r *teamRepository) GetMembershipInLeague(userID, leagueID uint) (*TeamMember, error) {
	var member TeamMember
	err := r.db.Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("team_members.user_id = ? AND teams.league_id = ?", userID, leagueID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// --- Join request operations ---

func (r *teamRepository) CreateJoinRequest(request *JoinRequest) error {
	return r.db.Create(request).Error
}

func (r *teamRepository) DeleteJoinRequest(teamID string, userID uint) error {
	return r.db.Unscoped().Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&JoinRequest{}).Error
}

func (r *teamRepository) GetJoinRequest(teamID string, userID uint) (*JoinRequest, error) {
	var request JoinRequest
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *teamRepository) GetJoinRequests(teamID string) ([]JoinRequest, error) {
	var requests []JoinRequest
	if err := r.db.Where("team_id = ?", teamID).Order("created_at asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *teamRepository) GetJoinRequestsByUser(userID uint) ([]JoinRequest, error) {
	var requests []JoinRequest
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetPendingRequestInLeague finds the user's pending request on any team of
// the given league. Backs the one-pending-request-per-league rule.
func (r *teamRepository) GetPendingRequestInLeague(userID, leagueID uint) (*JoinRequest, error) {
	var request JoinRequest
	err := r.db.Joins("JOIN teams ON teams.id = join_requests.team_id").
		Where("join_requests.user_id = ? AND teams.league_id = ?", userID, leagueID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// --- Denormalized user fields ---
//
// users.role and users.team_name mirror the membership tables. They are
// updated through the team repository so the writes can share a transaction
// with the membership change they reflect.

func (r *teamRepository) PromoteUserToLeader(userID uint, teamName string) error {
	return r.db.Table("users").Where("id = ?", userID).
		Updates(map[string]interface{}{"role": user.RoleLeader, "team_name": teamName}).Error
}

func (r *teamRepository) SetUserTeamName(userID uint, teamName string) error {
	return r.db.Table("users").Where("id = ?", userID).
		Update("team_name", teamName).Error
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
