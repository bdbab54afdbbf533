package team

import (
	"strings"
	"time"

	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/pkg/apperrors"
)

// UserStore is the slice of the user repository the workflow needs.
type UserStore interface {
	GetByID(id uint) (*user.User, error)
}

// LeagueStore is the slice of the league repository the workflow needs.
type LeagueStore interface {
	LeagueExists(id uint) (bool, error)
	DivisionExists(id, leagueID uint) (bool, error)
}

// TeamService implements the membership workflow: team creation and the
// join-request protocol between leaders and prospective players. All rules
// live here; controllers only translate errors to HTTP.
//
// Two invariants hold across every operation:
//   - a user id is never in both the players and join-request sets of a team
//   - the leader always has a membership row and cannot be removed
type TeamService struct {
	repo    TeamRepository
	users   UserStore
	leagues LeagueStore
}

// NewTeamService creates a new team service.
func NewTeamService(repo TeamRepository, users UserStore, leagues LeagueStore) *TeamService {
	return &TeamService{repo: repo, users: users, leagues: leagues}
}

// CreateTeam creates a team with the requesting user as leader and sole
// player, promotes the user to Leader and records the team name on their
// profile. The three writes run in one transaction so a partial team (created
// but leaderless, or a leader without the role) can never be observed.
func (s *TeamService) CreateTeam(name string, leagueID, divisionID, requestingUserID uint) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("team name is required")
	}
	if leagueID == 0 || divisionID == 0 {
		return nil, apperrors.Validation("league and division are required")
	}

	exists, err := s.leagues.LeagueExists(leagueID)
	if err != nil {
		return nil, apperrors.Persistence("check league", err)
	}
	if !exists {
		return nil, apperrors.Validation("selected league does not exist")
	}
	exists, err = s.leagues.DivisionExists(divisionID, leagueID)
	if err != nil {
		return nil, apperrors.Persistence("check division", err)
	}
	if !exists {
		return nil, apperrors.Validation("selected division does not belong to the league")
	}

	u, err := s.users.GetByID(requestingUserID)
	if err != nil {
		return nil, apperrors.Persistence("load user", err)
	}
	if u == nil {
		return nil, apperrors.ErrNotFound
	}

	taken, err := s.repo.GetTeamByNameInLeague(name, leagueID)
	if err != nil {
		return nil, apperrors.Persistence("check team name", err)
	}
	if taken != nil {
		return nil, apperrors.Validation("a team with this name already exists in the league")
	}

	membership, err := s.repo.GetMembershipInLeague(requestingUserID, leagueID)
	if err != nil {
		return nil, apperrors.Persistence("check membership", err)
	}
	if membership != nil {
		return nil, apperrors.ErrAlreadyInTeam
	}

	t := &Team{
		TeamName:   name,
		LeaderID:   requestingUserID,
		LeagueID:   leagueID,
		DivisionID: divisionID,
	}

	err = s.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.CreateTeam(t); err != nil {
			return err
		}
		if err := repo.AddMember(&TeamMember{TeamID: t.ID, UserID: requestingUserID, JoinedAt: time.Now()}); err != nil {
			return err
		}
		return repo.PromoteUserToLeader(requestingUserID, t.TeamName)
	})
	if err != nil {
		return nil, apperrors.Persistence("create team", err)
	}
	return t, nil
}

// RequestToJoin adds the user to the team's pending set. A user may hold at
// most one pending request per league, and never while already playing for a
// team in that league. A repeat call while pending reports AlreadyRequested
// and leaves the single existing entry untouched.
func (s *TeamService) RequestToJoin(teamID string, requestingUserID uint) error {
	t, err := s.teamByID(teamID)
	if err != nil {
		return err
	}

	membership, err := s.repo.GetMembershipInLeague(requestingUserID, t.LeagueID)
	if err != nil {
		return apperrors.Persistence("check membership", err)
	}
	if membership != nil {
		return apperrors.ErrAlreadyInTeam
	}

	pending, err := s.repo.GetPendingRequestInLeague(requestingUserID, t.LeagueID)
	if err != nil {
		return apperrors.Persistence("check pending request", err)
	}
	if pending != nil {
		return apperrors.ErrAlreadyRequested
	}

	if err := s.repo.CreateJoinRequest(&JoinRequest{TeamID: t.ID, UserID: requestingUserID}); err != nil {
		return apperrors.Persistence("create join request", err)
	}
	return nil
}

// AcceptRequest moves the candidate from the team's pending set into the
// players set. Only the leader may call it. Deletion of the request and the
// membership insert happen in one transaction, so the candidate ends up in
// exactly one of the two sets.
func (s *TeamService) AcceptRequest(teamID string, candidateUserID, callerUserID uint) error {
	t, err := s.leaderOnly(teamID, callerUserID)
	if err != nil {
		return err
	}

	request, err := s.repo.GetJoinRequest(t.ID, candidateUserID)
	if err != nil {
		return apperrors.Persistence("load join request", err)
	}
	if request == nil {
		return apperrors.ErrNotFound
	}

	// The candidate may have joined another team in the league since
	// requesting; the stale request is dropped rather than honored.
	membership, err := s.repo.GetMembershipInLeague(candidateUserID, t.LeagueID)
	if err != nil {
		return apperrors.Persistence("check membership", err)
	}
	if membership != nil {
		if err := s.repo.DeleteJoinRequest(t.ID, candidateUserID); err != nil {
			return apperrors.Persistence("drop stale join request", err)
		}
		return apperrors.ErrAlreadyInTeam
	}

	err = s.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.DeleteJoinRequest(t.ID, candidateUserID); err != nil {
			return err
		}
		if err := repo.AddMember(&TeamMember{TeamID: t.ID, UserID: candidateUserID, JoinedAt: time.Now()}); err != nil {
			return err
		}
		// users.team_name is one column shared across leagues; the
		// latest joined team wins it.
		return repo.SetUserTeamName(candidateUserID, t.TeamName)
	})
	if err != nil {
		return apperrors.Persistence("accept join request", err)
	}
	return nil
}

// DenyRequest removes the candidate from the pending set only. Denying a
// user who has no pending request (already accepted, or never asked) is a
// no-op; the players set is never touched here.
func (s *TeamService) DenyRequest(teamID string, candidateUserID, callerUserID uint) error {
	t, err := s.leaderOnly(teamID, callerUserID)
	if err != nil {
		return err
	}

	request, err := s.repo.GetJoinRequest(t.ID, candidateUserID)
	if err != nil {
		return apperrors.Persistence("load join request", err)
	}
	if request == nil {
		return nil
	}

	if err := s.repo.DeleteJoinRequest(t.ID, candidateUserID); err != nil {
		return apperrors.Persistence("deny join request", err)
	}
	return nil
}

// RemovePlayer removes a confirmed player from the team. The leader cannot
// remove themselves; the team would be left without its sole authority.
func (s *TeamService) RemovePlayer(teamID string, playerUserID, callerUserID uint) error {
	t, err := s.leaderOnly(teamID, callerUserID)
	if err != nil {
		return err
	}
	if playerUserID == t.LeaderID {
		return apperrors.Validation("the team leader cannot be removed")
	}

	member, err := s.repo.GetMember(t.ID, playerUserID)
	if err != nil {
		return apperrors.Persistence("load member", err)
	}
	if member == nil {
		return apperrors.ErrNotFound
	}

	player, err := s.users.GetByID(playerUserID)
	if err != nil {
		return apperrors.Persistence("load user", err)
	}

	err = s.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.RemoveMember(t.ID, playerUserID); err != nil {
			return err
		}
		// users.team_name is one column shared across leagues; clear it
		// only while it still names the team being left, so a team in
		// another league keeps its record.
		if player != nil && player.TeamName == t.TeamName {
			return repo.SetUserTeamName(playerUserID, "")
		}
		return nil
	})
	if err != nil {
		return apperrors.Persistence("remove player", err)
	}
	return nil
}

func (s *TeamService) teamByID(teamID string) (*Team, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, apperrors.Persistence("load team", err)
	}
	if t == nil {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (s *TeamService) leaderOnly(teamID string, callerUserID uint) (*Team, error) {
	t, err := s.teamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t.LeaderID != callerUserID {
		return nil, apperrors.ErrAuthorization
	}
	return t, nil
}
