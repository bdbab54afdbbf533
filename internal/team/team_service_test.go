package team

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/pkg/apperrors"
)

// fakeRepo is an in-memory TeamRepository sharing a user table with the
// fake user and league stores, so the denormalized role/team_name updates
// are observable in tests.
type fakeRepo struct {
	teams    map[string]*Team
	members  map[string]map[uint]*TeamMember
	requests map[string]map[uint]*JoinRequest
	users    map[uint]*user.User
	nextID   int
}

func newFakeRepo(users map[uint]*user.User) *fakeRepo {
	return &fakeRepo{
		teams:    map[string]*Team{},
		members:  map[string]map[uint]*TeamMember{},
		requests: map[string]map[uint]*JoinRequest{},
		users:    users,
	}
}

func (f *fakeRepo) CreateTeam(t *Team) error {
	if t.ID == "" {
		f.nextID++
		t.ID = fmt.Sprintf("team-%d", f.nextID)
	}
	f.teams[t.ID] = t
	f.members[t.ID] = map[uint]*TeamMember{}
	f.requests[t.ID] = map[uint]*JoinRequest{}
	return nil
}

func (f *fakeRepo) GetTeamByID(id string) (*Team, error) {
	return f.teams[id], nil
}

func (f *fakeRepo) GetTeamByNameInLeague(name string, leagueID uint) (*Team, error) {
	for _, t := range f.teams {
		if t.TeamName == name && t.LeagueID == leagueID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetTeamsByLeague(leagueID uint, page, limit int) ([]Team, int64, error) {
	var out []Team
	for _, t := range f.teams {
		if t.LeagueID == leagueID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetAllTeams(page, limit int) ([]Team, int64, error) {
	var out []Team
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetTeamByLeader(leaderID uint) (*Team, error) {
	for _, t := range f.teams {
		if t.LeaderID == leaderID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) AddMember(m *TeamMember) error {
	if _, dup := f.members[m.TeamID][m.UserID]; dup {
		return fmt.Errorf("duplicate member %d on %s", m.UserID, m.TeamID)
	}
	f.members[m.TeamID][m.UserID] = m
	return nil
}

func (f *fakeRepo) RemoveMember(teamID string, userID uint) error {
	delete(f.members[teamID], userID)
	return nil
}

func (f *fakeRepo) GetMember(teamID string, userID uint) (*TeamMember, error) {
	return f.members[teamID][userID], nil
}

func (f *fakeRepo) GetMembers(teamID string) ([]TeamMember, error) {
	var out []TeamMember
	for _, m := range f.members[teamID] {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) GetMembershipInLeague(userID, leagueID uint) (*TeamMember, error) {
	for teamID, members := range f.members {
		if f.teams[teamID].LeagueID != leagueID {
			continue
		}
		if m, ok := members[userID]; ok {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateJoinRequest(r *JoinRequest) error {
	if _, dup := f.requests[r.TeamID][r.UserID]; dup {
		return fmt.Errorf("duplicate join request %d on %s", r.UserID, r.TeamID)
	}
	f.requests[r.TeamID][r.UserID] = r
	return nil
}

func (f *fakeRepo) DeleteJoinRequest(teamID string, userID uint) error {
	delete(f.requests[teamID], userID)
	return nil
}

func (f *fakeRepo) GetJoinRequest(teamID string, userID uint) (*JoinRequest, error) {
	return f.requests[teamID][userID], nil
}

func (f *fakeRepo) GetJoinRequests(teamID string) ([]JoinRequest, error) {
	var out []JoinRequest
	for _, r := range f.requests[teamID] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) GetJoinRequestsByUser(userID uint) ([]JoinRequest, error) {
	var out []JoinRequest
	for _, requests := range f.requests {
		if r, ok := requests[userID]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPendingRequestInLeague(userID, leagueID uint) (*JoinRequest, error) {
	for teamID, requests := range f.requests {
		if f.teams[teamID].LeagueID != leagueID {
			continue
		}
		if r, ok := requests[userID]; ok {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) PromoteUserToLeader(userID uint, teamName string) error {
	if u, ok := f.users[userID]; ok {
		u.Role = user.RoleLeader
		u.TeamName = teamName
	}
	return nil
}

func (f *fakeRepo) SetUserTeamName(userID uint, teamName string) error {
	if u, ok := f.users[userID]; ok {
		u.TeamName = teamName
	}
	return nil
}

func (f *fakeRepo) WithTransaction(txFunc func(TeamRepository) error) error {
	return txFunc(f)
}

type fakeUserStore struct {
	users map[uint]*user.User
}

func (f *fakeUserStore) GetByID(id uint) (*user.User, error) {
	return f.users[id], nil
}

type fakeLeagueStore struct {
	leagues   map[uint]bool
	divisions map[uint]uint // division id -> league id
}

func (f *fakeLeagueStore) LeagueExists(id uint) (bool, error) {
	return f.leagues[id], nil
}

func (f *fakeLeagueStore) DivisionExists(id, leagueID uint) (bool, error) {
	return f.divisions[id] == leagueID, nil
}

const (
	leagueA    = uint(1)
	divisionA1 = uint(10)
	leagueB    = uint(2)
	divisionB1 = uint(20)

	userA = uint(100) // team creator
	userB = uint(101) // prospective player
	userC = uint(102) // third party
)

func newFixture(t *testing.T) (*TeamService, *fakeRepo, map[uint]*user.User) {
	t.Helper()
	users := map[uint]*user.User{
		userA: {Name: "Ana", Email: "ana@example.com", Matricula: "A01000001", Role: user.RolePlayer},
		userB: {Name: "Beto", Email: "beto@example.com", Matricula: "A01000002", Role: user.RolePlayer},
		userC: {Name: "Carla", Email: "carla@example.com", Matricula: "A01000003", Role: user.RolePlayer},
	}
	for id, u := range users {
		u.ID = id
	}
	repo := newFakeRepo(users)
	svc := NewTeamService(repo, &fakeUserStore{users: users}, &fakeLeagueStore{
		leagues:   map[uint]bool{leagueA: true, leagueB: true},
		divisions: map[uint]uint{divisionA1: leagueA, divisionB1: leagueB},
	})
	return svc, repo, users
}

// assertSetsDisjoint checks the core invariant: no user id appears in both
// the players and the join-request sets of any team.
func assertSetsDisjoint(t *testing.T, repo *fakeRepo) {
	t.Helper()
	for teamID := range repo.teams {
		for uid := range repo.members[teamID] {
			_, alsoPending := repo.requests[teamID][uid]
			assert.False(t, alsoPending, "user %d is in both players and joinRequests of %s", uid, teamID)
		}
	}
}

func createFalcons(t *testing.T, svc *TeamService) *Team {
	t.Helper()
	team, err := svc.CreateTeam("Falcons", leagueA, divisionA1, userA)
	require.NoError(t, err)
	return team
}

func TestCreateTeam_PromotesLeaderAndAutoJoins(t *testing.T) {
	svc, repo, users := newFixture(t)

	team := createFalcons(t, svc)

	assert.Equal(t, userA, team.LeaderID)
	assert.Equal(t, user.RoleLeader, users[userA].Role)
	assert.Equal(t, "Falcons", users[userA].TeamName)

	m, err := repo.GetMember(team.ID, userA)
	require.NoError(t, err)
	require.NotNil(t, m, "leader must be auto-joined as a player")
	assertSetsDisjoint(t, repo)
}

func TestCreateTeam_Validation(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.CreateTeam("   ", leagueA, divisionA1, userA)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateTeam("Falcons", 999, divisionA1, userA)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Division belongs to a different league.
	_, err = svc.CreateTeam("Falcons", leagueA, divisionB1, userA)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateTeam_NameTakenInLeague(t *testing.T) {
	svc, _, _ := newFixture(t)
	createFalcons(t, svc)

	_, err := svc.CreateTeam("Falcons", leagueA, divisionA1, userB)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Same name in a different league is fine.
	_, err = svc.CreateTeam("Falcons", leagueB, divisionB1, userB)
	assert.NoError(t, err)
}

func TestCreateTeam_OneTeamPerLeague(t *testing.T) {
	svc, _, _ := newFixture(t)
	createFalcons(t, svc)

	_, err := svc.CreateTeam("Eagles", leagueA, divisionA1, userA)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)

	// The same user can still found a team in another league.
	_, err = svc.CreateTeam("Eagles", leagueB, divisionB1, userA)
	assert.NoError(t, err)
}

func TestRequestToJoin_IsIdempotent(t *testing.T) {
	svc, repo, _ := newFixture(t)
	team := createFalcons(t, svc)

	require.NoError(t, svc.RequestToJoin(team.ID, userB))

	err := svc.RequestToJoin(team.ID, userB)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRequested)

	requests, _ := repo.GetJoinRequests(team.ID)
	assert.Len(t, requests, 1, "a repeat request must not duplicate the entry")
	assertSetsDisjoint(t, repo)
}

func TestRequestToJoin_RejectsMembers(t *testing.T) {
	svc, _, _ := newFixture(t)
	team := createFalcons(t, svc)

	// The leader is a player; their request must be rejected.
	err := svc.RequestToJoin(team.ID, userA)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)
}

func TestRequestToJoin_OnePendingRequestPerLeague(t *testing.T) {
	svc, _, _ := newFixture(t)
	falcons := createFalcons(t, svc)
	eagles, err := svc.CreateTeam("Eagles", leagueA, divisionA1, userC)
	require.NoError(t, err)

	require.NoError(t, svc.RequestToJoin(falcons.ID, userB))

	err = svc.RequestToJoin(eagles.ID, userB)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRequested)
}

func TestRequestToJoin_UnknownTeam(t *testing.T) {
	svc, _, _ := newFixture(t)

	err := svc.RequestToJoin("no-such-team", userB)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAcceptRequest_JoinThenAcceptScenario(t *testing.T) {
	svc, repo, users := newFixture(t)
	team := createFalcons(t, svc)

	require.NoError(t, svc.RequestToJoin(team.ID, userB))
	require.NoError(t, svc.AcceptRequest(team.ID, userB, userA))

	members, _ := repo.GetMembers(team.ID)
	assert.Len(t, members, 2, "players must be {A, B}")
	requests, _ := repo.GetJoinRequests(team.ID)
	assert.Empty(t, requests, "joinRequests must be empty after accept")
	assert.Equal(t, "Falcons", users[userB].TeamName)
	assert.Equal(t, user.RolePlayer, users[userB].Role, "accepting must not change the role")
	assertSetsDisjoint(t, repo)
}

func TestAcceptRequest_LeaderOnly(t *testing.T) {
	svc, repo, _ := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))

	err := svc.AcceptRequest(team.ID, userB, userC)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	// Nothing moved.
	requests, _ := repo.GetJoinRequests(team.ID)
	assert.Len(t, requests, 1)
}

func TestAcceptRequest_NoPendingRequest(t *testing.T) {
	svc, _, _ := newFixture(t)
	team := createFalcons(t, svc)

	err := svc.AcceptRequest(team.ID, userB, userA)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAcceptRequest_StaleRequestAfterJoiningElsewhere(t *testing.T) {
	svc, repo, _ := newFixture(t)
	falcons := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(falcons.ID, userB))

	// B founds their own team in the league while the request is pending.
	_, err := svc.CreateTeam("Eagles", leagueA, divisionA1, userB)
	require.NoError(t, err)

	err = svc.AcceptRequest(falcons.ID, userB, userA)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)

	requests, _ := repo.GetJoinRequests(falcons.ID)
	assert.Empty(t, requests, "the stale request must be dropped")
	assertSetsDisjoint(t, repo)
}

func TestDenyRequest_Scenario(t *testing.T) {
	svc, repo, users := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))

	require.NoError(t, svc.DenyRequest(team.ID, userB, userA))

	members, _ := repo.GetMembers(team.ID)
	assert.Len(t, members, 1, "players must still be {A}")
	requests, _ := repo.GetJoinRequests(team.ID)
	assert.Empty(t, requests)
	assert.Empty(t, users[userB].TeamName)
	assertSetsDisjoint(t, repo)
}

func TestDenyRequest_AfterAcceptIsNoOp(t *testing.T) {
	svc, repo, _ := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))
	require.NoError(t, svc.AcceptRequest(team.ID, userB, userA))

	// The late deny must not remove B from the players set.
	require.NoError(t, svc.DenyRequest(team.ID, userB, userA))

	m, _ := repo.GetMember(team.ID, userB)
	assert.NotNil(t, m, "deny after accept must leave the player in place")
	assertSetsDisjoint(t, repo)
}

func TestDenyRequest_LeaderOnly(t *testing.T) {
	svc, _, _ := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))

	err := svc.DenyRequest(team.ID, userB, userB)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
}

func TestRemovePlayer(t *testing.T) {
	svc, repo, users := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))
	require.NoError(t, svc.AcceptRequest(team.ID, userB, userA))

	require.NoError(t, svc.RemovePlayer(team.ID, userB, userA))

	m, _ := repo.GetMember(team.ID, userB)
	assert.Nil(t, m)
	assert.Empty(t, users[userB].TeamName)
}

func TestRemovePlayer_KeepsTeamNameFromOtherLeague(t *testing.T) {
	svc, _, users := newFixture(t)
	falcons := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(falcons.ID, userB))
	require.NoError(t, svc.AcceptRequest(falcons.ID, userB, userA))

	tigres, err := svc.CreateTeam("Tigres", leagueB, divisionB1, userC)
	require.NoError(t, err)
	require.NoError(t, svc.RequestToJoin(tigres.ID, userB))
	require.NoError(t, svc.AcceptRequest(tigres.ID, userB, userC))
	require.Equal(t, "Tigres", users[userB].TeamName)

	// Leaving the league A team must not blank the name recorded for
	// the league B team.
	require.NoError(t, svc.RemovePlayer(falcons.ID, userB, userA))
	assert.Equal(t, "Tigres", users[userB].TeamName)
}

func TestRemovePlayer_LeaderCannotBeRemoved(t *testing.T) {
	svc, repo, _ := newFixture(t)
	team := createFalcons(t, svc)

	err := svc.RemovePlayer(team.ID, userA, userA)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	m, _ := repo.GetMember(team.ID, userA)
	assert.NotNil(t, m, "leader must remain in the players set")
}

func TestRemovePlayer_LeaderOnly(t *testing.T) {
	svc, _, _ := newFixture(t)
	team := createFalcons(t, svc)
	require.NoError(t, svc.RequestToJoin(team.ID, userB))
	require.NoError(t, svc.AcceptRequest(team.ID, userB, userA))

	err := svc.RemovePlayer(team.ID, userB, userC)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
}

func TestRemovePlayer_NotAMember(t *testing.T) {
	svc, _, _ := newFixture(t)
	team := createFalcons(t, svc)

	err := svc.RemovePlayer(team.ID, userB, userA)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
