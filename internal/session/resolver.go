package session

import (
	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/pkg/apperrors"
)

// Outcome classifies what an authenticated (or absent) identity is allowed
// to do. Every protected route consults the resolver instead of repeating
// role checks inline.
type Outcome int

const (
	// Unauthenticated means no identity is present; the caller should be
	// sent to login.
	Unauthenticated Outcome = iota
	// IncompleteProfile means the identity exists but the user has not
	// supplied their enrollment id yet; only the profile-completion flow
	// is reachable.
	IncompleteProfile
	// WithRole means the identity maps to a complete user record; Role
	// carries the stored role.
	WithRole
	// Failed means the user record could not be read. This is distinct
	// from Unauthenticated: the caller must surface an error, not
	// redirect to login.
	Failed
)

// Resolution is the resolver's read-only verdict about a request's identity.
type Resolution struct {
	Outcome Outcome
	Role    string
	User    *user.User
}

// UserGetter is the slice of the user repository the resolver needs.
type UserGetter interface {
	GetByID(id uint) (*user.User, error)
}

// Resolver turns an authenticated user id into a Resolution. It never
// mutates the user record.
type Resolver struct {
	users UserGetter
}

func NewResolver(users UserGetter) *Resolver {
	return &Resolver{users: users}
}

// Resolve looks up the user behind an authenticated id. A zero id means no
// identity was presented.
func (r *Resolver) Resolve(userID uint) (Resolution, error) {
	if userID == 0 {
		return Resolution{Outcome: Unauthenticated}, nil
	}

	u, err := r.users.GetByID(userID)
	if err != nil {
		// A storage failure must not look like a logged-out session.
		return Resolution{Outcome: Failed}, apperrors.Persistence("resolve user", err)
	}
	if u == nil || !u.ProfileComplete() {
		return Resolution{Outcome: IncompleteProfile, User: u}, nil
	}

	return Resolution{Outcome: WithRole, Role: u.EffectiveRole(), User: u}, nil
}
