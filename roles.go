package mip65

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

// ErrUnauthorized reports a caller that does not hold the role an operation
// requires. The call has no observable effect.
var ErrUnauthorized = errors.New("unauthorized")

// Role is a named capability group; membership gates which ledger
// operations a principal may invoke.
type Role uint8

const (
	// Admin is the root role; it administers Guardian.
	Admin Role = iota
	// Guardian registers assets and administers Data and Ops.
	Guardian
	// Data submits valuation updates.
	Data
	// Ops submits trades, capital movements, expenses and income.
	Ops
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "ADMIN"
	case Guardian:
		return "GUARDIAN"
	case Data:
		return "DATA"
	case Ops:
		return "OPS"
	default:
		return "unknown"
	}
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "ADMIN":
		return Admin, nil
	case "GUARDIAN":
		return Guardian, nil
	case "DATA":
		return Data, nil
	case "OPS":
		return Ops, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}

// Authorizer answers whether a principal holds a role. The ledger engine
// consumes this capability check and nothing else about identity.
type Authorizer interface {
	HasRole(role Role, principal string) bool
}

// Registry is the access-control registry: role membership plus the admin
// hierarchy deciding who may grant or revoke each role. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	admins  map[Role]Role
	members map[Role]map[string]struct{}
}

// NewRegistry creates a registry with the genesis hierarchy: root holds
// ADMIN and GUARDIAN; ADMIN administers ADMIN and GUARDIAN; GUARDIAN
// administers DATA and OPS.
func NewRegistry(root string) *Registry {
	r := &Registry{
		admins: map[Role]Role{
			Admin:    Admin,
			Guardian: Admin,
			Data:     Guardian,
			Ops:      Guardian,
		},
		members: make(map[Role]map[string]struct{}),
	}
	r.add(Admin, root)
	r.add(Guardian, root)
	return r
}

// add records membership without any authorization check. Callers hold the lock
// or own the registry exclusively.
func (r *Registry) add(role Role, principal string) {
	if r.members[role] == nil {
		r.members[role] = make(map[string]struct{})
	}
	r.members[role][principal] = struct{}{}
}

// HasRole reports whether the principal currently holds the role.
func (r *Registry) HasRole(role Role, principal string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[role][principal]
	return ok
}

// AdminRole returns the role whose holders may grant and revoke the given role.
func (r *Registry) AdminRole(role Role) Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admins[role]
}

// GrantRole adds principal to role. The caller must hold the role's admin role.
func (r *Registry) GrantRole(caller string, role Role, principal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[r.admins[role]][caller]; !ok {
		return fmt.Errorf("grant %s to %q as %q: %w", role, principal, caller, ErrUnauthorized)
	}
	r.add(role, principal)
	return nil
}

// RevokeRole removes principal from role. The caller must hold the role's
// admin role. There is no self-revocation guard: an authorized principal may
// revoke its own role.
func (r *Registry) RevokeRole(caller string, role Role, principal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[r.admins[role]][caller]; !ok {
		return fmt.Errorf("revoke %s from %q as %q: %w", role, principal, caller, ErrUnauthorized)
	}
	delete(r.members[role], principal)
	return nil
}

// SetRoleAdmin rewires which role administers another. Only an ADMIN holder
// may call it; it is meant for setup, not routine administration.
func (r *Registry) SetRoleAdmin(caller string, role, admin Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[Admin][caller]; !ok {
		return fmt.Errorf("set admin of %s to %s as %q: %w", role, admin, caller, ErrUnauthorized)
	}
	r.admins[role] = admin
	return nil
}

// registryFile is the persisted form of a Registry.
type registryFile struct {
	Admins  map[string]string   `json:"admins"`
	Members map[string][]string `json:"members"`
}

// EncodeRegistry persists the registry as a canonical JSON document, with
// members sorted for stable diffs.
func EncodeRegistry(w io.Writer, r *Registry) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file := registryFile{
		Admins:  make(map[string]string, len(r.admins)),
		Members: make(map[string][]string, len(r.members)),
	}
	for role, admin := range r.admins {
		file.Admins[role.String()] = admin.String()
	}
	for role, set := range r.members {
		names := make([]string, 0, len(set))
		for p := range set {
			names = append(names, p)
		}
		slices.Sort(names)
		file.Members[role.String()] = names
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}

// DecodeRegistry reads a registry previously written by EncodeRegistry.
func DecodeRegistry(rd io.Reader) (*Registry, error) {
	var file registryFile
	if err := json.NewDecoder(rd).Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode registry: %w", err)
	}

	r := &Registry{
		admins:  make(map[Role]Role, len(file.Admins)),
		members: make(map[Role]map[string]struct{}, len(file.Members)),
	}
	for roleStr, adminStr := range file.Admins {
		role, err := ParseRole(roleStr)
		if err != nil {
			return nil, err
		}
		admin, err := ParseRole(adminStr)
		if err != nil {
			return nil, err
		}
		r.admins[role] = admin
	}
	for roleStr, names := range file.Members {
		role, err := ParseRole(roleStr)
		if err != nil {
			return nil, err
		}
		for _, p := range names {
			r.add(role, p)
		}
	}
	return r, nil
}
