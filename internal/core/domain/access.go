package domain

// Requirement is the set of roles a view or endpoint declares. It is satisfied when
// the active role is granted at least one of them.
type Requirement []Role

// Require builds a Requirement from the given roles.
func Require(roles ...Role) Requirement {
	return Requirement(roles)
}

// roleGrants lists, for every role, the roles it is allowed to act as.
// Admin is granted every tier.
var roleGrants = map[Role][]Role{
	RoleAdmin:     {RoleAdmin, RoleModerator, RoleUser},
	RoleModerator: {RoleModerator},
	RoleUser:      {RoleUser},
}

// Grants returns the roles r may act as. Unknown roles grant nothing.
func (r Role) Grants() []Role {
	grants := roleGrants[r]
	out := make([]Role, len(grants))
	copy(out, grants)
	return out
}

// Satisfies reports whether r fulfils req. An empty requirement is never satisfied.
func (r Role) Satisfies(req Requirement) bool {
	for _, granted := range roleGrants[r] {
		for _, want := range req {
			if granted == want {
				return true
			}
		}
	}
	return false
}
