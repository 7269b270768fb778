package domain

// ActorRole is the role an actor plays towards a document when requesting a transition.
type ActorRole string

const (
	RoleOwner     ActorRole = "owner"
	RoleRecipient ActorRole = "recipient"
	RoleSystem    ActorRole = "system"
)

// IdentityKind tells how the caller of an owner endpoint was identified.
type IdentityKind string

const (
	// IdentityAuthenticated is a caller holding a verified bearer token.
	IdentityAuthenticated IdentityKind = "authenticated"
	// IdentityAnonymous is the explicit demo identity. It only exists when demo mode is
	// switched on in configuration and the request carried no credentials at all.
	IdentityAnonymous IdentityKind = "anonymous"
)

// Identity is the resolved owner-side caller.
type Identity struct {
	UserID string       `json:"userID"`
	Kind   IdentityKind `json:"kind"`
}

// AuthenticatedIdentity returns the identity of a verified caller.
func AuthenticatedIdentity(userID string) Identity {
	return Identity{UserID: userID, Kind: IdentityAuthenticated}
}

// AnonymousIdentity returns the configured demo identity.
func AnonymousIdentity(demoUserID string) Identity {
	return Identity{UserID: demoUserID, Kind: IdentityAnonymous}
}

// IsAnonymous reports whether the identity is the demo identity.
func (i Identity) IsAnonymous() bool {
	return i.Kind == IdentityAnonymous
}
