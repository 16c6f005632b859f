package model

// Owned is implemented by every entity that belongs to a user account.
// Ownership used to be decided by probing objects for user/player/creator
// fields at each call site; resolving it through this single capability
// lets the boundary layer run one uniform check.  Staff accounts bypass
// ownership entirely at the handler level.
type Owned interface {
	OwnerUserID() uint64
}
