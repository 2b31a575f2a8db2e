package domain

// Actor is the authenticated caller as carried by the request context.
type Actor struct {
	Idx   string
	Role  UserRole
	Group string
}
