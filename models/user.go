package models

type UserRole string

const (
	// RoleOrganizer may register players, report results and wipe the tournament.
	RoleOrganizer UserRole = "organizer"
)
