package models

// Player is a registered tournament entrant. Names need not be unique.
type Player struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
