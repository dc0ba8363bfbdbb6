package models

import "time"

// TournamentSummary is a point-in-time view of the whole tournament. All fields
// come from one read snapshot.
type TournamentSummary struct {
	PlayerCount int        `json:"player_count"`
	MatchCount  int        `json:"match_count"`
	Standings   []Standing `json:"standings"`
	Pairings    []Pairing  `json:"pairings"`
}

// StandingsSnapshot describes standings exported to object storage.
type StandingsSnapshot struct {
	Key       string     `json:"key"`
	URL       string     `json:"url"`
	ETag      string     `json:"etag,omitempty"`
	TakenAt   time.Time  `json:"taken_at"`
	Standings []Standing `json:"standings"`
}
