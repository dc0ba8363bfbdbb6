package models

// Match is the immutable outcome of one game. Draws do not exist.
type Match struct {
	ID       int `json:"id" db:"id"`
	WinnerID int `json:"winner_id" db:"win_player_id"`
	LoserID  int `json:"loser_id" db:"lose_player_id"`
}
