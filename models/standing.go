package models

// Standing is a player's derived record. It is recomputed on every read.
type Standing struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Wins    int    `json:"wins" db:"wins"`
	Matches int    `json:"matches" db:"played"`
}

// Pairing groups two adjacent players from the standings for the next round.
type Pairing struct {
	Player1ID   int    `json:"id1"`
	Player1Name string `json:"name1"`
	Player2ID   int    `json:"id2"`
	Player2Name string `json:"name2"`
}
