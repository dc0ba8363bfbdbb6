package brackets

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

// PairingResult is the next round produced from ordered standings.
// Unpaired is set when the roster has an odd number of players.
type PairingResult struct {
	Pairings []models.Pairing
	Unpaired *models.Standing
}

type PairingGenerator interface {
	// GeneratePairings expects standings already in ranking order.
	GeneratePairings(ctx context.Context, standings []models.Standing) (*PairingResult, error)

	GetName() string
}
