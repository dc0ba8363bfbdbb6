package brackets

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// GeneratePairings groups adjacent standings: (0,1), (2,3), ...
// A trailing player of an odd-length list is not paired; it is reported
// back in PairingResult.Unpaired and left out of the round.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, standings []models.Standing) (*PairingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &PairingResult{
		Pairings: make([]models.Pairing, 0, len(standings)/2),
	}
	for i := 1; i < len(standings); i += 2 {
		first, second := standings[i-1], standings[i]
		result.Pairings = append(result.Pairings, models.Pairing{
			Player1ID:   first.ID,
			Player1Name: first.Name,
			Player2ID:   second.ID,
			Player2Name: second.Name,
		})
	}
	if len(standings)%2 == 1 {
		last := standings[len(standings)-1]
		result.Unpaired = &last
	}
	return result, nil
}
