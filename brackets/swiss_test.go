package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/swiss-tournament/models"
)

func standingsOf(ids ...int) []models.Standing {
	out := make([]models.Standing, len(ids))
	for i, id := range ids {
		out[i] = models.Standing{ID: id, Name: string(rune('A' + i))}
	}
	return out
}

func TestSwissPairsAdjacentStandings(t *testing.T) {
	g := NewSwissGenerator()

	result, err := g.GeneratePairings(context.Background(), standingsOf(7, 3, 9, 1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []models.Pairing{
		{Player1ID: 7, Player1Name: "A", Player2ID: 3, Player2Name: "B"},
		{Player1ID: 9, Player1Name: "C", Player2ID: 1, Player2Name: "D"},
	}
	if len(result.Pairings) != len(want) {
		t.Fatalf("pairings = %d, want %d", len(result.Pairings), len(want))
	}
	for i := range want {
		if result.Pairings[i] != want[i] {
			t.Fatalf("pairings[%d] = %+v, want %+v", i, result.Pairings[i], want[i])
		}
	}
	if result.Unpaired != nil {
		t.Fatalf("unpaired = %+v, want nil", result.Unpaired)
	}
}

func TestSwissEveryPlayerPairedOnce(t *testing.T) {
	g := NewSwissGenerator()
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8}

	result, err := g.GeneratePairings(context.Background(), standingsOf(ids...))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Pairings) != len(ids)/2 {
		t.Fatalf("pairings = %d, want %d", len(result.Pairings), len(ids)/2)
	}
	seen := make(map[int]int)
	for _, p := range result.Pairings {
		seen[p.Player1ID]++
		seen[p.Player2ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Fatalf("player %d appears %d times, want 1", id, seen[id])
		}
	}
}

// An odd roster leaves the last player out of the round.
func TestSwissOddCountDropsLastPlayer(t *testing.T) {
	g := NewSwissGenerator()

	result, err := g.GeneratePairings(context.Background(), standingsOf(4, 5, 6))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Pairings) != 1 {
		t.Fatalf("pairings = %d, want 1", len(result.Pairings))
	}
	if result.Pairings[0].Player1ID != 4 || result.Pairings[0].Player2ID != 5 {
		t.Fatalf("pairing = %+v, want 4 vs 5", result.Pairings[0])
	}
	if result.Unpaired == nil || result.Unpaired.ID != 6 {
		t.Fatalf("unpaired = %+v, want player 6", result.Unpaired)
	}
}

func TestSwissEmptyAndSingle(t *testing.T) {
	g := NewSwissGenerator()

	result, err := g.GeneratePairings(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate empty: %v", err)
	}
	if len(result.Pairings) != 0 || result.Unpaired != nil {
		t.Fatalf("empty result = %+v, want no pairings", result)
	}

	result, err = g.GeneratePairings(context.Background(), standingsOf(1))
	if err != nil {
		t.Fatalf("generate single: %v", err)
	}
	if len(result.Pairings) != 0 || result.Unpaired == nil {
		t.Fatalf("single result = %+v, want one unpaired player", result)
	}
}

func TestSwissHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSwissGenerator().GeneratePairings(ctx, standingsOf(1, 2)); err == nil {
		t.Fatal("expected context error")
	}
}
