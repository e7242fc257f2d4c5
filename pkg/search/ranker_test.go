package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nodelens/nodelens/pkg/types"
)

func namedRecord(uuid, name string) *types.Record {
	return &types.Record{
		Uuid:   uuid,
		Labels: []string{"Author"},
		Properties: map[string]types.Value{
			"name": types.StringValue(name),
		},
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 0)

	records := []*types.Record{
		namedRecord("r1", "Homeric Hymns"), // prefix
		namedRecord("r2", "Homer"),         // exact
		namedRecord("r3", "The Homer question"),
	}

	ranked, err := ranker.Rank(context.Background(), records, "homer", DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranked.TotalMatches != 3 {
		t.Fatalf("expected 3 matches, got %d", ranked.TotalMatches)
	}
	wantOrder := []string{"r2", "r1", "r3"}
	for i, uuid := range wantOrder {
		if ranked.Results[i].Record.Uuid != uuid {
			t.Errorf("position %d: expected %s, got %s", i, uuid, ranked.Results[i].Record.Uuid)
		}
	}
}

func TestRankDropsZeroScores(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 0)

	records := []*types.Record{
		namedRecord("r1", "Homer"),
		namedRecord("r2", "Virgil"),
		{Uuid: "r3"}, // no properties at all
	}

	ranked, err := ranker.Rank(context.Background(), records, "homer", DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranked.TotalMatches != 1 {
		t.Errorf("expected 1 match, got %d", ranked.TotalMatches)
	}
	if len(ranked.Results) != 1 || ranked.Results[0].Record.Uuid != "r1" {
		t.Errorf("expected only r1, got %+v", ranked.Results)
	}
}

func TestRankStableOnTies(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 4)

	// Identical property values produce identical scores; parallel scoring
	// must not disturb arrival order among them.
	records := make([]*types.Record, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, namedRecord(fmt.Sprintf("r%02d", i), "Homer"))
	}

	ranked, err := ranker.Rank(context.Background(), records, "homer", DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, match := range ranked.Results {
		want := fmt.Sprintf("r%02d", i)
		if match.Record.Uuid != want {
			t.Fatalf("tie order broken at %d: expected %s, got %s", i, want, match.Record.Uuid)
		}
	}
}

func TestRankTruncation(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 0)

	records := []*types.Record{
		namedRecord("r1", "Homer"),
		namedRecord("r2", "Homeric"),
	}

	ranked, err := ranker.Rank(context.Background(), records, "homer", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked.Results) != 1 {
		t.Errorf("expected 1 result after truncation, got %d", len(ranked.Results))
	}
	if ranked.TotalMatches != 2 {
		t.Errorf("TotalMatches must be counted before truncation: got %d", ranked.TotalMatches)
	}
}

func TestRankInvalidLimit(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 0)

	for _, limit := range []int{0, -1, -50} {
		_, err := ranker.Rank(context.Background(), nil, "homer", limit)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("limit %d: expected ValidationError, got %v", limit, err)
		}
	}
}

func TestRankCancelledContextFailsWholeBatch(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 4)

	records := make([]*types.Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, namedRecord(fmt.Sprintf("r%03d", i), "Homer"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ranked, err := ranker.Rank(ctx, records, "homer", DefaultLimit)
	if err == nil {
		t.Fatalf("cancelled context must fail the batch, got %d of %d matches with nil error",
			ranked.TotalMatches, len(records))
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if ranked != nil {
		t.Errorf("no partial result may escape, got %+v", ranked)
	}
}

func TestRankIdempotent(t *testing.T) {
	ranker := NewRanker(NewScorer(DefaultPolicy()), 4)

	records := []*types.Record{
		namedRecord("r1", "Homeric Hymns"),
		namedRecord("r2", "Homer"),
		namedRecord("r3", "Homer"),
		namedRecord("r4", "about homer"),
	}

	first, err := ranker.Rank(context.Background(), records, "homer", DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for run := 0; run < 10; run++ {
		again, err := ranker.Rank(context.Background(), records, "homer", DefaultLimit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.TotalMatches != first.TotalMatches {
			t.Fatalf("TotalMatches changed between runs: %d vs %d", again.TotalMatches, first.TotalMatches)
		}
		for i := range first.Results {
			if again.Results[i].Record.Uuid != first.Results[i].Record.Uuid {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
			if again.Results[i].Score != first.Results[i].Score {
				t.Fatalf("run %d: score changed at %d", run, i)
			}
		}
	}
}
