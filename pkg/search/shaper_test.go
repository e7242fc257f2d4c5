package search

import (
	"testing"

	"github.com/nodelens/nodelens/pkg/types"
)

func TestShapeStripsSensitiveProperties(t *testing.T) {
	shaper := NewShaper(DefaultPolicy())

	record := &types.Record{
		Uuid:   "r1",
		Labels: []string{"Author"},
		Properties: map[string]types.Value{
			"name":          types.StringValue("Homer"),
			"password":      types.StringValue("hunter2"),
			"password_hash": types.StringValue("$2a$10$abc"),
			"api_key":       types.StringValue("sk-123"),
		},
	}

	shaped := shaper.Shape([]*types.ScoredMatch{{
		Record:          record,
		Score:           600,
		MatchedProperty: "name",
		MatchType:       types.MatchExact,
	}})

	if len(shaped) != 1 {
		t.Fatalf("expected 1 shaped match, got %d", len(shaped))
	}

	out := shaped[0]
	for _, key := range []string{"password", "password_hash", "api_key"} {
		if _, leaked := out.Properties[key]; leaked {
			t.Errorf("sensitive key %q leaked into output", key)
		}
	}
	if _, ok := out.Properties["name"]; !ok {
		t.Error("non-sensitive property should pass through")
	}
	if out.Score != 600 || out.MatchedProperty != "name" || out.MatchType != types.MatchExact {
		t.Errorf("match attribution must pass through unchanged: %+v", out)
	}
	if len(out.Labels) != 1 || out.Labels[0] != "Author" {
		t.Errorf("labels must pass through unchanged: %v", out.Labels)
	}
}

func TestShapeDoesNotMutateSource(t *testing.T) {
	shaper := NewShaper(DefaultPolicy())

	record := &types.Record{
		Uuid: "r1",
		Properties: map[string]types.Value{
			"name":     types.StringValue("Homer"),
			"password": types.StringValue("hunter2"),
		},
	}

	shaper.Shape([]*types.ScoredMatch{{Record: record, Score: 1}})

	if _, ok := record.Properties["password"]; !ok {
		t.Error("shaping must not mutate the source record")
	}
}

func TestShapeEmptyInput(t *testing.T) {
	shaper := NewShaper(DefaultPolicy())

	shaped := shaper.Shape(nil)
	if len(shaped) != 0 {
		t.Errorf("expected empty output, got %v", shaped)
	}
}
