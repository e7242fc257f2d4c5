package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWorkerPoolPreservesInputOrder(t *testing.T) {
	pool := NewWorkerPool(4, func(ctx context.Context, item string) (int, error) {
		return len(item), nil
	})

	items := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	results, errs := pool.ProcessItems(context.Background(), items)

	for i, item := range items {
		if errs[i] != nil {
			t.Fatalf("unexpected error at %d: %v", i, errs[i])
		}
		if results[i] != len(item) {
			t.Errorf("result %d: expected %d, got %d", i, len(item), results[i])
		}
	}
}

func TestWorkerPoolEmptyInput(t *testing.T) {
	pool := NewWorkerPool(2, func(ctx context.Context, item int) (int, error) {
		return item, nil
	})

	results, errs := pool.ProcessItems(context.Background(), nil)
	if results != nil || errs != nil {
		t.Errorf("expected nil results for empty input, got %v / %v", results, errs)
	}
}

func TestWorkerPoolPropagatesErrorsPerItem(t *testing.T) {
	wantErr := errors.New("boom")
	pool := NewWorkerPool(2, func(ctx context.Context, item string) (string, error) {
		if strings.HasPrefix(item, "bad") {
			return "", wantErr
		}
		return strings.ToUpper(item), nil
	})

	results, errs := pool.ProcessItems(context.Background(), []string{"ok", "bad1", "also ok"})

	if errs[0] != nil || errs[2] != nil {
		t.Errorf("good items should not error: %v %v", errs[0], errs[2])
	}
	if !errors.Is(errs[1], wantErr) {
		t.Errorf("expected boom error at index 1, got %v", errs[1])
	}
	if results[0] != "OK" || results[2] != "ALSO OK" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestWorkerPoolCancellationMarksSkippedItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// A single worker processes the first item and cancels the context;
	// every remaining item must come back with the context error, never as
	// a zero value with a nil error.
	pool := NewWorkerPool(1, func(ctx context.Context, item int) (int, error) {
		cancel()
		return item * 2, nil
	})

	results, errs := pool.ProcessItems(ctx, []int{10, 20, 30, 40, 50})

	if errs[0] != nil {
		t.Fatalf("first item was processed, expected nil error, got %v", errs[0])
	}
	if results[0] != 20 {
		t.Errorf("first result: expected 20, got %d", results[0])
	}
	for i := 1; i < 5; i++ {
		if !errors.Is(errs[i], context.Canceled) {
			t.Errorf("item %d: expected context.Canceled, got %v", i, errs[i])
		}
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	pool := NewWorkerPool(2, func(ctx context.Context, item int) (int, error) {
		if item == 1 {
			panic("scoring blew up")
		}
		return item * 2, nil
	})

	results, errs := pool.ProcessItems(context.Background(), []int{0, 1, 2})

	var panicErr *PanicError
	if !errors.As(errs[1], &panicErr) {
		t.Fatalf("expected PanicError at index 1, got %v", errs[1])
	}
	if results[0] != 0 || results[2] != 4 {
		t.Errorf("other items should still complete: %v", results)
	}
}
