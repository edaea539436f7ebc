package dml

import (
	"testing"

	godmlerrors "github.com/YuminosukeSato/godml/pkg/errors"
)

func TestKFoldSplitInvariants(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		k       int
		shuffle bool
		seed    uint64
	}{
		{name: "even split", n: 100, k: 5, shuffle: false},
		{name: "uneven split", n: 103, k: 5, shuffle: false},
		{name: "shuffled", n: 100, k: 5, shuffle: true, seed: 42},
		{name: "two folds", n: 7, k: 2, shuffle: true, seed: 1},
		{name: "k equals n", n: 6, k: 6, shuffle: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kf := NewKFold(tt.k, tt.shuffle, tt.seed)
			folds, err := kf.Split(tt.n)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(folds) != tt.k {
				t.Fatalf("got %d folds, want %d", len(folds), tt.k)
			}
			assertPartition(t, folds, tt.n)

			// Fold sizes differ by at most one.
			minSize, maxSize := tt.n, 0
			for _, fold := range folds {
				if len(fold.Test) < minSize {
					minSize = len(fold.Test)
				}
				if len(fold.Test) > maxSize {
					maxSize = len(fold.Test)
				}
			}
			if maxSize-minSize > 1 {
				t.Errorf("unbalanced folds: min %d, max %d", minSize, maxSize)
			}
		})
	}
}

func assertPartition(t *testing.T, folds []Fold, n int) {
	t.Helper()
	seen := make([]int, n)
	for k, fold := range folds {
		inTrain := make(map[int]bool, len(fold.Train))
		for _, idx := range fold.Train {
			inTrain[idx] = true
		}
		for _, idx := range fold.Test {
			if inTrain[idx] {
				t.Errorf("fold %d: index %d in both train and test", k, idx)
			}
			seen[idx]++
		}
		if len(fold.Train)+len(fold.Test) != n {
			t.Errorf("fold %d: train+test = %d, want %d", k, len(fold.Train)+len(fold.Test), n)
		}
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears %d times across test sets, want 1", idx, count)
		}
	}
}

func TestKFoldConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{name: "k below 2", n: 10, k: 1},
		{name: "k above n", n: 4, k: 5},
		{name: "zero k", n: 10, k: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kf := NewKFold(tt.k, false, 0)
			_, err := kf.Split(tt.n)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var confErr *godmlerrors.ConfigurationError
			if !godmlerrors.As(err, &confErr) {
				t.Errorf("expected ConfigurationError, got %T: %v", err, err)
			}
		})
	}
}

func TestKFoldReproducible(t *testing.T) {
	a, err := NewKFold(4, true, 99).Split(50)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewKFold(4, true, 99).Split(50)
	if err != nil {
		t.Fatal(err)
	}
	assertSameFolds(t, a, b)
}

func assertSameFolds(t *testing.T, a, b []Fold) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("fold counts differ: %d vs %d", len(a), len(b))
	}
	for k := range a {
		if !equalInts(a[k].Test, b[k].Test) || !equalInts(a[k].Train, b[k].Train) {
			t.Errorf("fold %d differs between seeded runs", k)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRepeatedKFold(t *testing.T) {
	rkf := NewRepeatedKFold(3, 4, true, 7)
	splits, err := rkf.Split(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(splits) != 4 {
		t.Fatalf("got %d repetitions, want 4", len(splits))
	}
	for _, folds := range splits {
		assertPartition(t, folds, 30)
	}

	// Seeded: full sequence reproduces.
	again, err := NewRepeatedKFold(3, 4, true, 7).Split(30)
	if err != nil {
		t.Fatal(err)
	}
	for rep := range splits {
		assertSameFolds(t, splits[rep], again[rep])
	}

	// Shuffled repetitions are drawn independently; the first two should
	// not be identical for this size.
	same := true
	for k := range splits[0] {
		if !equalInts(splits[0][k].Test, splits[1][k].Test) {
			same = false
			break
		}
	}
	if same {
		t.Error("repetitions 0 and 1 are identical; expected independent draws")
	}
}

func TestRepeatedKFoldInvalidRepetitions(t *testing.T) {
	_, err := NewRepeatedKFold(3, 0, false, 0).Split(30)
	if err == nil {
		t.Fatal("expected error for zero repetitions")
	}
	var confErr *godmlerrors.ConfigurationError
	if !godmlerrors.As(err, &confErr) {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestValidateSplits(t *testing.T) {
	valid, err := NewRepeatedKFold(2, 1, false, 0).Split(6)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateSplits(valid, 6); err != nil {
		t.Errorf("valid splits rejected: %v", err)
	}

	tests := []struct {
		name   string
		splits [][]Fold
	}{
		{name: "empty", splits: [][]Fold{}},
		{name: "single fold", splits: [][]Fold{{{Train: []int{0, 1}, Test: []int{2}}}}},
		{
			name: "overlap between train and test",
			splits: [][]Fold{{
				{Train: []int{0, 1, 2}, Test: []int{2, 3}},
				{Train: []int{2, 3}, Test: []int{0, 1}},
			}},
		},
		{
			name: "incomplete coverage",
			splits: [][]Fold{{
				{Train: []int{2, 3}, Test: []int{0}},
				{Train: []int{0, 1}, Test: []int{2, 3}},
			}},
		},
		{
			name: "index out of range",
			splits: [][]Fold{{
				{Train: []int{0, 1}, Test: []int{2, 9}},
				{Train: []int{2, 3}, Test: []int{0, 1}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateSplits(tt.splits, 4); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
