package stability

import (
	"math/rand"
	"testing"
)

func TestHalvedSampleSize(t *testing.T) {
	tests := []struct {
		n      int
		expect int
	}{
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 2},
		{6, 3},
		{10, 5},
		{11, 5},
	}
	for _, tt := range tests {
		if got := halvedSampleSize(tt.n); got != tt.expect {
			t.Errorf("halvedSampleSize(%d) = %d, want %d", tt.n, got, tt.expect)
		}
	}
}

func TestResampleTrial_WithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	population := []string{"a", "b", "c", "d", "e", "f"}

	for trial := 0; trial < 50; trial++ {
		sample := resampleTrial(rng, population, 3)
		if len(sample) != 3 {
			t.Fatalf("expected sample of 3, got %d", len(sample))
		}
		seen := make(map[string]int)
		for _, s := range sample {
			seen[s]++
			if seen[s] > 1 {
				t.Fatalf("element %q drawn twice in one trial", s)
			}
		}
	}
}

func TestResampleTrial_ClampsToPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	population := []string{"a", "b", "c"}

	// A generous sample size is a common caller mistake; it must clamp,
	// not fail.
	for _, size := range []int{3, 4, 100} {
		sample := resampleTrial(rng, population, size)
		if len(sample) != len(population) {
			t.Errorf("size %d: expected full population of %d, got %d", size, len(population), len(sample))
		}
	}
}
