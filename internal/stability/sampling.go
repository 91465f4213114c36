package stability

import "math/rand"

// halvedSampleSize returns the trial sample size used for dispersion
// estimation: half the population, never fewer than 2.
func halvedSampleSize(n int) int {
	size := n / 2
	if size < 2 {
		size = 2
	}
	return size
}

// resampleTrial draws sampleSize elements without replacement. When the
// requested size meets or exceeds the population, the full list is returned
// as-is: sampling without replacement cannot exceed the population, so a
// generous size is clamped rather than rejected.
func resampleTrial(rng *rand.Rand, responses []string, sampleSize int) []string {
	if sampleSize >= len(responses) {
		return responses
	}

	sample := make([]string, sampleSize)
	for i, j := range rng.Perm(len(responses))[:sampleSize] {
		sample[i] = responses[j]
	}
	return sample
}
