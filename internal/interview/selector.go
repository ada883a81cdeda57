package interview

import "math/rand"

// sampleQuestions draws a uniform without-replacement subset of size
// min(count, len(candidates)). The input slice is not modified. Done
// in-process so the behavior does not depend on the storage engine.
func sampleQuestions(rng *rand.Rand, candidates []Question, count int) []Question {
	if count <= 0 || len(candidates) == 0 {
		return []Question{}
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	picked := make([]Question, len(candidates))
	copy(picked, candidates)
	// partial Fisher-Yates: only the first count positions are needed
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:count]
}
