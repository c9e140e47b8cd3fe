package analysis

import "github.com/2beens/formcoach/internal/analysis/pose"

// Confidence aggregates landmark quality into a single 0..1 value: the
// mean of visibility times presence over every landmark of every frame.
// Occluded or jittery captures lower it, they never fail the analysis.
func Confidence(frames []pose.Frame) float64 {
	var total float64
	var count int
	for i := range frames {
		for _, lm := range frames[i].Landmarks {
			total += lm.Visibility * lm.Presence
			count++
		}
	}
	if count == 0 {
		return 0
	}

	confidence := total / float64(count)
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
