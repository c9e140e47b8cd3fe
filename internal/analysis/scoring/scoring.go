package scoring

import "github.com/2beens/formcoach/internal/analysis/faults"

// Weights are the per-severity score penalties. The defaults guarantee
// that a single critical fault drops an otherwise clean set below a
// passing score, while one medium issue still reads as a decent rep.
type Weights struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

func DefaultWeights() Weights {
	return Weights{
		Critical: 45,
		High:     18,
		Medium:   10,
		Low:      4,
	}
}

func (w Weights) penalty(s faults.Severity) int {
	switch s {
	case faults.SeverityCritical:
		return w.Critical
	case faults.SeverityHigh:
		return w.High
	case faults.SeverityMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// Score starts from 100 and subtracts one penalty per detected fault.
// Positive candidates cost nothing. The result is clamped to [0, 100],
// and adding faults never raises it.
func Score(candidates []faults.Candidate, w Weights) int {
	score := 100
	for _, c := range candidates {
		if c.Type == faults.TypePositive {
			continue
		}
		score -= w.penalty(c.Severity)
	}
	if score < 0 {
		return 0
	}
	return score
}
