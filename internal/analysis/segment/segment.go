package segment

import (
	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/pose"
)

// PhaseName is one state of an exercise movement cycle.
type PhaseName string

const (
	PhaseDescent PhaseName = "descent"
	PhaseBottom  PhaseName = "bottom"
	PhaseAscent  PhaseName = "ascent"

	PhaseSetup   PhaseName = "setup"
	PhaseLift    PhaseName = "lift"
	PhaseLockout PhaseName = "lockout"

	PhaseUpPosition PhaseName = "up_position"
)

// Phase is a contiguous run of frames spent in one movement state. Frame
// bounds are inclusive indices into the analyzed sequence.
type Phase struct {
	Name       PhaseName `json:"name"`
	StartFrame int       `json:"startFrame"`
	EndFrame   int       `json:"endFrame"`
}

// SignalFunc extracts the scalar the state machine tracks, for one frame.
type SignalFunc func(f pose.Frame, ja angles.JointAngles) float64

// Transition is the single outgoing edge of a phase. It fires when the
// range-normalized signal crosses Threshold in the Rising direction.
// Enter and exit thresholds of neighbouring phases are kept apart so the
// machine does not chatter on landmark jitter.
type Transition struct {
	To        PhaseName
	Threshold float64
	Rising    bool
}

// Config describes the movement cycle of one exercise.
type Config struct {
	Start       PhaseName
	Transitions map[PhaseName]Transition
	// RepOn marks the phase whose entry completes one repetition.
	RepOn  PhaseName
	Signal SignalFunc
	// MinRange is the minimal raw signal span that counts as movement,
	// in the signal's own unit. Below it the sequence is classified
	// statically instead of being segmented.
	MinRange float64
	// Static classifies a single frame when no movement is present.
	Static func(ja angles.JointAngles) PhaseName
}

// Result of segmenting one frame sequence.
type Result struct {
	Phases       []Phase
	RepCount     int
	AvgRepTimeMs float64
	// LowFrame and HighFrame index the frames with the minimal and
	// maximal raw signal value; detectors use them as the representative
	// deepest and most extended body positions.
	LowFrame  int
	HighFrame int
}

// Segment walks the sequence through the exercise state machine. The
// angle series must be parallel to frames. Sequences whose signal never
// spans MinRange (including a single frame) get a best effort static
// classification and zero repetitions.
func Segment(frames []pose.Frame, series []angles.JointAngles, cfg Config) Result {
	raw := make([]float64, len(frames))
	for i := range frames {
		raw[i] = cfg.Signal(frames[i], series[i])
	}

	low, high := 0, 0
	for i := range raw {
		if raw[i] < raw[low] {
			low = i
		}
		if raw[i] > raw[high] {
			high = i
		}
	}

	span := raw[high] - raw[low]
	if len(frames) == 1 || span < cfg.MinRange {
		return Result{
			Phases: []Phase{{
				Name:       cfg.Static(series[0]),
				StartFrame: 0,
				EndFrame:   len(frames) - 1,
			}},
			LowFrame:  low,
			HighFrame: high,
		}
	}

	normalized := make([]float64, len(raw))
	for i := range raw {
		normalized[i] = (raw[i] - raw[low]) / span
	}

	res := Result{LowFrame: low, HighFrame: high}
	current := cfg.Start
	phaseStart := 0
	repStart := 0
	var repTimeTotalMs int64

	for i := range normalized {
		t, ok := cfg.Transitions[current]
		if !ok {
			continue
		}
		fired := (t.Rising && normalized[i] >= t.Threshold) ||
			(!t.Rising && normalized[i] <= t.Threshold)
		if !fired || i == phaseStart {
			continue
		}

		res.Phases = append(res.Phases, Phase{
			Name:       current,
			StartFrame: phaseStart,
			EndFrame:   i - 1,
		})
		current = t.To
		phaseStart = i

		if t.To == cfg.RepOn {
			res.RepCount++
			repTimeTotalMs += frames[i].Timestamp - frames[repStart].Timestamp
			repStart = i
		}
	}

	res.Phases = append(res.Phases, Phase{
		Name:       current,
		StartFrame: phaseStart,
		EndFrame:   len(frames) - 1,
	})

	if res.RepCount > 0 {
		res.AvgRepTimeMs = float64(repTimeTotalMs) / float64(res.RepCount)
	}
	return res
}
