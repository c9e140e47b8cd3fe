package faults

import (
	"math"

	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

// SquatThresholds is the data-driven tuning of the squat detector. All
// angle values are degrees, ratios are relative to hip width.
type SquatThresholds struct {
	// Knee angle at the deepest point: above Shallow means the squat
	// never reached parallel, below Deep means well below parallel.
	DepthShallowKnee float64
	DepthDeepKnee    float64
	// Inward knee travel relative to the ankle, as a fraction of hip
	// width, above which the knees count as caving in.
	ValgusRatio float64
	// Acceptable torso incline band at the deepest point.
	BackAngleMin float64
	BackAngleMax float64
}

func DefaultSquatThresholds() SquatThresholds {
	return SquatThresholds{
		DepthShallowKnee: 115,
		DepthDeepKnee:    85,
		ValgusRatio:      0.18,
		BackAngleMin:     60,
		BackAngleMax:     90,
	}
}

// SquatDetector checks depth, knee tracking and back angle, all judged
// at the deepest frame of the sequence.
type SquatDetector struct {
	t SquatThresholds
}

func NewSquatDetector(t SquatThresholds) *SquatDetector {
	return &SquatDetector{t: t}
}

func (d *SquatDetector) Detect(frames []pose.Frame, series []angles.JointAngles, seg segment.Result) Detection {
	var det Detection
	bottom := frames[seg.LowFrame]
	bottomAngles := series[seg.LowFrame]

	d.checkDepth(&det, bottomAngles)
	d.checkKneeTracking(&det, bottom)
	d.checkBackAngle(&det, bottomAngles)
	return det
}

func (d *SquatDetector) checkDepth(det *Detection, ja angles.JointAngles) {
	knee := ja[angles.Knee]
	switch {
	case knee > d.t.DepthShallowKnee:
		det.add(Candidate{
			Dimension:  "depth",
			Label:      "shallow",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "depth",
			Message:    "You are not reaching parallel depth.",
			Suggestion: "Sit back and down until your hip crease drops to knee level.",
		})
	case knee < d.t.DepthDeepKnee:
		det.add(Candidate{
			Dimension:  "depth",
			Label:      "deep",
			Type:       TypeSuggestion,
			Severity:   SeverityLow,
			Area:       "depth",
			Message:    "You are squatting well below parallel.",
			Suggestion: "Depth is great, just keep tension at the bottom instead of relaxing into it.",
		})
	default:
		det.add(Candidate{
			Dimension:  "depth",
			Label:      "parallel",
			Type:       TypePositive,
			Severity:   SeverityLow,
			Area:       "depth",
			Message:    "Solid squat depth, right at parallel.",
			Suggestion: "Keep hitting this depth consistently.",
		})
	}
}

// checkKneeTracking compares how far each knee sits from the body
// midline against its own ankle. A knee that drifts towards the midline
// relative to the ankle is caving in (valgus).
func (d *SquatDetector) checkKneeTracking(det *Detection, bottom pose.Frame) {
	midX := angles.HipMid(bottom).X
	hipWidth := math.Abs(
		bottom.Landmarks[pose.LeftHip].X - bottom.Landmarks[pose.RightHip].X,
	)
	if hipWidth == 0 {
		det.classify("kneeTracking", "good")
		return
	}

	collapse := func(knee, ankle int) float64 {
		kneeOut := math.Abs(bottom.Landmarks[knee].X - midX)
		ankleOut := math.Abs(bottom.Landmarks[ankle].X - midX)
		return (ankleOut - kneeOut) / hipWidth
	}
	worst := math.Max(
		collapse(pose.LeftKnee, pose.LeftAnkle),
		collapse(pose.RightKnee, pose.RightAnkle),
	)

	if worst > d.t.ValgusRatio {
		det.add(Candidate{
			Dimension:  "kneeTracking",
			Label:      "valgus",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "knees",
			Message:    "Your knees are caving inward at the bottom.",
			Suggestion: "Push your knees out over your toes through the whole rep.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "kneeTracking",
		Label:      "good",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "knees",
		Message:    "Knees are tracking well over your toes.",
		Suggestion: "Keep that knee position.",
	})
}

func (d *SquatDetector) checkBackAngle(det *Detection, ja angles.JointAngles) {
	back := ja[angles.Back]
	if back < d.t.BackAngleMin || back > d.t.BackAngleMax {
		det.add(Candidate{
			Dimension:  "backAngle",
			Label:      "excessive_lean",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "back",
			Message:    "Your torso is leaning too far forward at the bottom.",
			Suggestion: "Keep your chest up and the bar over midfoot.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "backAngle",
		Label:      "good",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "back",
		Message:    "Torso angle looks strong and upright.",
		Suggestion: "Keep bracing like that.",
	})
}
