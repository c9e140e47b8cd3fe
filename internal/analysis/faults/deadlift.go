package faults

import (
	"math"

	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

// DeadliftThresholds is the data-driven tuning of the deadlift detector.
type DeadliftThresholds struct {
	// HingeRatioMin is the minimal hip-flexion to knee-flexion ratio at
	// the deepest point; below it the setup is a squat pattern rather
	// than a hip hinge.
	HingeRatioMin float64
	// RoundedBackZ is the forward shoulder displacement over the hips
	// (z axis, normalized space) above which the spine counts as
	// flexed.
	RoundedBackZ float64
	// BarDriftRatio is the maximal allowed horizontal wrist drift off
	// the setup line, as a fraction of shoulder width.
	BarDriftRatio float64
	// LockoutAngleMin is the hip and knee extension both required at
	// the top for a complete lockout.
	LockoutAngleMin float64
}

func DefaultDeadliftThresholds() DeadliftThresholds {
	return DeadliftThresholds{
		HingeRatioMin:   1.2,
		RoundedBackZ:    0.26,
		BarDriftRatio:   0.4,
		LockoutAngleMin: 160,
	}
}

// DeadliftDetector checks the setup hinge, spine position, bar path and
// lockout completeness. Setup and spine are judged at the deepest frame,
// lockout at the most extended one, bar path over the whole sequence.
type DeadliftDetector struct {
	t DeadliftThresholds
}

func NewDeadliftDetector(t DeadliftThresholds) *DeadliftDetector {
	return &DeadliftDetector{t: t}
}

func (d *DeadliftDetector) Detect(frames []pose.Frame, series []angles.JointAngles, seg segment.Result) Detection {
	var det Detection
	d.checkSetup(&det, series[seg.LowFrame])
	d.checkSpine(&det, frames[seg.LowFrame])
	d.checkBarPath(&det, frames)
	d.checkLockout(&det, series[seg.HighFrame])
	return det
}

func (d *DeadliftDetector) checkSetup(det *Detection, ja angles.JointAngles) {
	hipFlex := 180 - ja[angles.Hip]
	kneeFlex := 180 - ja[angles.Knee]
	if kneeFlex < 1 {
		kneeFlex = 1
	}

	if hipFlex/kneeFlex < d.t.HingeRatioMin {
		det.add(Candidate{
			Dimension:  "setupPosition",
			Label:      "squat_pattern",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "setup",
			Message:    "Your hips are too low, you are squatting the weight up.",
			Suggestion: "Raise your hips and push them back so the lift starts as a hinge.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "setupPosition",
		Label:      "hinge",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "setup",
		Message:    "Strong hip hinge in your setup.",
		Suggestion: "Keep loading the hips like that off the floor.",
	})
}

func (d *DeadliftDetector) checkSpine(det *Detection, bottom pose.Frame) {
	forward := angles.HipMid(bottom).Z - angles.ShoulderMid(bottom).Z
	if forward > d.t.RoundedBackZ {
		det.add(Candidate{
			Dimension:  "spinePosition",
			Label:      "flexed",
			Type:       TypeCorrection,
			Severity:   SeverityCritical,
			Area:       "back",
			Message:    "Your back is rounded during the pull.",
			Suggestion: "Brace hard and keep a neutral spine before the bar leaves the floor.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "spinePosition",
		Label:      "neutral",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "back",
		Message:    "Spine stays neutral through the pull.",
		Suggestion: "Keep that brace on every rep.",
	})
}

func (d *DeadliftDetector) checkBarPath(det *Detection, frames []pose.Frame) {
	width := angles.ShoulderWidth(frames[0])
	if width == 0 {
		det.classify("barPath", "vertical")
		return
	}

	setupX := angles.WristMid(frames[0]).X
	var maxDrift float64
	for i := range frames {
		maxDrift = math.Max(maxDrift, math.Abs(angles.WristMid(frames[i]).X-setupX))
	}

	if maxDrift/width > d.t.BarDriftRatio {
		det.add(Candidate{
			Dimension:  "barPath",
			Label:      "drifted",
			Type:       TypeCorrection,
			Severity:   SeverityMedium,
			Area:       "barPath",
			Message:    "The bar is drifting away from your body.",
			Suggestion: "Drag the bar up your legs in a straight vertical line.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "barPath",
		Label:      "vertical",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "barPath",
		Message:    "Bar path is nice and vertical.",
		Suggestion: "Keep the bar close on the way up and down.",
	})
}

func (d *DeadliftDetector) checkLockout(det *Detection, ja angles.JointAngles) {
	if ja[angles.Hip] < d.t.LockoutAngleMin || ja[angles.Knee] < d.t.LockoutAngleMin {
		det.add(Candidate{
			Dimension:  "lockout",
			Label:      "incomplete",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "lockout",
			Message:    "You are not finishing the lockout at the top.",
			Suggestion: "Stand fully tall, squeeze your glutes and lock hips and knees.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "lockout",
		Label:      "complete",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "lockout",
		Message:    "Full, confident lockout at the top.",
		Suggestion: "Finish every rep this tall.",
	})
}
