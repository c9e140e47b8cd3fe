package faults

import (
	"math"

	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/geometry"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

// PushUpThresholds is the data-driven tuning of the push-up detector.
type PushUpThresholds struct {
	// DepthRatioMin is the minimal shoulder drop between the top and
	// bottom positions, as a fraction of body length.
	DepthRatioMin float64
	// ElbowFlareAngleMax is the maximal upper-arm to torso angle at the
	// bottom before the elbows count as flared out.
	ElbowFlareAngleMax float64
	// AlignmentTolerance is the allowed hip offset off the
	// shoulder-to-ankle line, as a fraction of image height.
	AlignmentTolerance float64
	// Hand spacing band relative to shoulder width.
	HandWideRatio   float64
	HandNarrowRatio float64
	// AsymmetryMax is the allowed left/right height imbalance of the
	// upper body, as a fraction of body length.
	AsymmetryMax float64
}

func DefaultPushUpThresholds() PushUpThresholds {
	return PushUpThresholds{
		DepthRatioMin:      0.15,
		ElbowFlareAngleMax: 65,
		AlignmentTolerance: 0.03,
		HandWideRatio:      1.5,
		HandNarrowRatio:    0.8,
		AsymmetryMax:       0.05,
	}
}

// PushUpDetector checks depth, elbow position, body alignment, hand
// placement and left/right asymmetry.
type PushUpDetector struct {
	t PushUpThresholds
}

func NewPushUpDetector(t PushUpThresholds) *PushUpDetector {
	return &PushUpDetector{t: t}
}

func (d *PushUpDetector) Detect(frames []pose.Frame, series []angles.JointAngles, seg segment.Result) Detection {
	var det Detection
	top := frames[seg.HighFrame]
	bottom := frames[seg.LowFrame]
	bodyLen := geometry.Distance(angles.ShoulderMid(top), angles.AnkleMid(top))

	d.checkDepth(&det, top, bottom, bodyLen)
	d.checkElbowPosition(&det, bottom)
	d.checkBodyAlignment(&det, bottom)
	d.checkHandPlacement(&det, frames[0])
	d.checkAsymmetry(&det, bottom, bodyLen)
	return det
}

func (d *PushUpDetector) checkDepth(det *Detection, top, bottom pose.Frame, bodyLen float64) {
	if bodyLen == 0 {
		det.classify("depth", "full")
		return
	}
	// image y grows downwards, the bottom position has the larger value
	drop := (angles.ShoulderMid(bottom).Y - angles.ShoulderMid(top).Y) / bodyLen
	if drop < d.t.DepthRatioMin {
		det.add(Candidate{
			Dimension:  "depth",
			Label:      "shallow",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "depth",
			Message:    "Your push-ups are cut short of full depth.",
			Suggestion: "Lower your chest until it almost touches the floor.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "depth",
		Label:      "full",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "depth",
		Message:    "Full range of motion on every push-up.",
		Suggestion: "Keep touching that depth.",
	})
}

// checkElbowPosition measures the upper-arm to torso angle at the bottom
// position, averaged over both sides.
func (d *PushUpDetector) checkElbowPosition(det *Detection, bottom pose.Frame) {
	left := geometry.AngleDeg(
		angles.Point(bottom, pose.LeftElbow),
		angles.Point(bottom, pose.LeftShoulder),
		angles.Point(bottom, pose.LeftHip),
	)
	right := geometry.AngleDeg(
		angles.Point(bottom, pose.RightElbow),
		angles.Point(bottom, pose.RightShoulder),
		angles.Point(bottom, pose.RightHip),
	)
	flare := (left + right) / 2

	if flare > d.t.ElbowFlareAngleMax {
		det.add(Candidate{
			Dimension:  "elbowPosition",
			Label:      "flared",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "elbows",
			Message:    "Your elbows are flaring out to the sides.",
			Suggestion: "Tuck your elbows to about 45 degrees from your torso.",
		})
		return
	}
	det.add(Candidate{
		Dimension:  "elbowPosition",
		Label:      "tucked",
		Type:       TypePositive,
		Severity:   SeverityLow,
		Area:       "elbows",
		Message:    "Elbows are nicely tucked against your torso.",
		Suggestion: "Keep that elbow path.",
	})
}

// checkBodyAlignment projects the hips onto the shoulder-to-ankle line
// and grades the vertical offset. The projection uses the horizontal
// components only, so the body orientation in the image does not matter.
func (d *PushUpDetector) checkBodyAlignment(det *Detection, bottom pose.Frame) {
	sh := angles.ShoulderMid(bottom)
	hip := angles.HipMid(bottom)
	ankle := angles.AnkleMid(bottom)

	dx, dz := ankle.X-sh.X, ankle.Z-sh.Z
	horizontal := dx*dx + dz*dz
	if horizontal == 0 {
		det.classify("bodyAlignment", "straight")
		return
	}
	u := ((hip.X-sh.X)*dx + (hip.Z-sh.Z)*dz) / horizontal
	offset := hip.Y - (sh.Y + u*(ankle.Y-sh.Y))

	switch {
	case offset > d.t.AlignmentTolerance:
		det.add(Candidate{
			Dimension:  "bodyAlignment",
			Label:      "hips_low",
			Type:       TypeCorrection,
			Severity:   SeverityHigh,
			Area:       "hips",
			Message:    "Your hips are sagging towards the floor.",
			Suggestion: "Squeeze your glutes and brace your core to keep a straight line.",
		})
	case offset < -d.t.AlignmentTolerance:
		det.add(Candidate{
			Dimension:  "bodyAlignment",
			Label:      "hips_high",
			Type:       TypeCorrection,
			Severity:   SeverityMedium,
			Area:       "hips",
			Message:    "Your hips are piking up into the air.",
			Suggestion: "Lower your hips until shoulders, hips and ankles form one line.",
		})
	default:
		det.add(Candidate{
			Dimension:  "bodyAlignment",
			Label:      "straight",
			Type:       TypePositive,
			Severity:   SeverityLow,
			Area:       "hips",
			Message:    "Great plank line from shoulders to ankles.",
			Suggestion: "Hold that rigid body line on every rep.",
		})
	}
}

func (d *PushUpDetector) checkHandPlacement(det *Detection, setup pose.Frame) {
	width := angles.ShoulderWidth(setup)
	if width == 0 {
		det.classify("handPlacement", "good")
		return
	}
	spread := math.Abs(
		setup.Landmarks[pose.LeftWrist].X-setup.Landmarks[pose.RightWrist].X,
	) / width

	switch {
	case spread > d.t.HandWideRatio:
		det.add(Candidate{
			Dimension:  "handPlacement",
			Label:      "wide",
			Type:       TypeCorrection,
			Severity:   SeverityMedium,
			Area:       "hands",
			Message:    "Your hands are set much wider than your shoulders.",
			Suggestion: "Move your hands in to just outside shoulder width.",
		})
	case spread < d.t.HandNarrowRatio:
		det.add(Candidate{
			Dimension:  "handPlacement",
			Label:      "narrow",
			Type:       TypeCorrection,
			Severity:   SeverityMedium,
			Area:       "hands",
			Message:    "Your hands are set very close together.",
			Suggestion: "Widen your hands to shoulder width unless you are training close grip.",
		})
	default:
		det.add(Candidate{
			Dimension:  "handPlacement",
			Label:      "good",
			Type:       TypePositive,
			Severity:   SeverityLow,
			Area:       "hands",
			Message:    "Hand placement is right around shoulder width.",
			Suggestion: "Keep that setup.",
		})
	}
}

func (d *PushUpDetector) checkAsymmetry(det *Detection, bottom pose.Frame, bodyLen float64) {
	if bodyLen == 0 {
		det.classify("asymmetry", "balanced")
		return
	}
	pairs := [][2]int{
		{pose.LeftShoulder, pose.RightShoulder},
		{pose.LeftElbow, pose.RightElbow},
		{pose.LeftWrist, pose.RightWrist},
	}
	var total float64
	for _, p := range pairs {
		total += math.Abs(bottom.Landmarks[p[0]].Y - bottom.Landmarks[p[1]].Y)
	}
	value := total / float64(len(pairs)) / bodyLen
	det.Asymmetry = &value

	if value > d.t.AsymmetryMax {
		det.add(Candidate{
			Dimension:  "asymmetry",
			Label:      "asymmetric",
			Type:       TypeSuggestion,
			Severity:   SeverityLow,
			Area:       "shoulders",
			Message:    "One side of your body is dipping lower than the other.",
			Suggestion: "Push evenly through both hands and keep your shoulders level.",
		})
		return
	}
	det.classify("asymmetry", "balanced")
}
