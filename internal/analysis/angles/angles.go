package angles

import (
	"github.com/2beens/formcoach/internal/analysis/geometry"
	"github.com/2beens/formcoach/internal/analysis/pose"
)

// Joint names the angles the engine can compute per frame. Left and right
// side angles are averaged into a single value per joint; the torso angles
// are computed on landmark midpoints.
type Joint string

const (
	// Knee is the angle at the knee between hip and ankle.
	Knee Joint = "knee"
	// Hip is the angle at the hip between shoulder and knee.
	Hip Joint = "hip"
	// Elbow is the angle at the elbow between shoulder and wrist.
	Elbow Joint = "elbow"
	// Back is the incline of the hip-to-shoulder segment over the
	// horizontal, in degrees. Upright torso is close to 90.
	Back Joint = "back"
	// Body is the shoulder-hip-ankle angle on landmark midpoints; a
	// straight body line is close to 180.
	Body Joint = "body"
)

// JointAngles holds one computed value in degrees per requested joint.
type JointAngles map[Joint]float64

// Calculator computes a fixed set of joint angles, chosen per exercise.
type Calculator struct {
	joints []Joint
}

func NewCalculator(joints ...Joint) *Calculator {
	return &Calculator{joints: joints}
}

// Joints returns the joints this calculator was configured with.
func (c *Calculator) Joints() []Joint {
	return c.joints
}

// FrameAngles computes the configured joint angles for a single frame.
// The frame must carry the full landmark set.
func (c *Calculator) FrameAngles(f pose.Frame) JointAngles {
	ja := make(JointAngles, len(c.joints))
	for _, j := range c.joints {
		ja[j] = frameAngle(f, j)
	}
	return ja
}

// SequenceAngles computes angles for every frame of the sequence.
func (c *Calculator) SequenceAngles(frames []pose.Frame) []JointAngles {
	series := make([]JointAngles, len(frames))
	for i := range frames {
		series[i] = c.FrameAngles(frames[i])
	}
	return series
}

func frameAngle(f pose.Frame, j Joint) float64 {
	switch j {
	case Knee:
		return sideAvg(f, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle,
			pose.RightHip, pose.RightKnee, pose.RightAnkle)
	case Hip:
		return sideAvg(f, pose.LeftShoulder, pose.LeftHip, pose.LeftKnee,
			pose.RightShoulder, pose.RightHip, pose.RightKnee)
	case Elbow:
		return sideAvg(f, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist,
			pose.RightShoulder, pose.RightElbow, pose.RightWrist)
	case Back:
		return geometry.InclineDeg(HipMid(f), ShoulderMid(f))
	case Body:
		return geometry.AngleDeg(ShoulderMid(f), HipMid(f), AnkleMid(f))
	default:
		return 0
	}
}

func sideAvg(f pose.Frame, la, lb, lc, ra, rb, rc int) float64 {
	left := geometry.AngleDeg(Point(f, la), Point(f, lb), Point(f, lc))
	right := geometry.AngleDeg(Point(f, ra), Point(f, rb), Point(f, rc))
	return (left + right) / 2
}

// Point converts the indexed landmark of the frame to a geometry point.
func Point(f pose.Frame, landmark int) geometry.Point {
	lm := f.Landmarks[landmark]
	return geometry.Point{X: lm.X, Y: lm.Y, Z: lm.Z}
}

func ShoulderMid(f pose.Frame) geometry.Point {
	return geometry.Midpoint(Point(f, pose.LeftShoulder), Point(f, pose.RightShoulder))
}

func HipMid(f pose.Frame) geometry.Point {
	return geometry.Midpoint(Point(f, pose.LeftHip), Point(f, pose.RightHip))
}

func AnkleMid(f pose.Frame) geometry.Point {
	return geometry.Midpoint(Point(f, pose.LeftAnkle), Point(f, pose.RightAnkle))
}

func WristMid(f pose.Frame) geometry.Point {
	return geometry.Midpoint(Point(f, pose.LeftWrist), Point(f, pose.RightWrist))
}

// HipHeight is the height of the hip midpoint above the bottom image
// edge, so it grows when the athlete stands up.
func HipHeight(f pose.Frame) float64 {
	return 1 - HipMid(f).Y
}

// ShoulderWidth is the horizontal distance between the shoulders, used
// as a body-scale reference for normalized thresholds.
func ShoulderWidth(f pose.Frame) float64 {
	return geometry.Distance(Point(f, pose.LeftShoulder), Point(f, pose.RightShoulder))
}
