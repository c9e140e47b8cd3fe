// Package posetest builds synthetic landmark frames for engine tests.
// The bodies are geometrically coherent rather than photorealistic:
// squat and deadlift are captured front-on with depth on the z axis,
// the push-up lies along the z axis with height on y.
package posetest

import "github.com/2beens/formcoach/internal/analysis/pose"

type options struct {
	visibility float64
	presence   float64

	valgus      bool
	forwardLean bool

	roundedBack bool
	squattyHips bool
	barDrift    float64

	saggingHips  bool
	pikedHips    bool
	flaredElbows bool
	wideHands    bool
	narrowHands  bool
	asymmetric   bool
}

type Option func(*options)

func WithVisibility(v float64) Option { return func(o *options) { o.visibility = v } }
func WithValgus() Option              { return func(o *options) { o.valgus = true } }
func WithForwardLean() Option         { return func(o *options) { o.forwardLean = true } }
func WithRoundedBack() Option         { return func(o *options) { o.roundedBack = true } }
func WithSquattyHips() Option         { return func(o *options) { o.squattyHips = true } }
func WithBarDrift(dx float64) Option  { return func(o *options) { o.barDrift = dx } }
func WithSaggingHips() Option         { return func(o *options) { o.saggingHips = true } }
func WithPikedHips() Option           { return func(o *options) { o.pikedHips = true } }
func WithFlaredElbows() Option        { return func(o *options) { o.flaredElbows = true } }
func WithWideHands() Option           { return func(o *options) { o.wideHands = true } }
func WithNarrowHands() Option         { return func(o *options) { o.narrowHands = true } }
func WithAsymmetry() Option           { return func(o *options) { o.asymmetric = true } }

func build(opts []Option) options {
	o := options{visibility: 0.95, presence: 0.98}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newFrame(num int, tsMs int64, o options) pose.Frame {
	f := pose.Frame{
		Landmarks:   make([]pose.Landmark, pose.NumLandmarks),
		Timestamp:   tsMs,
		FrameNumber: num,
		Confidence:  o.visibility,
	}
	for i := range f.Landmarks {
		f.Landmarks[i].Visibility = o.visibility
		f.Landmarks[i].Presence = o.presence
	}
	return f
}

func set(f *pose.Frame, idx int, x, y, z float64) {
	f.Landmarks[idx].X = x
	f.Landmarks[idx].Y = y
	f.Landmarks[idx].Z = z
}

func setHead(f *pose.Frame, x, y, z float64) {
	for idx := pose.Nose; idx <= pose.MouthRight; idx++ {
		set(f, idx, x, y, z)
	}
}

// SquatFrame builds a front-view squat body. depth runs from 0
// (standing tall) to 1 (well below parallel); around 0.9 the hip crease
// sits at knee level.
func SquatFrame(num int, tsMs int64, depth float64, opts ...Option) pose.Frame {
	o := build(opts)
	f := newFrame(num, tsMs, o)
	t := depth

	setHead(&f, 0.5, 0.10+0.20*t, -0.17*t)

	shoulderZ := -0.17 * t
	if o.forwardLean {
		shoulderZ = -0.10*t - 0.25
	}
	set(&f, pose.LeftShoulder, 0.42, 0.22+0.20*t, shoulderZ)
	set(&f, pose.RightShoulder, 0.58, 0.22+0.20*t, shoulderZ)
	set(&f, pose.LeftElbow, 0.38, 0.35+0.20*t, 0)
	set(&f, pose.RightElbow, 0.62, 0.35+0.20*t, 0)
	set(&f, pose.LeftWrist, 0.36, 0.47+0.20*t, 0)
	set(&f, pose.RightWrist, 0.64, 0.47+0.20*t, 0)
	for _, idx := range []int{pose.LeftPinky, pose.LeftIndex, pose.LeftThumb} {
		set(&f, idx, 0.36, 0.49+0.20*t, 0)
	}
	for _, idx := range []int{pose.RightPinky, pose.RightIndex, pose.RightThumb} {
		set(&f, idx, 0.64, 0.49+0.20*t, 0)
	}

	set(&f, pose.LeftHip, 0.45, 0.50+0.20*t, -0.10*t)
	set(&f, pose.RightHip, 0.55, 0.50+0.20*t, -0.10*t)

	kneeIn := 0.0
	if o.valgus {
		kneeIn = 0.06
	}
	set(&f, pose.LeftKnee, 0.42+kneeIn, 0.72, -0.15*t)
	set(&f, pose.RightKnee, 0.58-kneeIn, 0.72, -0.15*t)

	set(&f, pose.LeftAnkle, 0.42, 0.93, 0)
	set(&f, pose.RightAnkle, 0.58, 0.93, 0)
	set(&f, pose.LeftHeel, 0.42, 0.95, 0.02)
	set(&f, pose.RightHeel, 0.58, 0.95, 0.02)
	set(&f, pose.LeftFootIndex, 0.42, 0.97, -0.05)
	set(&f, pose.RightFootIndex, 0.58, 0.97, -0.05)
	return f
}

// SquatSequence builds one full squat cycle, standing to maxDepth and
// back up, sampled over the given number of frames.
func SquatSequence(frames int, stepMs int64, maxDepth float64, opts ...Option) []pose.Frame {
	out := make([]pose.Frame, frames)
	for i := 0; i < frames; i++ {
		out[i] = SquatFrame(i, int64(i)*stepMs, cycle(i, frames)*maxDepth, opts...)
	}
	return out
}

// DeadliftFrame builds a front-view deadlift body. lift runs from 0
// (hinged setup, hands on the bar) to 1 (standing lockout).
func DeadliftFrame(num int, tsMs int64, lift float64, opts ...Option) pose.Frame {
	o := build(opts)
	f := newFrame(num, tsMs, o)
	down := 1 - lift

	hipY := 0.50 + 0.10*down
	shoulderY := 0.22 + 0.25*down
	shoulderZ := -0.20 * down
	kneeZ := -0.05 * down
	if o.squattyHips {
		hipY = 0.50 + 0.24*down
		shoulderY = 0.22 + 0.18*down
		shoulderZ = -0.05 * down
		kneeZ = -0.20 * down
	}
	if o.roundedBack {
		shoulderZ = -0.34 * down
	}

	setHead(&f, 0.5, shoulderY-0.12, shoulderZ)
	set(&f, pose.LeftShoulder, 0.42, shoulderY, shoulderZ)
	set(&f, pose.RightShoulder, 0.58, shoulderY, shoulderZ)

	wristY := 0.80 - 0.25*lift
	set(&f, pose.LeftElbow, 0.41, wristY-0.12, shoulderZ/2)
	set(&f, pose.RightElbow, 0.59, wristY-0.12, shoulderZ/2)
	set(&f, pose.LeftWrist, 0.40+o.barDrift, wristY, -0.08*down)
	set(&f, pose.RightWrist, 0.60+o.barDrift, wristY, -0.08*down)
	for _, idx := range []int{pose.LeftPinky, pose.LeftIndex, pose.LeftThumb} {
		set(&f, idx, 0.40+o.barDrift, wristY+0.02, -0.08*down)
	}
	for _, idx := range []int{pose.RightPinky, pose.RightIndex, pose.RightThumb} {
		set(&f, idx, 0.60+o.barDrift, wristY+0.02, -0.08*down)
	}

	set(&f, pose.LeftHip, 0.45, hipY, -0.02*down)
	set(&f, pose.RightHip, 0.55, hipY, -0.02*down)
	set(&f, pose.LeftKnee, 0.42, 0.72, kneeZ)
	set(&f, pose.RightKnee, 0.58, 0.72, kneeZ)
	set(&f, pose.LeftAnkle, 0.42, 0.93, 0)
	set(&f, pose.RightAnkle, 0.58, 0.93, 0)
	set(&f, pose.LeftHeel, 0.42, 0.95, 0.02)
	set(&f, pose.RightHeel, 0.58, 0.95, 0.02)
	set(&f, pose.LeftFootIndex, 0.42, 0.97, -0.05)
	set(&f, pose.RightFootIndex, 0.58, 0.97, -0.05)
	return f
}

// DeadliftSequence builds one pull from setup to maxLift and back down.
func DeadliftSequence(frames int, stepMs int64, maxLift float64, opts ...Option) []pose.Frame {
	out := make([]pose.Frame, frames)
	for i := 0; i < frames; i++ {
		out[i] = DeadliftFrame(i, int64(i)*stepMs, cycle(i, frames)*maxLift, opts...)
	}
	return out
}

// PushUpFrame builds a push-up body lying along the z axis. descent runs
// from 0 (arms extended, up position) to 1 (chest at the floor).
func PushUpFrame(num int, tsMs int64, descent float64, opts ...Option) pose.Frame {
	o := build(opts)
	f := newFrame(num, tsMs, o)
	t := descent

	asym := 0.0
	if o.asymmetric {
		asym = 0.06
	}

	setHead(&f, 0.5, 0.48+0.14*t, -0.05)
	set(&f, pose.LeftShoulder, 0.42, 0.50+0.14*t+asym, 0.10)
	set(&f, pose.RightShoulder, 0.58, 0.50+0.14*t, 0.10)

	// arms: extended below the shoulders in the up position, bent at
	// the bottom, either tucked towards the hips or flared out wide
	elbowX, elbowY, elbowZ := 0.40+0.00*t, 0.61+0.07*t, 0.10+0.12*t
	if o.flaredElbows {
		elbowX, elbowY, elbowZ = 0.40-0.14*t, 0.61+0.05*t, 0.10
	}
	set(&f, pose.LeftElbow, elbowX, elbowY+asym, elbowZ)
	set(&f, pose.RightElbow, 1-elbowX, elbowY, elbowZ)

	wristX := 0.40
	if o.wideHands {
		wristX = 0.28
	}
	if o.narrowHands {
		wristX = 0.46
	}
	set(&f, pose.LeftWrist, wristX, 0.72+asym, 0.10)
	set(&f, pose.RightWrist, 1-wristX, 0.72, 0.10)
	for _, idx := range []int{pose.LeftPinky, pose.LeftIndex, pose.LeftThumb} {
		set(&f, idx, wristX, 0.73+asym, 0.06)
	}
	for _, idx := range []int{pose.RightPinky, pose.RightIndex, pose.RightThumb} {
		set(&f, idx, 1-wristX, 0.73, 0.06)
	}

	hipY := 0.54 + 0.07*t
	if o.saggingHips {
		hipY += 0.06
	}
	if o.pikedHips {
		hipY -= 0.07
	}
	set(&f, pose.LeftHip, 0.46, hipY, 0.45)
	set(&f, pose.RightHip, 0.54, hipY, 0.45)

	set(&f, pose.LeftKnee, 0.45, 0.56+0.03*t, 0.62)
	set(&f, pose.RightKnee, 0.55, 0.56+0.03*t, 0.62)
	set(&f, pose.LeftAnkle, 0.44, 0.58, 0.80)
	set(&f, pose.RightAnkle, 0.56, 0.58, 0.80)
	set(&f, pose.LeftHeel, 0.44, 0.56, 0.84)
	set(&f, pose.RightHeel, 0.56, 0.56, 0.84)
	set(&f, pose.LeftFootIndex, 0.44, 0.62, 0.78)
	set(&f, pose.RightFootIndex, 0.56, 0.62, 0.78)
	return f
}

// PushUpSequence builds one push-up, down to maxDescent and back up.
func PushUpSequence(frames int, stepMs int64, maxDescent float64, opts ...Option) []pose.Frame {
	out := make([]pose.Frame, frames)
	for i := 0; i < frames; i++ {
		out[i] = PushUpFrame(i, int64(i)*stepMs, cycle(i, frames)*maxDescent, opts...)
	}
	return out
}

// cycle is a triangular 0 -> 1 -> 0 profile over n frames.
func cycle(i, n int) float64 {
	half := float64(n-1) / 2
	p := float64(i) / half
	if p > 1 {
		p = 2 - p
	}
	return p
}
