package pose

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// NumLandmarks is the size of the landmark array produced by the upstream
// pose estimator for every analyzed frame. Frames with any other count are
// rejected at the analyzer boundary.
const NumLandmarks = 33

// Landmark indices, matching the anatomical index set of the upstream
// pose estimation library.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
)

// Landmark is a single detected body keypoint in normalized image space
// (x and y in 0..1, z roughly in the same scale, negative towards the
// camera), together with the detector confidence pair.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
	Presence   float64 `json:"presence"`
}

// Frame is one sampled video instant. Frames arrive ordered by
// Timestamp/FrameNumber and are treated as immutable.
type Frame struct {
	Landmarks   []Landmark `json:"landmarks"`
	Timestamp   int64      `json:"timestamp"` // milliseconds
	FrameNumber int        `json:"frameNumber"`
	Confidence  float64    `json:"confidence"`
}

// ErrEmptyInput is returned when an empty frame sequence is given to the analyzer.
var ErrEmptyInput = errors.New("pose frame sequence is empty")

// IncompleteLandmarksError is returned when a frame does not carry
// exactly NumLandmarks landmarks.
type IncompleteLandmarksError struct {
	FrameNumber int
	Landmarks   int
}

func (e *IncompleteLandmarksError) Error() string {
	return fmt.Sprintf(
		"frame %d has %d landmarks, expected %d",
		e.FrameNumber, e.Landmarks, NumLandmarks,
	)
}

// ValidateSequence is the single input validation point for the whole
// engine. It reports all malformed frames at once, so the caller does not
// have to fix and resubmit one frame at a time.
func ValidateSequence(frames []Frame) error {
	if len(frames) == 0 {
		return ErrEmptyInput
	}

	var err error
	for i := range frames {
		if len(frames[i].Landmarks) != NumLandmarks {
			err = multierr.Append(err, &IncompleteLandmarksError{
				FrameNumber: frames[i].FrameNumber,
				Landmarks:   len(frames[i].Landmarks),
			})
		}
	}
	return err
}
