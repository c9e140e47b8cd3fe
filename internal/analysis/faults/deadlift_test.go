package faults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2beens/formcoach/internal/analysis/faults"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/pose/posetest"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

func deadliftDetect(t *testing.T, frames []pose.Frame, seg segment.Result) faults.Detection {
	t.Helper()
	d := faults.NewDeadliftDetector(faults.DefaultDeadliftThresholds())
	return d.Detect(frames, anglesFor(frames), seg)
}

func setupAndLockout(opts ...posetest.Option) ([]pose.Frame, segment.Result) {
	frames := []pose.Frame{
		posetest.DeadliftFrame(0, 0, 0, opts...),
		posetest.DeadliftFrame(1, 100, 1, opts...),
	}
	return frames, segment.Result{LowFrame: 0, HighFrame: 1}
}

func TestDeadliftDetector_GoodPull(t *testing.T) {
	frames, seg := setupAndLockout()
	det := deadliftDetect(t, frames, seg)

	assert.Equal(t, map[string]string{
		"setupPosition": "hinge",
		"spinePosition": "neutral",
		"barPath":       "vertical",
		"lockout":       "complete",
	}, det.Classifications)

	for _, c := range det.Candidates {
		assert.Equal(t, faults.TypePositive, c.Type)
	}
}

func TestDeadliftDetector_SquatPattern(t *testing.T) {
	frames, seg := setupAndLockout(posetest.WithSquattyHips())
	det := deadliftDetect(t, frames, seg)

	assert.Equal(t, "squat_pattern", det.Classifications["setupPosition"])
}

func TestDeadliftDetector_RoundedBack(t *testing.T) {
	frames, seg := setupAndLockout(posetest.WithRoundedBack())
	det := deadliftDetect(t, frames, seg)

	assert.Equal(t, "flexed", det.Classifications["spinePosition"])
	for _, c := range det.Candidates {
		if c.Dimension != "spinePosition" {
			continue
		}
		assert.Equal(t, faults.SeverityCritical, c.Severity)
		assert.Equal(t, "Your back is rounded during the pull.", c.Message)
	}
}

func TestDeadliftDetector_BarDrift(t *testing.T) {
	// the bar leaves the setup line midway through the pull
	frames := []pose.Frame{
		posetest.DeadliftFrame(0, 0, 0),
		posetest.DeadliftFrame(1, 100, 0.5, posetest.WithBarDrift(0.1)),
		posetest.DeadliftFrame(2, 200, 1),
	}
	seg := segment.Result{LowFrame: 0, HighFrame: 2}
	det := deadliftDetect(t, frames, seg)

	assert.Equal(t, "drifted", det.Classifications["barPath"])
}

func TestDeadliftDetector_IncompleteLockout(t *testing.T) {
	// the top position never reaches full extension
	frames := []pose.Frame{
		posetest.DeadliftFrame(0, 0, 0),
		posetest.DeadliftFrame(1, 100, 0.5),
	}
	seg := segment.Result{LowFrame: 0, HighFrame: 1}
	det := deadliftDetect(t, frames, seg)

	assert.Equal(t, "incomplete", det.Classifications["lockout"])
}
