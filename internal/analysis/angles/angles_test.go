package angles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/pose/posetest"
)

func TestCalculator_Joints(t *testing.T) {
	c := angles.NewCalculator(angles.Knee, angles.Back)
	assert.Equal(t, []angles.Joint{angles.Knee, angles.Back}, c.Joints())
}

func TestFrameAngles_Squat(t *testing.T) {
	c := angles.NewCalculator(angles.Knee, angles.Hip, angles.Back)

	standing := c.FrameAngles(posetest.SquatFrame(0, 0, 0))
	require.Len(t, standing, 3)
	// legs close to straight, torso close to vertical
	assert.Greater(t, standing[angles.Knee], 160.0)
	assert.Greater(t, standing[angles.Back], 80.0)

	parallel := c.FrameAngles(posetest.SquatFrame(1, 100, 0.9))
	assert.Less(t, parallel[angles.Knee], 110.0)
	assert.Greater(t, parallel[angles.Knee], 85.0)
	// the torso inclines forward but stays well above horizontal
	assert.InDelta(t, 77, parallel[angles.Back], 8)

	deep := c.FrameAngles(posetest.SquatFrame(2, 200, 1))
	assert.Less(t, deep[angles.Knee], parallel[angles.Knee])
}

func TestFrameAngles_Deadlift(t *testing.T) {
	c := angles.NewCalculator(angles.Hip)

	setup := c.FrameAngles(posetest.DeadliftFrame(0, 0, 0))
	lockout := c.FrameAngles(posetest.DeadliftFrame(1, 100, 1))

	assert.Less(t, setup[angles.Hip], 120.0)
	assert.Greater(t, lockout[angles.Hip], 160.0)
}

func TestFrameAngles_PushUp(t *testing.T) {
	c := angles.NewCalculator(angles.Elbow, angles.Body)

	up := c.FrameAngles(posetest.PushUpFrame(0, 0, 0))
	bottom := c.FrameAngles(posetest.PushUpFrame(1, 100, 1))

	assert.Greater(t, up[angles.Elbow], 150.0)
	assert.Less(t, bottom[angles.Elbow], 90.0)
	// the body line stays close to straight through the rep
	assert.Greater(t, up[angles.Body], 150.0)
	assert.Greater(t, bottom[angles.Body], 150.0)
}

func TestSequenceAngles(t *testing.T) {
	c := angles.NewCalculator(angles.Knee)
	frames := posetest.SquatSequence(11, 100, 0.9)

	series := c.SequenceAngles(frames)
	require.Len(t, series, len(frames))

	// triangular depth profile: knees bend towards the middle frame
	// and extend again towards the end
	assert.Greater(t, series[0][angles.Knee], series[5][angles.Knee])
	assert.Less(t, series[5][angles.Knee], series[10][angles.Knee])
}

func TestHipHeightAndShoulderWidth(t *testing.T) {
	standing := posetest.SquatFrame(0, 0, 0)
	deep := posetest.SquatFrame(1, 100, 1)

	assert.Greater(t, angles.HipHeight(standing), angles.HipHeight(deep))
	assert.InDelta(t, 0.16, angles.ShoulderWidth(standing), 1e-9)
}
