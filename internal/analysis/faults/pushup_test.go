package faults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/formcoach/internal/analysis/faults"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/pose/posetest"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

// pushUpDetect runs the detector on an up position frame plus a bottom
// frame built at the given descent.
func pushUpDetect(t *testing.T, descent float64, opts ...posetest.Option) faults.Detection {
	t.Helper()
	frames := []pose.Frame{
		posetest.PushUpFrame(0, 0, 0, opts...),
		posetest.PushUpFrame(1, 100, descent, opts...),
	}
	seg := segment.Result{LowFrame: 1, HighFrame: 0}
	d := faults.NewPushUpDetector(faults.DefaultPushUpThresholds())
	return d.Detect(frames, anglesFor(frames), seg)
}

func TestPushUpDetector_GoodRep(t *testing.T) {
	det := pushUpDetect(t, 1)

	assert.Equal(t, map[string]string{
		"depth":         "full",
		"elbowPosition": "tucked",
		"bodyAlignment": "straight",
		"handPlacement": "good",
		"asymmetry":     "balanced",
	}, det.Classifications)

	require.NotNil(t, det.Asymmetry)
	assert.Less(t, *det.Asymmetry, 0.05)

	for _, c := range det.Candidates {
		assert.Equal(t, faults.TypePositive, c.Type)
	}
}

func TestPushUpDetector_Shallow(t *testing.T) {
	det := pushUpDetect(t, 0.5)
	assert.Equal(t, "shallow", det.Classifications["depth"])
}

func TestPushUpDetector_FlaredElbows(t *testing.T) {
	det := pushUpDetect(t, 1, posetest.WithFlaredElbows())
	assert.Equal(t, "flared", det.Classifications["elbowPosition"])
}

func TestPushUpDetector_SaggingHips(t *testing.T) {
	det := pushUpDetect(t, 1, posetest.WithSaggingHips())
	assert.Equal(t, "hips_low", det.Classifications["bodyAlignment"])

	for _, c := range det.Candidates {
		if c.Dimension == "bodyAlignment" {
			assert.Equal(t, faults.SeverityHigh, c.Severity)
		}
	}
}

func TestPushUpDetector_PikedHips(t *testing.T) {
	det := pushUpDetect(t, 1, posetest.WithPikedHips())
	assert.Equal(t, "hips_high", det.Classifications["bodyAlignment"])

	for _, c := range det.Candidates {
		if c.Dimension == "bodyAlignment" {
			assert.Equal(t, faults.SeverityMedium, c.Severity)
		}
	}
}

func TestPushUpDetector_HandPlacement(t *testing.T) {
	wide := pushUpDetect(t, 1, posetest.WithWideHands())
	assert.Equal(t, "wide", wide.Classifications["handPlacement"])

	narrow := pushUpDetect(t, 1, posetest.WithNarrowHands())
	assert.Equal(t, "narrow", narrow.Classifications["handPlacement"])
}

func TestPushUpDetector_Asymmetry(t *testing.T) {
	det := pushUpDetect(t, 1, posetest.WithAsymmetry())

	assert.Equal(t, "asymmetric", det.Classifications["asymmetry"])
	require.NotNil(t, det.Asymmetry)
	assert.Greater(t, *det.Asymmetry, 0.05)
}

func TestPushUpDetector_BalancedAsymmetryIsClassifiedOnly(t *testing.T) {
	det := pushUpDetect(t, 1)
	assert.Equal(t, "balanced", det.Classifications["asymmetry"])
	for _, c := range det.Candidates {
		assert.NotEqual(t, "asymmetry", c.Dimension)
	}
}
