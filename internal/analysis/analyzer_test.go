package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/formcoach/internal/analysis"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/pose/posetest"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseExercise(t *testing.T) {
	for _, e := range analysis.Exercises() {
		parsed, err := analysis.ParseExercise(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}

	_, err := analysis.ParseExercise("bench_press")
	assert.EqualError(t, err, `unknown exercise: "bench_press"`)
}

func TestAnalyzer_Phases(t *testing.T) {
	assert.Equal(t, []segment.PhaseName{
		segment.PhaseDescent, segment.PhaseBottom, segment.PhaseAscent,
	}, analysis.NewSquatAnalyzer().Phases())

	assert.Equal(t, []segment.PhaseName{
		segment.PhaseSetup, segment.PhaseLift, segment.PhaseLockout,
	}, analysis.NewDeadliftAnalyzer().Phases())

	assert.Equal(t, []segment.PhaseName{
		segment.PhaseUpPosition, segment.PhaseDescent, segment.PhaseBottom, segment.PhaseAscent,
	}, analysis.NewPushUpAnalyzer().Phases())
}

func TestAnalyze_EmptyInput(t *testing.T) {
	_, err := analysis.NewSquatAnalyzer().Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, pose.ErrEmptyInput)
}

func TestAnalyze_IncompleteFrame(t *testing.T) {
	frames := posetest.SquatSequence(5, 100, 0.9)
	frames[2].Landmarks = frames[2].Landmarks[:10]

	_, err := analysis.NewSquatAnalyzer().Analyze(context.Background(), frames)
	require.Error(t, err)

	var incomplete *pose.IncompleteLandmarksError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 2, incomplete.FrameNumber)
	assert.Equal(t, 10, incomplete.Landmarks)
}

func TestAnalyze_SingleFrameSquat(t *testing.T) {
	ctx := context.Background()

	t.Run("at the bottom", func(t *testing.T) {
		frames := []pose.Frame{posetest.SquatFrame(0, 0, 0.9)}
		res, err := analysis.NewSquatAnalyzer().Analyze(ctx, frames)
		require.NoError(t, err)

		assert.Equal(t, analysis.ExerciseSquat, res.Exercise)
		assert.GreaterOrEqual(t, res.Score, 90)
		assert.Zero(t, res.RepCount)
		require.Len(t, res.Phases, 1)
		assert.Equal(t, segment.PhaseBottom, res.Phases[0].Name)

		// a clean static squat still earns its positive feedback
		var ids []string
		for _, item := range res.Feedback {
			ids = append(ids, item.ID)
		}
		assert.Contains(t, ids, "depth-parallel")
	})

	t.Run("standing tall", func(t *testing.T) {
		frames := []pose.Frame{posetest.SquatFrame(0, 0, 0)}
		res, err := analysis.NewSquatAnalyzer().Analyze(ctx, frames)
		require.NoError(t, err)

		require.Len(t, res.Phases, 1)
		assert.Equal(t, segment.PhaseDescent, res.Phases[0].Name)
		assert.Equal(t, "shallow", res.Classifications["depth"])
	})
}

func TestAnalyze_SquatSequence(t *testing.T) {
	frames := posetest.SquatSequence(30, 100, 0.9)
	res, err := analysis.NewSquatAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 90)
	assert.GreaterOrEqual(t, res.RepCount, 1)
	assert.Greater(t, res.AvgRepTimeMs, 0.0)
	assert.Equal(t, "good", res.Classifications["tempo"])

	// the cycle must run descent, bottom, ascent in order
	require.GreaterOrEqual(t, len(res.Phases), 3)
	assert.Equal(t, segment.PhaseDescent, res.Phases[0].Name)
	assert.Equal(t, segment.PhaseBottom, res.Phases[1].Name)
	assert.Equal(t, segment.PhaseAscent, res.Phases[2].Name)

	assert.InDelta(t, 0.931, res.Confidence, 0.001)
	assert.Nil(t, res.Asymmetry)
}

func TestAnalyze_RushedSquat(t *testing.T) {
	// the same movement crammed into a fraction of the time
	frames := posetest.SquatSequence(30, 20, 0.9)
	res, err := analysis.NewSquatAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.RepCount, 1)
	assert.Equal(t, "too_fast", res.Classifications["tempo"])
	assert.Less(t, res.Score, 100)
}

func TestAnalyze_DeadliftRoundedBack(t *testing.T) {
	frames := posetest.DeadliftSequence(30, 150, 1, posetest.WithRoundedBack())
	res, err := analysis.NewDeadliftAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.Less(t, res.Score, 60)
	assert.Equal(t, "flexed", res.Classifications["spinePosition"])

	require.NotEmpty(t, res.Feedback)
	assert.Equal(t, "spinePosition-flexed", res.Feedback[0].ID)
	assert.Equal(t, "critical", string(res.Feedback[0].Severity))
	assert.Equal(t, "back", res.Feedback[0].Area)
	assert.Contains(t, res.Feedback[0].Message, "rounded")
}

func TestAnalyze_CleanDeadlift(t *testing.T) {
	frames := posetest.DeadliftSequence(30, 150, 1)
	res, err := analysis.NewDeadliftAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 90)
	assert.GreaterOrEqual(t, res.RepCount, 1)
	assert.Equal(t, "hinge", res.Classifications["setupPosition"])
	assert.Equal(t, "complete", res.Classifications["lockout"])
}

func TestAnalyze_PushUpMultipleFaults(t *testing.T) {
	frames := posetest.PushUpSequence(
		30, 100, 0.5,
		posetest.WithFlaredElbows(), posetest.WithSaggingHips(),
	)
	res, err := analysis.NewPushUpAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.Less(t, res.Score, 50)
	assert.Equal(t, "shallow", res.Classifications["depth"])
	assert.Equal(t, "flared", res.Classifications["elbowPosition"])
	assert.Equal(t, "hips_low", res.Classifications["bodyAlignment"])

	require.GreaterOrEqual(t, len(res.Feedback), 3)
	assert.Equal(t, "high", string(res.Feedback[0].Severity))
}

func TestAnalyze_PushUpAsymmetry(t *testing.T) {
	frames := posetest.PushUpSequence(30, 100, 1, posetest.WithAsymmetry())
	res, err := analysis.NewPushUpAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	require.NotNil(t, res.Asymmetry)
	assert.Greater(t, *res.Asymmetry, 0.05)
	assert.Equal(t, "asymmetric", res.Classifications["asymmetry"])
}

func TestAnalyze_FeedbackCap(t *testing.T) {
	// pile every push-up fault into one set
	frames := posetest.PushUpSequence(
		30, 100, 0.5,
		posetest.WithFlaredElbows(),
		posetest.WithSaggingHips(),
		posetest.WithWideHands(),
		posetest.WithAsymmetry(),
	)
	res, err := analysis.NewPushUpAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(res.Feedback), 5)
}

func TestAnalyze_LowVisibilityDegradesConfidence(t *testing.T) {
	frames := posetest.SquatSequence(30, 100, 0.9, posetest.WithVisibility(0.5))
	res, err := analysis.NewSquatAnalyzer().Analyze(context.Background(), frames)
	require.NoError(t, err)

	assert.Less(t, res.Confidence, 0.7)
	assert.GreaterOrEqual(t, res.RepCount, 1)
}

func TestAnalyze_Deterministic(t *testing.T) {
	frames := posetest.PushUpSequence(30, 100, 1, posetest.WithAsymmetry())
	a := analysis.NewPushUpAnalyzer()

	first, err := a.Analyze(context.Background(), frames)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), frames)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestConfidence(t *testing.T) {
	assert.Zero(t, analysis.Confidence(nil))
	assert.Zero(t, analysis.Confidence([]pose.Frame{{}}))

	frames := []pose.Frame{posetest.SquatFrame(0, 0, 0.5)}
	assert.InDelta(t, 0.95*0.98, analysis.Confidence(frames), 1e-9)
}
