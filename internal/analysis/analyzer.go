package analysis

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/faults"
	"github.com/2beens/formcoach/internal/analysis/feedback"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/scoring"
	"github.com/2beens/formcoach/internal/analysis/segment"
	"github.com/2beens/formcoach/internal/telemetry/tracing"
)

// Exercise is one of the supported movement types.
type Exercise string

const (
	ExerciseSquat    Exercise = "squat"
	ExerciseDeadlift Exercise = "deadlift"
	ExercisePushUp   Exercise = "push_up"
)

// Exercises lists all supported exercises in a stable order.
func Exercises() []Exercise {
	return []Exercise{ExerciseSquat, ExerciseDeadlift, ExercisePushUp}
}

// ParseExercise maps a client-provided exercise name to a known value.
func ParseExercise(s string) (Exercise, error) {
	switch Exercise(s) {
	case ExerciseSquat, ExerciseDeadlift, ExercisePushUp:
		return Exercise(s), nil
	default:
		return "", fmt.Errorf("unknown exercise: %q", s)
	}
}

// Result is the complete analysis of one frame sequence.
type Result struct {
	Exercise        Exercise           `json:"exercise"`
	Score           int                `json:"score"`
	Classifications map[string]string  `json:"classifications"`
	Angles          angles.JointAngles `json:"angles"`
	Phases          []segment.Phase    `json:"phases"`
	RepCount        int                `json:"repCount"`
	AvgRepTimeMs    float64            `json:"avgRepTimeMs,omitempty"`
	Feedback        []feedback.Item    `json:"feedback"`
	Confidence      float64            `json:"confidence"`
	Asymmetry       *float64           `json:"asymmetry,omitempty"`
}

type exerciseSetup struct {
	calculator *angles.Calculator
	segmentCfg segment.Config
	detector   faults.Detector
	// minRepMs is the rep duration floor below which reps count as rushed
	minRepMs float64
}

// Analyzer runs the full form analysis pipeline for one exercise:
// validation, angle extraction, rep segmentation, fault detection,
// scoring and feedback assembly. An Analyzer is stateless apart from its
// configuration and is safe for concurrent use.
type Analyzer struct {
	exercise Exercise
	setup    exerciseSetup
	weights  scoring.Weights
}

func NewAnalyzer(exercise Exercise) (*Analyzer, error) {
	setup, err := setupFor(exercise)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		exercise: exercise,
		setup:    setup,
		weights:  scoring.DefaultWeights(),
	}, nil
}

func NewSquatAnalyzer() *Analyzer {
	a, _ := NewAnalyzer(ExerciseSquat)
	return a
}

func NewDeadliftAnalyzer() *Analyzer {
	a, _ := NewAnalyzer(ExerciseDeadlift)
	return a
}

func NewPushUpAnalyzer() *Analyzer {
	a, _ := NewAnalyzer(ExercisePushUp)
	return a
}

// Analyze runs the pipeline over the given frame sequence. It fails only
// on structurally invalid input (empty sequence, frames with a wrong
// landmark count); low visibility or noisy landmarks degrade the
// reported confidence instead of erroring. Identical input always
// produces an identical result.
func (a *Analyzer) Analyze(ctx context.Context, frames []pose.Frame) (_ *Result, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.analyze")
	span.SetAttributes(
		attribute.String("exercise", string(a.exercise)),
		attribute.Int("frames", len(frames)),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := pose.ValidateSequence(frames); err != nil {
		return nil, err
	}

	series := a.setup.calculator.SequenceAngles(frames)
	seg := segment.Segment(frames, series, a.setup.segmentCfg)

	detection := a.setup.detector.Detect(frames, series, seg)
	a.checkTempo(&detection, seg)

	result := &Result{
		Exercise:        a.exercise,
		Score:           scoring.Score(detection.Candidates, a.weights),
		Classifications: detection.Classifications,
		Angles:          series[seg.LowFrame],
		Phases:          seg.Phases,
		RepCount:        seg.RepCount,
		AvgRepTimeMs:    seg.AvgRepTimeMs,
		Feedback:        feedback.Build(detection.Candidates),
		Confidence:      Confidence(frames),
		Asymmetry:       detection.Asymmetry,
	}
	span.SetAttributes(attribute.Int("score", result.Score))
	return result, nil
}

// Exercise this analyzer is configured for.
func (a *Analyzer) Exercise() Exercise {
	return a.exercise
}

// Phases returns the phase vocabulary of the analyzed exercise.
func (a *Analyzer) Phases() []segment.PhaseName {
	names := []segment.PhaseName{a.setup.segmentCfg.Start}
	current := a.setup.segmentCfg.Start
	for {
		next := a.setup.segmentCfg.Transitions[current].To
		if next == a.setup.segmentCfg.Start {
			return names
		}
		names = append(names, next)
		current = next
	}
}

func (a *Analyzer) checkTempo(det *faults.Detection, seg segment.Result) {
	if seg.RepCount == 0 {
		return
	}
	if seg.AvgRepTimeMs < a.setup.minRepMs {
		det.Classifications["tempo"] = "too_fast"
		det.Candidates = append(det.Candidates, faults.Candidate{
			Dimension:  "tempo",
			Label:      "too_fast",
			Type:       faults.TypeSuggestion,
			Severity:   faults.SeverityLow,
			Area:       "tempo",
			Message:    "Your reps are very rushed.",
			Suggestion: "Slow down and control both the way down and the way up.",
		})
		return
	}
	det.Classifications["tempo"] = "good"
}

func setupFor(exercise Exercise) (exerciseSetup, error) {
	switch exercise {
	case ExerciseSquat:
		return squatSetup(), nil
	case ExerciseDeadlift:
		return deadliftSetup(), nil
	case ExercisePushUp:
		return pushUpSetup(), nil
	default:
		return exerciseSetup{}, fmt.Errorf("unknown exercise: %q", exercise)
	}
}

// The squat cycle tracks hip height: it falls through the descent,
// bottoms out, and a rep completes when the athlete is back up and
// starts the next descent.
func squatSetup() exerciseSetup {
	return exerciseSetup{
		calculator: angles.NewCalculator(angles.Knee, angles.Hip, angles.Back),
		segmentCfg: segment.Config{
			Start: segment.PhaseDescent,
			Transitions: map[segment.PhaseName]segment.Transition{
				segment.PhaseDescent: {To: segment.PhaseBottom, Threshold: 0.25, Rising: false},
				segment.PhaseBottom:  {To: segment.PhaseAscent, Threshold: 0.35, Rising: true},
				segment.PhaseAscent:  {To: segment.PhaseDescent, Threshold: 0.85, Rising: true},
			},
			RepOn: segment.PhaseDescent,
			Signal: func(f pose.Frame, _ angles.JointAngles) float64 {
				return angles.HipHeight(f)
			},
			MinRange: 0.08,
			Static: func(ja angles.JointAngles) segment.PhaseName {
				if ja[angles.Knee] <= 115 {
					return segment.PhaseBottom
				}
				return segment.PhaseDescent
			},
		},
		detector: faults.NewSquatDetector(faults.DefaultSquatThresholds()),
		minRepMs: 1500,
	}
}

// The deadlift cycle tracks hip extension: low in the setup, maximal at
// lockout. A rep completes on reaching lockout.
func deadliftSetup() exerciseSetup {
	return exerciseSetup{
		calculator: angles.NewCalculator(angles.Knee, angles.Hip, angles.Back),
		segmentCfg: segment.Config{
			Start: segment.PhaseSetup,
			Transitions: map[segment.PhaseName]segment.Transition{
				segment.PhaseSetup:   {To: segment.PhaseLift, Threshold: 0.4, Rising: true},
				segment.PhaseLift:    {To: segment.PhaseLockout, Threshold: 0.9, Rising: true},
				segment.PhaseLockout: {To: segment.PhaseSetup, Threshold: 0.3, Rising: false},
			},
			RepOn: segment.PhaseLockout,
			Signal: func(_ pose.Frame, ja angles.JointAngles) float64 {
				return ja[angles.Hip]
			},
			MinRange: 25,
			Static: func(ja angles.JointAngles) segment.PhaseName {
				switch {
				case ja[angles.Hip] >= 160:
					return segment.PhaseLockout
				case ja[angles.Hip] <= 120:
					return segment.PhaseSetup
				default:
					return segment.PhaseLift
				}
			},
		},
		detector: faults.NewDeadliftDetector(faults.DefaultDeadliftThresholds()),
		minRepMs: 1500,
	}
}

// The push-up cycle tracks the elbow angle: extended in the up position,
// minimal at the bottom. A rep completes back in the up position.
func pushUpSetup() exerciseSetup {
	return exerciseSetup{
		calculator: angles.NewCalculator(angles.Elbow, angles.Body, angles.Back),
		segmentCfg: segment.Config{
			Start: segment.PhaseUpPosition,
			Transitions: map[segment.PhaseName]segment.Transition{
				segment.PhaseUpPosition: {To: segment.PhaseDescent, Threshold: 0.75, Rising: false},
				segment.PhaseDescent:    {To: segment.PhaseBottom, Threshold: 0.25, Rising: false},
				segment.PhaseBottom:     {To: segment.PhaseAscent, Threshold: 0.35, Rising: true},
				segment.PhaseAscent:     {To: segment.PhaseUpPosition, Threshold: 0.85, Rising: true},
			},
			RepOn: segment.PhaseUpPosition,
			Signal: func(_ pose.Frame, ja angles.JointAngles) float64 {
				return ja[angles.Elbow]
			},
			MinRange: 40,
			Static: func(ja angles.JointAngles) segment.PhaseName {
				switch {
				case ja[angles.Elbow] >= 150:
					return segment.PhaseUpPosition
				case ja[angles.Elbow] <= 90:
					return segment.PhaseBottom
				default:
					return segment.PhaseDescent
				}
			},
		},
		detector: faults.NewPushUpDetector(faults.DefaultPushUpThresholds()),
		minRepMs: 1000,
	}
}
