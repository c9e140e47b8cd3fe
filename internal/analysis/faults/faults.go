package faults

import (
	"github.com/2beens/formcoach/internal/analysis/angles"
	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/segment"
)

// Severity grades how much a detected form issue endangers the athlete
// or degrades the lift.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for sorting, higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// FeedbackType tells the client how to present an item.
type FeedbackType string

const (
	TypePositive   FeedbackType = "positive"
	TypeCorrection FeedbackType = "correction"
	TypeSuggestion FeedbackType = "suggestion"
)

// Candidate is one classified form dimension turned into presentable
// feedback. Candidates are appended in a fixed detection order, which
// breaks severity ties downstream.
type Candidate struct {
	Dimension  string
	Label      string
	Type       FeedbackType
	Severity   Severity
	Area       string
	Message    string
	Suggestion string
}

// Detection is the full fault detector output for one sequence.
type Detection struct {
	// Classifications maps every checked dimension to its label,
	// including the good ones.
	Classifications map[string]string
	Candidates      []Candidate
	// Asymmetry is the normalized left/right imbalance, push-up only.
	Asymmetry *float64
}

// Detector classifies the form dimensions of one exercise. Degraded
// landmark quality never fails detection, it only produces less
// confident classifications.
type Detector interface {
	Detect(frames []pose.Frame, series []angles.JointAngles, seg segment.Result) Detection
}

func (d *Detection) classify(dimension, label string) {
	if d.Classifications == nil {
		d.Classifications = make(map[string]string)
	}
	d.Classifications[dimension] = label
}

func (d *Detection) add(c Candidate) {
	d.classify(c.Dimension, c.Label)
	d.Candidates = append(d.Candidates, c)
}
