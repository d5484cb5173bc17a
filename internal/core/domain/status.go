package domain

import "math"

type Status string

const (
	StatusOnTrack Status = "on-track"
	StatusAtRisk  Status = "at-risk"
	StatusBehind  Status = "behind"
)

const (
	DefaultOnTrackThreshold = 70
	DefaultAtRiskThreshold  = 50
)

// StatusLabel is the single presentation table for a status. Every view reads
// labels and colors from here instead of redefining its own.
type StatusLabel struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Short string `json:"short"`
}

var statusLabels = map[Status]StatusLabel{
	StatusOnTrack: {Label: "Winning", Color: "green", Short: "Green"},
	StatusAtRisk:  {Label: "Caution", Color: "yellow", Short: "Yellow"},
	StatusBehind:  {Label: "Needs Help", Color: "red", Short: "Red"},
}

func (s Status) Label() StatusLabel {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusBehind]
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Thresholds are inclusive lower bounds in percentage points.
type Thresholds struct {
	OnTrack float64 `json:"on_track" yaml:"on_track"`
	AtRisk  float64 `json:"at_risk" yaml:"at_risk"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{OnTrack: DefaultOnTrackThreshold, AtRisk: DefaultAtRiskThreshold}
}

func (t Thresholds) Valid() bool {
	if math.IsNaN(t.OnTrack) || math.IsNaN(t.AtRisk) {
		return false
	}
	return t.AtRisk >= 0 && t.OnTrack >= t.AtRisk
}

// Normalize returns t, or the defaults when t is unusable.
func (t Thresholds) Normalize() Thresholds {
	if !t.Valid() {
		return DefaultThresholds()
	}
	return t
}

func (t Thresholds) Classify(percentage float64) Status {
	t = t.Normalize()
	switch {
	case math.IsNaN(percentage):
		return StatusBehind
	case percentage >= t.OnTrack:
		return StatusOnTrack
	case percentage >= t.AtRisk:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}

func ClassifyStatus(percentage int) Status {
	return DefaultThresholds().Classify(float64(percentage))
}
