package domain

import "math"

type Weighting string

const (
	// WeightEqual counts every target the same regardless of its scale.
	WeightEqual Weighting = "equal"
	// WeightByTarget weights each percentage by the target value it was computed from.
	WeightByTarget Weighting = "target"
)

func (w Weighting) Valid() bool {
	return w == WeightEqual || w == WeightByTarget
}

type ScoreOptions struct {
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
	Weighting  Weighting  `json:"weighting" yaml:"weighting"`
}

func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{Thresholds: DefaultThresholds(), Weighting: WeightEqual}
}

type ScoredTarget struct {
	VictoryTarget
	Percentage int         `json:"percentage"`
	Status     Status      `json:"status"`
	Label      StatusLabel `json:"label"`
}

type ScoredPowerMove struct {
	PowerMove
	Percentage int `json:"percentage"`
}

type DepartmentScore struct {
	BrandID        string            `json:"brand_id,omitempty"`
	Department     string            `json:"department,omitempty"`
	AverageScore   int               `json:"average_score"`
	Status         Status            `json:"status"`
	GreenCount     int               `json:"green_count"`
	TotalTargets   int               `json:"total_targets"`
	UpdatedTargets []ScoredTarget    `json:"updated_targets"`
	PowerMoveScore int               `json:"power_move_score"`
	PowerMoveCount int               `json:"power_move_count"`
	PowerMoves     []ScoredPowerMove `json:"power_moves"`
}

// CompanyScore rolls department averages up to one brand-wide figure.
// Departments without victory targets are listed but not averaged.
type CompanyScore struct {
	BrandID      string            `json:"brand_id"`
	AverageScore int               `json:"average_score"`
	Status       Status            `json:"status"`
	Label        StatusLabel       `json:"label"`
	Departments  []DepartmentScore `json:"departments"`
}

// ComputeProgress returns achieved/target as a rounded percentage. A zero,
// negative or non-finite target is 0%. The result is not capped at 100.
func ComputeProgress(achieved, target float64) int {
	if target <= 0 || !isFinite(target) || !isFinite(achieved) {
		return 0
	}
	return roundPercent(achieved / target * 100)
}

func AggregateDepartmentScore(targets []*VictoryTarget, moves []*PowerMove, opts ScoreOptions) DepartmentScore {
	thresholds := opts.Thresholds.Normalize()

	score := DepartmentScore{
		UpdatedTargets: make([]ScoredTarget, 0, len(targets)),
		PowerMoves:     make([]ScoredPowerMove, 0, len(moves)),
	}

	var sum, weighted, weights float64
	for _, t := range targets {
		if t == nil {
			continue
		}
		pct := ComputeProgress(t.Achieved, t.Target)
		status := thresholds.Classify(float64(pct))
		if status == StatusOnTrack {
			score.GreenCount++
		}

		sum += float64(pct)
		if t.Target > 0 && isFinite(t.Target) {
			weighted += float64(pct) * t.Target
			weights += t.Target
		}

		score.UpdatedTargets = append(score.UpdatedTargets, ScoredTarget{
			VictoryTarget: *t,
			Percentage:    pct,
			Status:        status,
			Label:         status.Label(),
		})
	}

	score.TotalTargets = len(score.UpdatedTargets)
	if score.TotalTargets > 0 {
		if opts.Weighting == WeightByTarget && weights > 0 {
			score.AverageScore = roundPercent(weighted / weights)
		} else {
			score.AverageScore = roundPercent(sum / float64(score.TotalTargets))
		}
	}
	score.Status = thresholds.Classify(float64(score.AverageScore))

	var moveSum float64
	for _, m := range moves {
		if m == nil {
			continue
		}
		pct := m.Percentage()
		moveSum += float64(pct)
		score.PowerMoves = append(score.PowerMoves, ScoredPowerMove{PowerMove: *m, Percentage: pct})
	}
	score.PowerMoveCount = len(score.PowerMoves)
	if score.PowerMoveCount > 0 {
		score.PowerMoveScore = roundPercent(moveSum / float64(score.PowerMoveCount))
	}

	return score
}

// AggregateCompanyScore is the unweighted mean of department averages.
func AggregateCompanyScore(departmentScores []int) int {
	if len(departmentScores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range departmentScores {
		sum += float64(s)
	}
	return roundPercent(sum / float64(len(departmentScores)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundPercent rounds half up, matching how the dashboards have always
// displayed percentages.
func roundPercent(v float64) int {
	if !isFinite(v) {
		return 0
	}
	r := math.Floor(v + 0.5)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return int(r)
}
