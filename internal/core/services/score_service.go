package services

import (
	"context"
	"sort"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// ScoreService assembles department and company dashboards from the stored
// entities. The arithmetic itself lives in domain.AggregateDepartmentScore.
type ScoreService struct {
	targets     domain.VictoryTargetRepository
	moves       domain.PowerMoveRepository
	tasks       domain.TaskRepository
	commitments domain.CommitmentRepository
	snapshots   domain.SnapshotRepository
	access      *AccessService
	opts        domain.ScoreOptions
}

func NewScoreService(
	targets domain.VictoryTargetRepository,
	moves domain.PowerMoveRepository,
	tasks domain.TaskRepository,
	commitments domain.CommitmentRepository,
	snapshots domain.SnapshotRepository,
	access *AccessService,
	opts domain.ScoreOptions,
) *ScoreService {
	opts.Thresholds = opts.Thresholds.Normalize()
	if !opts.Weighting.Valid() {
		opts.Weighting = domain.WeightEqual
	}
	return &ScoreService{
		targets:     targets,
		moves:       moves,
		tasks:       tasks,
		commitments: commitments,
		snapshots:   snapshots,
		access:      access,
		opts:        opts,
	}
}

func (s *ScoreService) Options() domain.ScoreOptions {
	return s.opts
}

// Compute scores one department without an access check. It is meant for
// background jobs; request paths go through DepartmentScore.
func (s *ScoreService) Compute(ctx context.Context, brandID, department string) (domain.DepartmentScore, error) {
	filter := domain.ListFilter{BrandID: brandID, Department: department}

	targets, err := s.targets.List(ctx, filter)
	if err != nil {
		return domain.DepartmentScore{}, err
	}
	moves, err := s.moves.List(ctx, filter)
	if err != nil {
		return domain.DepartmentScore{}, err
	}

	score := domain.AggregateDepartmentScore(targets, moves, s.opts)
	score.BrandID = brandID
	score.Department = department
	return score, nil
}

func (s *ScoreService) DepartmentScore(ctx context.Context, actor domain.Actor, brandID, department string) (domain.DepartmentScore, error) {
	brandID, department, err := s.authorizeDepartment(ctx, actor, brandID, department)
	if err != nil {
		return domain.DepartmentScore{}, err
	}
	return s.Compute(ctx, brandID, department)
}

// CompanyScore scores every department of the brand visible to actor and
// averages those that track at least one victory target.
func (s *ScoreService) CompanyScore(ctx context.Context, actor domain.Actor, brandID string) (*domain.CompanyScore, error) {
	filter, err := s.access.scopedFilter(ctx, actor, domain.ListFilter{BrandID: brandID})
	if err != nil {
		return nil, err
	}

	targets, err := s.targets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	moves, err := s.moves.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	targetsByDept := make(map[string][]*domain.VictoryTarget)
	movesByDept := make(map[string][]*domain.PowerMove)
	depts := make(map[string]bool)
	for _, t := range targets {
		targetsByDept[t.Department] = append(targetsByDept[t.Department], t)
		depts[t.Department] = true
	}
	for _, m := range moves {
		movesByDept[m.Department] = append(movesByDept[m.Department], m)
		depts[m.Department] = true
	}
	for _, d := range domain.KnownDepartments {
		if filter.Matches(filter.BrandID, d.Code, "") {
			depts[d.Code] = true
		}
	}

	codes := make([]string, 0, len(depts))
	for code := range depts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	company := &domain.CompanyScore{
		BrandID:     filter.BrandID,
		Departments: make([]domain.DepartmentScore, 0, len(codes)),
	}
	averages := make([]int, 0, len(codes))
	for _, code := range codes {
		score := domain.AggregateDepartmentScore(targetsByDept[code], movesByDept[code], s.opts)
		score.BrandID = filter.BrandID
		score.Department = code
		company.Departments = append(company.Departments, score)
		if score.TotalTargets > 0 {
			averages = append(averages, score.AverageScore)
		}
	}

	company.AverageScore = domain.AggregateCompanyScore(averages)
	company.Status = s.opts.Thresholds.Classify(float64(company.AverageScore))
	company.Label = company.Status.Label()
	return company, nil
}

// DepartmentConfig gathers everything one department tracks.
func (s *ScoreService) DepartmentConfig(ctx context.Context, actor domain.Actor, brandID, department string) (*domain.DepartmentConfig, error) {
	brandID, department, err := s.authorizeDepartment(ctx, actor, brandID, department)
	if err != nil {
		return nil, err
	}
	filter := domain.ListFilter{BrandID: brandID, Department: department}

	info := domain.LookupDepartment(department)
	cfg := &domain.DepartmentConfig{
		BrandID: brandID,
		Code:    info.Code,
		Name:    info.Name,
		Icon:    info.Icon,
	}

	if cfg.VictoryTargets, err = s.targets.List(ctx, filter); err != nil {
		return nil, err
	}
	if cfg.PowerMoves, err = s.moves.List(ctx, filter); err != nil {
		return nil, err
	}
	if cfg.Tasks, err = s.tasks.List(ctx, filter); err != nil {
		return nil, err
	}
	if cfg.Commitments, err = s.commitments.List(ctx, filter); err != nil {
		return nil, err
	}
	return cfg, nil
}

type HistoryInput struct {
	Actor      domain.Actor
	BrandID    string
	Department string
	Period     domain.Period
	Anchor     time.Time
}

// History returns the weekly snapshots whose week overlaps the period
// window around Anchor.
func (s *ScoreService) History(ctx context.Context, input HistoryInput) ([]*domain.WeeklySnapshot, error) {
	brandID, department, err := s.authorizeDepartment(ctx, input.Actor, input.BrandID, input.Department)
	if err != nil {
		return nil, err
	}

	anchor := input.Anchor
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}
	period := input.Period
	if period == "" {
		period = domain.PeriodLast4Weeks
	}

	from, to := domain.PeriodRange(anchor, period)
	return s.snapshots.ListRange(ctx, brandID, department, domain.WeekStart(from), to)
}

// Snapshot computes and stores the current week's row for one department.
func (s *ScoreService) Snapshot(ctx context.Context, brandID, department string, now time.Time) (*domain.WeeklySnapshot, error) {
	score, err := s.Compute(ctx, brandID, department)
	if err != nil {
		return nil, err
	}
	snap := domain.NewWeeklySnapshot(score, now)
	if err := s.snapshots.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *ScoreService) authorizeDepartment(ctx context.Context, actor domain.Actor, brandID, department string) (string, string, error) {
	brandID = mergeString(brandID, actor.BrandID)
	if brandID == "" {
		return "", "", domain.ErrBrandRequired
	}
	dept, err := domain.NormalizeDepartment(department)
	if err != nil {
		return "", "", err
	}
	if err := s.access.Authorize(ctx, actor, brandID, dept, domain.PermissionView); err != nil {
		return "", "", err
	}
	return brandID, dept, nil
}
