package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/repository"
	"change-ops-api/internal/response"
)

const (
	recentActivityPageSize = 5
	trendMonths            = 12
	topSystemsLimit        = 5
)

// StatsCache caches the dashboard aggregate between recomputations. A miss
// returns (nil, nil).
type StatsCache interface {
	GetDashboard(ctx context.Context) (*dto.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *dto.DashboardStats) error
}

// StatsService defines the interface for dashboard and analytics aggregation
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	RefreshDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	GetMonthlyTrends(ctx context.Context) ([]*dto.MonthlyTrend, error)
	GetSuccessRate(ctx context.Context) (*dto.SuccessRateData, error)
	GetTopAffectedSystems(ctx context.Context) ([]*dto.TopAffectedSystem, error)
}

// statsServiceImpl is the implementation of StatsService
type statsServiceImpl struct {
	changeRepo  repository.ChangeRepository
	requestRepo repository.RequestRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	cache       StatsCache
	logger      *zap.Logger
	now         func() time.Time
}

// NewStatsService creates a new instance of StatsService. cache may be nil,
// in which case every read recomputes.
func NewStatsService(changeRepo repository.ChangeRepository, requestRepo repository.RequestRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, cache StatsCache, logger *zap.Logger) StatsService {
	return &statsServiceImpl{
		changeRepo:  changeRepo,
		requestRepo: requestRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		cache:       cache,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetDashboardStats returns the dashboard aggregate, served from cache when a
// fresh snapshot exists. Cache failures degrade to recomputation.
func (s *statsServiceImpl) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx)
		if err != nil {
			s.logger.Warn("Dashboard stats cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}
	return s.RefreshDashboardStats(ctx)
}

// RefreshDashboardStats recomputes the dashboard aggregate and stores it in
// the cache
func (s *statsServiceImpl) RefreshDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	var err error
	if stats.ChangeManagement, err = s.changeStats(ctx); err != nil {
		return nil, err
	}
	if stats.ProjectManagement, err = s.projectStats(ctx); err != nil {
		return nil, err
	}
	if stats.TaskManagement, err = s.taskStats(ctx); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.recentActivity(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats); err != nil {
			s.logger.Warn("Dashboard stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// GetMonthlyTrends returns exactly twelve calendar-month buckets covering the
// trailing year including the current month, oldest first. Buckets with no
// decided changes are zero-filled. Changes bucket on the month of their
// decision date; rolled-back changes keep the failure decision.
func (s *statsServiceImpl) GetMonthlyTrends(ctx context.Context) ([]*dto.MonthlyTrend, error) {
	now := s.now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(trendMonths - 1), 0)

	changes, err := s.changeRepo.FindDecidedSince(ctx, windowStart)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch decided changes", err.Error())
	}

	trends := make([]*dto.MonthlyTrend, trendMonths)
	index := make(map[string]*dto.MonthlyTrend, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := windowStart.AddDate(0, i, 0)
		bucket := &dto.MonthlyTrend{MonthName: month.Format("Jan 2006")}
		trends[i] = bucket
		index[month.Format("2006-01")] = bucket
	}

	for _, c := range changes {
		if c.DecisionDate == nil {
			continue
		}
		bucket, ok := index[c.DecisionDate.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		bucket.TotalChanges++
		switch c.Status {
		case domain.ChangeStatusCompleted:
			bucket.Completed++
		case domain.ChangeStatusFailed, domain.ChangeStatusRolledBack:
			bucket.Failed++
		}
	}

	return trends, nil
}

// GetSuccessRate returns execution outcome counts with exact percentages.
// The three percentages sum to 100 unless nothing has been executed, in
// which case all are 0.
func (s *statsServiceImpl) GetSuccessRate(ctx context.Context) (*dto.SuccessRateData, error) {
	successful, err := s.changeRepo.CountByStatus(ctx, domain.ChangeStatusCompleted)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count changes", err.Error())
	}
	failed, err := s.changeRepo.CountByStatus(ctx, domain.ChangeStatusFailed)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count changes", err.Error())
	}
	rolledBack, err := s.changeRepo.CountByStatus(ctx, domain.ChangeStatusRolledBack)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count changes", err.Error())
	}

	data := &dto.SuccessRateData{
		SuccessfulChanges: successful,
		FailedChanges:     failed,
		RolledBackChanges: rolledBack,
	}
	total := successful + failed + rolledBack
	if total > 0 {
		data.SuccessPercentage = float64(successful) * 100 / float64(total)
		data.FailurePercentage = float64(failed) * 100 / float64(total)
		data.RollbackPercentage = float64(rolledBack) * 100 / float64(total)
	}
	return data, nil
}

// GetTopAffectedSystems ranks the systems named in executed changes. System
// names are split on commas, trimmed and compared case-insensitively; the
// first-seen casing is kept for display. The top five by change count are
// returned, ties broken by name.
func (s *statsServiceImpl) GetTopAffectedSystems(ctx context.Context) ([]*dto.TopAffectedSystem, error) {
	changes, err := s.changeRepo.FindExecuted(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch executed changes", err.Error())
	}

	tallies := make(map[string]*dto.TopAffectedSystem)
	for _, c := range changes {
		for _, raw := range strings.Split(c.AffectedSystems, ",") {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			entry, ok := tallies[key]
			if !ok {
				entry = &dto.TopAffectedSystem{SystemName: name}
				tallies[key] = entry
			}
			entry.ChangeCount++
			switch c.Status {
			case domain.ChangeStatusCompleted:
				entry.SuccessfulChanges++
			case domain.ChangeStatusFailed, domain.ChangeStatusRolledBack:
				entry.FailedChanges++
			}
		}
	}

	systems := make([]*dto.TopAffectedSystem, 0, len(tallies))
	for _, entry := range tallies {
		if entry.ChangeCount > 0 {
			entry.SuccessRate = float64(entry.SuccessfulChanges) * 100 / float64(entry.ChangeCount)
		}
		systems = append(systems, entry)
	}

	sort.Slice(systems, func(i, j int) bool {
		if systems[i].ChangeCount != systems[j].ChangeCount {
			return systems[i].ChangeCount > systems[j].ChangeCount
		}
		return strings.ToLower(systems[i].SystemName) < strings.ToLower(systems[j].SystemName)
	})

	if len(systems) > topSystemsLimit {
		systems = systems[:topSystemsLimit]
	}
	return systems, nil
}

func (s *statsServiceImpl) changeStats(ctx context.Context) (dto.ChangeManagementStats, error) {
	stats := dto.ChangeManagementStats{}
	counts := []struct {
		status domain.ChangeStatus
		target *int64
	}{
		{domain.ChangeStatusDraft, &stats.DraftChanges},
		{domain.ChangeStatusPending, &stats.PendingApproval},
		{domain.ChangeStatusScheduled, &stats.ScheduledChanges},
		{domain.ChangeStatusExecuting, &stats.ExecutingChanges},
		{domain.ChangeStatusCompleted, &stats.CompletedChanges},
		{domain.ChangeStatusFailed, &stats.FailedChanges},
		{domain.ChangeStatusRolledBack, &stats.RolledBackChanges},
	}
	for _, c := range counts {
		n, err := s.changeRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count changes", err.Error())
		}
		*c.target = n
	}
	return stats, nil
}

func (s *statsServiceImpl) projectStats(ctx context.Context) (dto.ProjectManagementStats, error) {
	stats := dto.ProjectManagementStats{}

	requestCounts := []struct {
		status domain.RequestStatus
		target *int64
	}{
		{domain.RequestStatusPending, &stats.PendingRequests},
		{domain.RequestStatusInReview, &stats.RequestsInReview},
		{domain.RequestStatusApproved, &stats.ApprovedRequests},
	}
	for _, c := range requestCounts {
		n, err := s.requestRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count requests", err.Error())
		}
		*c.target = n
	}

	projectCounts := []struct {
		status domain.ProjectStatus
		target *int64
	}{
		{domain.ProjectStatusActive, &stats.ActiveProjects},
		{domain.ProjectStatusOnHold, &stats.ProjectsOnHold},
		{domain.ProjectStatusCompleted, &stats.CompletedProjects},
	}
	for _, c := range projectCounts {
		n, err := s.projectRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count projects", err.Error())
		}
		*c.target = n
	}

	return stats, nil
}

func (s *statsServiceImpl) taskStats(ctx context.Context) (dto.TaskManagementStats, error) {
	stats := dto.TaskManagementStats{}

	var err error
	if stats.UnassignedTasks, err = s.taskRepo.CountUnassigned(ctx); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	if stats.PooledTasks, err = s.taskRepo.CountPooled(ctx); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	if stats.TasksInProgress, err = s.taskRepo.CountByStatus(ctx, domain.TaskStatusInProgress); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	if stats.BlockedTasks, err = s.taskRepo.CountByStatus(ctx, domain.TaskStatusBlocked); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	if stats.OverdueTasks, err = s.taskRepo.CountOverdue(ctx, s.now()); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	if stats.CompletedTasks, err = s.taskRepo.CountByStatus(ctx, domain.TaskStatusCompleted); err != nil {
		return stats, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}
	return stats, nil
}

func (s *statsServiceImpl) recentActivity(ctx context.Context) (dto.RecentActivity, error) {
	activity := dto.RecentActivity{}

	changes, err := s.changeRepo.FindRecent(ctx, recentActivityPageSize)
	if err != nil {
		return activity, response.NewAppError(response.ErrCodeInternal, "Failed to fetch recent changes", err.Error())
	}
	activity.Changes = make([]*dto.ChangeRequestResponse, 0, len(changes))
	for _, c := range changes {
		activity.Changes = append(activity.Changes, dto.ToChangeRequestResponse(c))
	}

	projects, err := s.projectRepo.FindRecent(ctx, recentActivityPageSize)
	if err != nil {
		return activity, response.NewAppError(response.ErrCodeInternal, "Failed to fetch recent projects", err.Error())
	}
	activity.Projects = make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		activity.Projects = append(activity.Projects, dto.ToProjectResponse(p))
	}

	tasks, err := s.taskRepo.FindRecent(ctx, recentActivityPageSize)
	if err != nil {
		return activity, response.NewAppError(response.ErrCodeInternal, "Failed to fetch recent tasks", err.Error())
	}
	activity.Tasks = dto.ToTaskResponses(tasks)

	requests, err := s.requestRepo.FindRecent(ctx, recentActivityPageSize)
	if err != nil {
		return activity, response.NewAppError(response.ErrCodeInternal, "Failed to fetch recent requests", err.Error())
	}
	activity.Requests = make([]*dto.ProjectRequestResponse, 0, len(requests))
	for _, r := range requests {
		activity.Requests = append(activity.Requests, dto.ToProjectRequestResponse(r))
	}

	return activity, nil
}
