package dto

// ChangeManagementStats holds per-status counters for change requests
type ChangeManagementStats struct {
	DraftChanges      int64 `json:"draftChanges"`
	PendingApproval   int64 `json:"pendingApproval"`
	ScheduledChanges  int64 `json:"scheduledChanges"`
	ExecutingChanges  int64 `json:"executingChanges"`
	CompletedChanges  int64 `json:"completedChanges"`
	FailedChanges     int64 `json:"failedChanges"`
	RolledBackChanges int64 `json:"rolledBackChanges"`
}

// ProjectManagementStats holds per-status counters for requests and projects
type ProjectManagementStats struct {
	PendingRequests   int64 `json:"pendingRequests"`
	RequestsInReview  int64 `json:"requestsInReview"`
	ApprovedRequests  int64 `json:"approvedRequests"`
	ActiveProjects    int64 `json:"activeProjects"`
	ProjectsOnHold    int64 `json:"projectsOnHold"`
	CompletedProjects int64 `json:"completedProjects"`
}

// TaskManagementStats holds per-status counters for tasks
type TaskManagementStats struct {
	UnassignedTasks int64 `json:"unassignedTasks"`
	PooledTasks     int64 `json:"pooledTasks"`
	TasksInProgress int64 `json:"tasksInProgress"`
	BlockedTasks    int64 `json:"blockedTasks"`
	OverdueTasks    int64 `json:"overdueTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
}

// RecentActivity holds the three most-recent-first activity lists, each
// bounded to a fixed page size
type RecentActivity struct {
	Changes  []*ChangeRequestResponse  `json:"changes"`
	Projects []*ProjectResponse        `json:"projects"`
	Tasks    []*TaskResponse           `json:"tasks"`
	Requests []*ProjectRequestResponse `json:"requests"`
}

// DashboardStats is the aggregate consumed by the dashboard
type DashboardStats struct {
	ChangeManagement  ChangeManagementStats  `json:"changeManagement"`
	ProjectManagement ProjectManagementStats `json:"projectManagement"`
	TaskManagement    TaskManagementStats    `json:"taskManagement"`
	RecentActivity    RecentActivity         `json:"recentActivity"`
}

// MonthlyTrend is one calendar-month bucket of terminal change outcomes
type MonthlyTrend struct {
	MonthName    string `json:"monthName"`
	TotalChanges int64  `json:"totalChanges"`
	Completed    int64  `json:"completed"`
	Failed       int64  `json:"failed"`
}

// SuccessRateData holds execution outcome counts and exact percentages.
// Percentages sum to 100 except for the all-zero population, where they
// are all 0.
type SuccessRateData struct {
	SuccessfulChanges  int64   `json:"successfulChanges"`
	FailedChanges      int64   `json:"failedChanges"`
	RolledBackChanges  int64   `json:"rolledBackChanges"`
	SuccessPercentage  float64 `json:"successPercentage"`
	FailurePercentage  float64 `json:"failurePercentage"`
	RollbackPercentage float64 `json:"rollbackPercentage"`
}

// TopAffectedSystem is one entry of the affected-systems ranking
type TopAffectedSystem struct {
	SystemName        string  `json:"systemName"`
	ChangeCount       int64   `json:"changeCount"`
	SuccessfulChanges int64   `json:"successfulChanges"`
	FailedChanges     int64   `json:"failedChanges"`
	SuccessRate       float64 `json:"successRate"`
}
