package metrics

// IncrementRequestCreated records a project request creation event
func (m *Metrics) IncrementRequestCreated() {
	m.safeExecute("IncrementRequestCreated", func() {
		m.RequestsCreatedTotal.Inc()
	})
}

// IncrementRequestApproved records a project request approval
func (m *Metrics) IncrementRequestApproved() {
	m.safeExecute("IncrementRequestApproved", func() {
		m.RequestsApprovedTotal.Inc()
	})
}

// IncrementProjectCreated records a project materialized from a request
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectsCreatedTotal.Inc()
	})
}

// IncrementProjectCompleted records a project completion
func (m *Metrics) IncrementProjectCompleted() {
	m.safeExecute("IncrementProjectCompleted", func() {
		m.ProjectsCompletedTotal.Inc()
	})
}

// IncrementTaskClaimed records a successful pool claim
func (m *Metrics) IncrementTaskClaimed() {
	m.safeExecute("IncrementTaskClaimed", func() {
		m.TasksClaimedTotal.Inc()
	})
}

// IncrementTaskCompleted records a task completion
func (m *Metrics) IncrementTaskCompleted() {
	m.safeExecute("IncrementTaskCompleted", func() {
		m.TasksCompletedTotal.Inc()
	})
}

// IncrementChangeExecuted records a change execution start
func (m *Metrics) IncrementChangeExecuted() {
	m.safeExecute("IncrementChangeExecuted", func() {
		m.ChangesExecutedTotal.Inc()
	})
}

// IncrementChangeFailed records a failed change execution
func (m *Metrics) IncrementChangeFailed() {
	m.safeExecute("IncrementChangeFailed", func() {
		m.ChangesFailedTotal.Inc()
	})
}
