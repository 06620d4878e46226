package domain

import (
	"testing"
	"time"
)

func TestRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{RequestStatusDraft, RequestStatusPending, true},
		{RequestStatusDraft, RequestStatusApproved, false},
		{RequestStatusPending, RequestStatusInReview, true},
		{RequestStatusInReview, RequestStatusApproved, true},
		{RequestStatusInReview, RequestStatusDenied, true},
		{RequestStatusApproved, RequestStatusConverted, true},
		{RequestStatusApproved, RequestStatusCancelled, false},
		{RequestStatusDenied, RequestStatusPending, false},
		{RequestStatusConverted, RequestStatusCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	terminal := []RequestStatus{RequestStatusDenied, RequestStatusCancelled, RequestStatusConverted}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Errorf("Expected %s to be terminal", status)
		}
	}
	open := []RequestStatus{RequestStatusDraft, RequestStatusPending, RequestStatusInReview, RequestStatusApproved}
	for _, status := range open {
		if status.IsTerminal() {
			t.Errorf("Expected %s not to be terminal", status)
		}
	}
}

func TestChangeStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ChangeStatus
		to      ChangeStatus
		allowed bool
	}{
		{ChangeStatusApproved, ChangeStatusScheduled, true},
		{ChangeStatusApproved, ChangeStatusExecuting, false},
		{ChangeStatusScheduled, ChangeStatusExecuting, true},
		{ChangeStatusScheduled, ChangeStatusCancelled, true},
		{ChangeStatusExecuting, ChangeStatusCompleted, true},
		{ChangeStatusExecuting, ChangeStatusFailed, true},
		{ChangeStatusExecuting, ChangeStatusCancelled, false},
		{ChangeStatusFailed, ChangeStatusRolledBack, true},
		{ChangeStatusCompleted, ChangeStatusRolledBack, false},
		{ChangeStatusRolledBack, ChangeStatusScheduled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestProjectStatusTransitions(t *testing.T) {
	if !ProjectStatusOnHold.CanTransitionTo(ProjectStatusActive) {
		t.Error("Expected ON_HOLD -> ACTIVE to be allowed")
	}
	if ProjectStatusCompleted.CanTransitionTo(ProjectStatusActive) {
		t.Error("Expected COMPLETED to be terminal")
	}
	if !ProjectStatusOnHold.CanTransitionTo(ProjectStatusCompleted) {
		t.Error("Expected ON_HOLD -> COMPLETED to be allowed")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	task := Task{Status: TaskStatusInProgress, DueDate: &past}
	if !task.IsOverdue(now) {
		t.Error("Expected a past-due open task to be overdue")
	}

	task.Status = TaskStatusCompleted
	if task.IsOverdue(now) {
		t.Error("Expected a terminal task never to be overdue")
	}

	task = Task{Status: TaskStatusInProgress}
	if task.IsOverdue(now) {
		t.Error("Expected a task without a due date never to be overdue")
	}
}
