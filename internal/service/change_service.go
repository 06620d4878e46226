package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/metrics"
	"change-ops-api/internal/repository"
	"change-ops-api/internal/response"
)

// ChangeService defines the interface for change request business logic
type ChangeService interface {
	CreateChange(ctx context.Context, userID uuid.UUID, req *dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error)
	GetChange(ctx context.Context, changeID uuid.UUID) (*dto.ChangeRequestResponse, error)
	ListChanges(ctx context.Context, status *domain.ChangeStatus) ([]*dto.ChangeRequestResponse, error)
	Submit(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)
	BeginReview(ctx context.Context, changeID, reviewerID uuid.UUID) (*dto.ChangeRequestResponse, error)
	Approve(ctx context.Context, changeID, approverID uuid.UUID, notes string) (*dto.ChangeRequestResponse, error)
	Deny(ctx context.Context, changeID, reviewerID uuid.UUID, reason string) (*dto.ChangeRequestResponse, error)
	Cancel(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)
	Schedule(ctx context.Context, changeID, userID uuid.UUID, scheduledDate time.Time) (*dto.ChangeRequestResponse, error)
	StartExecution(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)
	CompleteExecution(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)
	FailExecution(ctx context.Context, changeID, userID uuid.UUID, reason string) (*dto.ChangeRequestResponse, error)
	Rollback(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)
}

// changeServiceImpl is the implementation of ChangeService
type changeServiceImpl struct {
	changeRepo repository.ChangeRepository
	activity   *activityRecorder
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewChangeService creates a new instance of ChangeService
func NewChangeService(changeRepo repository.ChangeRepository, activityRepo repository.ActivityRepository, m *metrics.Metrics, logger *zap.Logger) ChangeService {
	return &changeServiceImpl{
		changeRepo: changeRepo,
		activity:   newActivityRecorder(activityRepo, logger),
		metrics:    m,
		logger:     logger,
	}
}

// CreateChange creates a change request in DRAFT
func (s *changeServiceImpl) CreateChange(ctx context.Context, userID uuid.UUID, req *dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	change := &domain.ChangeRequest{
		Title:            req.Title,
		Description:      req.Description,
		ChangeType:       req.ChangeType,
		Status:           domain.ChangeStatusDraft,
		Priority:         req.Priority,
		RiskLevel:        req.RiskLevel,
		ImpactAssessment: req.ImpactAssessment,
		RollbackPlan:     req.RollbackPlan,
		AffectedSystems:  req.AffectedSystems,
		RequestingUserID: userID,
	}

	if err := s.changeRepo.Create(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "created", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// GetChange retrieves a change request by ID
func (s *changeServiceImpl) GetChange(ctx context.Context, changeID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	return dto.ToChangeRequestResponse(change), nil
}

// ListChanges retrieves all change requests, optionally filtered by status
func (s *changeServiceImpl) ListChanges(ctx context.Context, status *domain.ChangeStatus) ([]*dto.ChangeRequestResponse, error) {
	changes, err := s.changeRepo.FindAll(ctx, status)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch change requests", err.Error())
	}

	responses := make([]*dto.ChangeRequestResponse, 0, len(changes))
	for _, c := range changes {
		if c == nil {
			continue
		}
		responses = append(responses, dto.ToChangeRequestResponse(c))
	}
	return responses, nil
}

// Submit moves a draft change request into the review queue
func (s *changeServiceImpl) Submit(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if change.RequestingUserID != userID {
		return nil, response.NewForbiddenError("Only the requester can submit a change request", "")
	}
	if err := checkChangeTransition(change, domain.ChangeStatusPending); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusPending
	change.SubmittedDate = &now

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to submit change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "submitted", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// BeginReview claims a pending change request for review
func (s *changeServiceImpl) BeginReview(ctx context.Context, changeID, reviewerID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusInReview); err != nil {
		return nil, err
	}

	change.Status = domain.ChangeStatusInReview
	change.ReviewedByUserID = &reviewerID

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, reviewerID, "review_started", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// Approve approves a change request under review
func (s *changeServiceImpl) Approve(ctx context.Context, changeID, approverID uuid.UUID, notes string) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusApproved
	change.ReviewedDate = &now
	change.ApprovalDate = &now
	change.ApprovedByUserID = &approverID
	change.ApprovalNotes = notes

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to approve change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, approverID, "approved", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// Deny rejects a change request under review with a mandatory reason
func (s *changeServiceImpl) Deny(ctx context.Context, changeID, reviewerID uuid.UUID, reason string) (*dto.ChangeRequestResponse, error) {
	if reason == "" {
		return nil, response.NewValidationError("Denial reason is required", "")
	}

	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusDenied); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusDenied
	change.ReviewedDate = &now
	change.ReviewedByUserID = &reviewerID
	change.DenialReason = reason

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to deny change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, reviewerID, "denied",
		map[string]string{"reason": reason})
	return dto.ToChangeRequestResponse(change), nil
}

// Cancel withdraws a change request before execution starts
func (s *changeServiceImpl) Cancel(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if change.RequestingUserID != userID {
		return nil, response.NewForbiddenError("Only the requester can cancel a change request", "")
	}
	if err := checkChangeTransition(change, domain.ChangeStatusCancelled); err != nil {
		return nil, err
	}

	change.Status = domain.ChangeStatusCancelled
	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to cancel change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "cancelled", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// Schedule sets the planned execution date for an approved change
func (s *changeServiceImpl) Schedule(ctx context.Context, changeID, userID uuid.UUID, scheduledDate time.Time) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusScheduled); err != nil {
		return nil, err
	}

	change.Status = domain.ChangeStatusScheduled
	change.ScheduledDate = &scheduledDate

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to schedule change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "scheduled", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// StartExecution marks a scheduled change as executing
func (s *changeServiceImpl) StartExecution(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusExecuting); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusExecuting
	change.ExecutionStarted = &now

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to start execution", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementChangeExecuted()
	}
	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "execution_started", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// CompleteExecution records a successful execution outcome
func (s *changeServiceImpl) CompleteExecution(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusCompleted); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusCompleted
	change.DecisionDate = &now

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to complete change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "completed", nil)
	return dto.ToChangeRequestResponse(change), nil
}

// FailExecution records a failed execution outcome with a mandatory reason
func (s *changeServiceImpl) FailExecution(ctx context.Context, changeID, userID uuid.UUID, reason string) (*dto.ChangeRequestResponse, error) {
	if reason == "" {
		return nil, response.NewValidationError("Failure reason is required", "")
	}

	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusFailed); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusFailed
	change.DecisionDate = &now
	change.FailureReason = reason

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record execution failure", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementChangeFailed()
	}
	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "execution_failed",
		map[string]string{"reason": reason})
	return dto.ToChangeRequestResponse(change), nil
}

// Rollback marks a failed change as rolled back per its rollback plan
func (s *changeServiceImpl) Rollback(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error) {
	change, err := s.findChange(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if err := checkChangeTransition(change, domain.ChangeStatusRolledBack); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = domain.ChangeStatusRolledBack
	change.RolledBackDate = &now

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to roll back change request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityChange, change.ID, userID, "rolled_back", nil)
	return dto.ToChangeRequestResponse(change), nil
}

func (s *changeServiceImpl) findChange(ctx context.Context, changeID uuid.UUID) (*domain.ChangeRequest, error) {
	change, err := s.changeRepo.FindByID(ctx, changeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Change request not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch change request", err.Error())
	}
	return change, nil
}

func checkChangeTransition(change *domain.ChangeRequest, target domain.ChangeStatus) error {
	if !change.Status.CanTransitionTo(target) {
		return response.NewIllegalTransitionError(string(change.Status), string(target))
	}
	return nil
}
