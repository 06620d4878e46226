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

// RequestService defines the interface for the project request lifecycle
type RequestService interface {
	CreateRequest(ctx context.Context, req *dto.CreateProjectRequestRequest, userID uuid.UUID) (*dto.ProjectRequestResponse, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*dto.ProjectRequestResponse, error)
	ListRequests(ctx context.Context, status *domain.RequestStatus) ([]*dto.ProjectRequestResponse, error)
	Submit(ctx context.Context, requestID, userID uuid.UUID) (*dto.ProjectRequestResponse, error)
	BeginReview(ctx context.Context, requestID, reviewerID uuid.UUID) (*dto.ProjectRequestResponse, error)
	Approve(ctx context.Context, requestID, reviewerID uuid.UUID, notes string) (*dto.ProjectRequestResponse, error)
	Deny(ctx context.Context, requestID, reviewerID uuid.UUID, reason string) (*dto.ProjectRequestResponse, error)
	Cancel(ctx context.Context, requestID, userID uuid.UUID, reason string) (*dto.ProjectRequestResponse, error)
	Convert(ctx context.Context, requestID, userID uuid.UUID) (*dto.ConvertResponse, error)
}

// requestServiceImpl is the implementation of RequestService
type requestServiceImpl struct {
	requestRepo repository.RequestRepository
	activity    *activityRecorder
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewRequestService creates a new instance of RequestService
func NewRequestService(requestRepo repository.RequestRepository, activityRepo repository.ActivityRepository, m *metrics.Metrics, logger *zap.Logger) RequestService {
	return &requestServiceImpl{
		requestRepo: requestRepo,
		activity:    newActivityRecorder(activityRepo, logger),
		metrics:     m,
		logger:      logger,
	}
}

// CreateRequest creates a new project request in DRAFT status
func (s *requestServiceImpl) CreateRequest(ctx context.Context, req *dto.CreateProjectRequestRequest, userID uuid.UUID) (*dto.ProjectRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request := &domain.ProjectRequest{
		Title:                 req.Title,
		Description:           req.Description,
		BusinessJustification: req.BusinessJustification,
		Status:                domain.RequestStatusDraft,
		Priority:              req.Priority,
		RequestingUserID:      userID,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create request", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementRequestCreated()
	}
	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, userID, "created", nil)

	return dto.ToProjectRequestResponse(request), nil
}

// GetRequest retrieves a project request by ID
func (s *requestServiceImpl) GetRequest(ctx context.Context, requestID uuid.UUID) (*dto.ProjectRequestResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectRequestResponse(request), nil
}

// ListRequests retrieves all project requests, optionally filtered by status
func (s *requestServiceImpl) ListRequests(ctx context.Context, status *domain.RequestStatus) ([]*dto.ProjectRequestResponse, error) {
	requests, err := s.requestRepo.FindAll(ctx, status)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch requests", err.Error())
	}

	responses := make([]*dto.ProjectRequestResponse, 0, len(requests))
	for _, r := range requests {
		if r == nil {
			continue
		}
		responses = append(responses, dto.ToProjectRequestResponse(r))
	}
	return responses, nil
}

// Submit moves a draft request into the review queue and stamps the
// submission date
func (s *requestServiceImpl) Submit(ctx context.Context, requestID, userID uuid.UUID) (*dto.ProjectRequestResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := checkRequestTransition(request.Status, domain.RequestStatusPending); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = domain.RequestStatusPending
	request.SubmittedDate = &now

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to submit request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, userID, "submitted", nil)
	return dto.ToProjectRequestResponse(request), nil
}

// BeginReview moves a pending request into review and records the reviewer
func (s *requestServiceImpl) BeginReview(ctx context.Context, requestID, reviewerID uuid.UUID) (*dto.ProjectRequestResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := checkRequestTransition(request.Status, domain.RequestStatusInReview); err != nil {
		return nil, err
	}

	request.Status = domain.RequestStatusInReview
	request.ReviewedByUserID = &reviewerID

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to begin review", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, reviewerID, "review_started", nil)
	return dto.ToProjectRequestResponse(request), nil
}

// Approve approves a request under review
func (s *requestServiceImpl) Approve(ctx context.Context, requestID, reviewerID uuid.UUID, notes string) (*dto.ProjectRequestResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := checkRequestTransition(request.Status, domain.RequestStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = domain.RequestStatusApproved
	request.ApprovalDate = &now
	request.ApprovedByUserID = &reviewerID
	request.ApprovalNotes = notes

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to approve request", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementRequestApproved()
	}
	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, reviewerID, "approved", nil)
	return dto.ToProjectRequestResponse(request), nil
}

// Deny denies a request under review. Terminal.
func (s *requestServiceImpl) Deny(ctx context.Context, requestID, reviewerID uuid.UUID, reason string) (*dto.ProjectRequestResponse, error) {
	if reason == "" {
		return nil, response.NewValidationError("Denial reason is required", "")
	}

	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := checkRequestTransition(request.Status, domain.RequestStatusDenied); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = domain.RequestStatusDenied
	request.ReviewedDate = &now
	request.ReviewedByUserID = &reviewerID
	request.DenialReason = reason

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to deny request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, reviewerID, "denied", map[string]string{"reason": reason})
	return dto.ToProjectRequestResponse(request), nil
}

// Cancel cancels a request before a terminal decision. Only the requesting
// user may cancel.
func (s *requestServiceImpl) Cancel(ctx context.Context, requestID, userID uuid.UUID, reason string) (*dto.ProjectRequestResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RequestingUserID != userID {
		return nil, response.NewForbiddenError("Only the requesting user can cancel a request", "")
	}

	if err := checkRequestTransition(request.Status, domain.RequestStatusCancelled); err != nil {
		return nil, err
	}

	request.Status = domain.RequestStatusCancelled
	request.CancellationReason = reason

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to cancel request", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, userID, "cancelled", map[string]string{"reason": reason})
	return dto.ToProjectRequestResponse(request), nil
}

// Convert materializes an approved request into a project in PLANNING
// status. The repository performs the conditional update, so converting an
// already-converted request fails with ALREADY_CONVERTED and never creates
// a second project, regardless of delivery retries.
func (s *requestServiceImpl) Convert(ctx context.Context, requestID, userID uuid.UUID) (*dto.ConvertResponse, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status == domain.RequestStatusConverted {
		return nil, response.NewAppError(response.ErrCodeAlreadyConverted, "Request has already been converted", "")
	}
	if err := checkRequestTransition(request.Status, domain.RequestStatusConverted); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:                   request.Title,
		Description:            request.Description,
		Status:                 domain.ProjectStatusPlanning,
		Priority:               request.Priority,
		CreatedByUserID:        userID,
		ConvertedFromRequestID: &request.ID,
	}

	if err := s.requestRepo.Convert(ctx, request.ID, project); err != nil {
		if errors.Is(err, repository.ErrNotConverted) {
			// A concurrent convert won the conditional update.
			return nil, response.NewAppError(response.ErrCodeAlreadyConverted, "Request has already been converted", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to convert request", err.Error())
	}

	request.Status = domain.RequestStatusConverted
	request.ConvertedToProjectID = &project.ID

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	s.activity.record(ctx, domain.ActivityEntityRequest, request.ID, userID, "converted",
		map[string]string{"project_id": project.ID.String()})

	return &dto.ConvertResponse{
		Request: dto.ToProjectRequestResponse(request),
		Project: dto.ToProjectResponse(project),
	}, nil
}

// findRequest fetches a request and maps the not-found case
func (s *requestServiceImpl) findRequest(ctx context.Context, requestID uuid.UUID) (*domain.ProjectRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Request not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch request", err.Error())
	}
	return request, nil
}

// checkRequestTransition validates a request status transition
func checkRequestTransition(current, target domain.RequestStatus) error {
	if !current.CanTransitionTo(target) {
		return response.NewIllegalTransitionError(string(current), string(target))
	}
	return nil
}
