package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
)

func newChangeService(changeRepo *MockChangeRepository) ChangeService {
	logger, _ := zap.NewDevelopment()
	return NewChangeService(changeRepo, &MockActivityRepository{}, nil, logger)
}

func validCreateChange() *dto.CreateChangeRequestRequest {
	return &dto.CreateChangeRequestRequest{
		Title:            "Upgrade payment gateway TLS",
		Description:      "Rotate certificates and enforce TLS 1.3 on the gateway",
		ChangeType:       domain.ChangeTypeNormal,
		Priority:         domain.PriorityHigh,
		RiskLevel:        domain.RiskLevelMedium,
		ImpactAssessment: "Brief connection resets expected during the cutover",
		RollbackPlan:     "Re-deploy the previous certificate bundle and restart",
		AffectedSystems:  "payment-gateway, checkout, billing",
	}
}

func changeInStatus(status domain.ChangeStatus, requesterID uuid.UUID) *MockChangeRepository {
	return &MockChangeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
			return &domain.ChangeRequest{
				BaseModel:        domain.BaseModel{ID: id},
				Title:            "Upgrade payment gateway TLS",
				Status:           status,
				RequestingUserID: requesterID,
				AffectedSystems:  "payment-gateway",
			}, nil
		},
	}
}

func TestChangeService_CreateChange(t *testing.T) {
	userID := uuid.New()
	mockRepo := &MockChangeRepository{
		CreateFunc: func(ctx context.Context, change *domain.ChangeRequest) error {
			change.ID = uuid.New()
			return nil
		},
	}

	service := newChangeService(mockRepo)
	resp, err := service.CreateChange(context.Background(), userID, validCreateChange())
	if err != nil {
		t.Fatalf("CreateChange failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusDraft {
		t.Errorf("Expected status DRAFT, got %s", resp.Status)
	}
	if resp.RequestingUserID != userID {
		t.Errorf("Expected requester %s, got %s", userID, resp.RequestingUserID)
	}
}

func TestChangeService_CreateChange_Validation(t *testing.T) {
	service := newChangeService(&MockChangeRepository{})

	req := validCreateChange()
	req.ChangeType = "HOTFIX"
	_, err := service.CreateChange(context.Background(), uuid.New(), req)
	if code := appErrorCode(t, err); code != response.ErrCodeValidation {
		t.Errorf("Expected %s, got %s", response.ErrCodeValidation, code)
	}

	req = validCreateChange()
	req.RiskLevel = "EXTREME"
	_, err = service.CreateChange(context.Background(), uuid.New(), req)
	if code := appErrorCode(t, err); code != response.ErrCodeValidation {
		t.Errorf("Expected %s, got %s", response.ErrCodeValidation, code)
	}
}

func TestChangeService_Submit_OnlyRequester(t *testing.T) {
	requesterID := uuid.New()
	service := newChangeService(changeInStatus(domain.ChangeStatusDraft, requesterID))

	_, err := service.Submit(context.Background(), uuid.New(), uuid.New())
	if code := appErrorCode(t, err); code != response.ErrCodeForbidden {
		t.Errorf("Expected %s, got %s", response.ErrCodeForbidden, code)
	}

	resp, err := service.Submit(context.Background(), uuid.New(), requesterID)
	if err != nil {
		t.Fatalf("Submit by requester failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusPending {
		t.Errorf("Expected status PENDING, got %s", resp.Status)
	}
	if resp.SubmittedDate == nil {
		t.Error("Expected submitted date to be stamped")
	}
}

func TestChangeService_Schedule(t *testing.T) {
	requesterID := uuid.New()
	service := newChangeService(changeInStatus(domain.ChangeStatusApproved, requesterID))

	window := time.Date(2026, 9, 12, 2, 0, 0, 0, time.UTC)
	resp, err := service.Schedule(context.Background(), uuid.New(), requesterID, window)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusScheduled {
		t.Errorf("Expected status SCHEDULED, got %s", resp.Status)
	}
	if resp.ScheduledDate == nil || !resp.ScheduledDate.Equal(window) {
		t.Error("Expected the execution window to be recorded")
	}
}

func TestChangeService_Schedule_NotApproved(t *testing.T) {
	service := newChangeService(changeInStatus(domain.ChangeStatusInReview, uuid.New()))
	_, err := service.Schedule(context.Background(), uuid.New(), uuid.New(), time.Now())
	if code := appErrorCode(t, err); code != response.ErrCodeIllegalTransition {
		t.Errorf("Expected %s, got %s", response.ErrCodeIllegalTransition, code)
	}
}

func TestChangeService_StartExecution(t *testing.T) {
	service := newChangeService(changeInStatus(domain.ChangeStatusScheduled, uuid.New()))
	resp, err := service.StartExecution(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("StartExecution failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusExecuting {
		t.Errorf("Expected status EXECUTING, got %s", resp.Status)
	}
	if resp.ExecutionStarted == nil {
		t.Error("Expected execution start to be stamped")
	}
}

func TestChangeService_CompleteExecution(t *testing.T) {
	service := newChangeService(changeInStatus(domain.ChangeStatusExecuting, uuid.New()))
	resp, err := service.CompleteExecution(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("CompleteExecution failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusCompleted {
		t.Errorf("Expected status COMPLETED, got %s", resp.Status)
	}
	if resp.DecisionDate == nil {
		t.Error("Expected decision date to be stamped on completion")
	}
}

func TestChangeService_FailExecution(t *testing.T) {
	service := newChangeService(changeInStatus(domain.ChangeStatusExecuting, uuid.New()))

	_, err := service.FailExecution(context.Background(), uuid.New(), uuid.New(), "")
	if code := appErrorCode(t, err); code != response.ErrCodeValidation {
		t.Errorf("Expected %s for missing reason, got %s", response.ErrCodeValidation, code)
	}

	resp, err := service.FailExecution(context.Background(), uuid.New(), uuid.New(), "Healthchecks failed")
	if err != nil {
		t.Fatalf("FailExecution failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusFailed {
		t.Errorf("Expected status FAILED, got %s", resp.Status)
	}
	if resp.FailureReason != "Healthchecks failed" {
		t.Errorf("Expected failure reason to be kept, got %q", resp.FailureReason)
	}
	if resp.DecisionDate == nil {
		t.Error("Expected decision date to be stamped on failure")
	}
}

func TestChangeService_Rollback(t *testing.T) {
	decided := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	mockRepo := &MockChangeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
			return &domain.ChangeRequest{
				BaseModel:    domain.BaseModel{ID: id},
				Status:       domain.ChangeStatusFailed,
				DecisionDate: &decided,
			}, nil
		},
	}

	service := newChangeService(mockRepo)
	resp, err := service.Rollback(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusRolledBack {
		t.Errorf("Expected status ROLLED_BACK, got %s", resp.Status)
	}
	if resp.RolledBackDate == nil {
		t.Error("Expected rollback date to be stamped")
	}
	// The failure decision stays put so the trend series keeps its bucket.
	if resp.DecisionDate == nil || !resp.DecisionDate.Equal(decided) {
		t.Error("Expected the failure decision date to be preserved")
	}
}

func TestChangeService_Rollback_OnlyFromFailed(t *testing.T) {
	for _, status := range []domain.ChangeStatus{
		domain.ChangeStatusCompleted,
		domain.ChangeStatusExecuting,
		domain.ChangeStatusRolledBack,
	} {
		t.Run(string(status), func(t *testing.T) {
			service := newChangeService(changeInStatus(status, uuid.New()))
			_, err := service.Rollback(context.Background(), uuid.New(), uuid.New())
			if code := appErrorCode(t, err); code != response.ErrCodeIllegalTransition {
				t.Errorf("Expected %s, got %s", response.ErrCodeIllegalTransition, code)
			}
		})
	}
}

func TestChangeService_Cancel_OnlyBeforeExecution(t *testing.T) {
	requesterID := uuid.New()

	service := newChangeService(changeInStatus(domain.ChangeStatusScheduled, requesterID))
	resp, err := service.Cancel(context.Background(), uuid.New(), requesterID)
	if err != nil {
		t.Fatalf("Cancel before execution failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusCancelled {
		t.Errorf("Expected status CANCELLED, got %s", resp.Status)
	}

	service = newChangeService(changeInStatus(domain.ChangeStatusExecuting, requesterID))
	_, err = service.Cancel(context.Background(), uuid.New(), requesterID)
	if code := appErrorCode(t, err); code != response.ErrCodeIllegalTransition {
		t.Errorf("Expected %s once executing, got %s", response.ErrCodeIllegalTransition, code)
	}
}

func TestChangeService_Approve(t *testing.T) {
	approverID := uuid.New()
	service := newChangeService(changeInStatus(domain.ChangeStatusInReview, uuid.New()))

	resp, err := service.Approve(context.Background(), uuid.New(), approverID, "go ahead")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if resp.Status != domain.ChangeStatusApproved {
		t.Errorf("Expected status APPROVED, got %s", resp.Status)
	}
	if resp.ApprovedByUserID == nil || *resp.ApprovedByUserID != approverID {
		t.Error("Expected approver to be recorded")
	}
	if resp.ApprovalDate == nil {
		t.Error("Expected approval date to be stamped")
	}
}
