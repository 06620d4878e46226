package dto

import (
	"strings"
	"testing"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/response"
)

func fieldErrorFor(t *testing.T, err error, field string) string {
	t.Helper()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != response.ErrCodeValidation {
		t.Fatalf("Expected %s, got %s", response.ErrCodeValidation, appErr.Code)
	}
	msg, ok := appErr.Fields[field]
	if !ok {
		t.Fatalf("Expected a message for field %q, got %v", field, appErr.Fields)
	}
	return msg
}

func TestCreateProjectRequestRequest_Validate(t *testing.T) {
	valid := CreateProjectRequestRequest{
		Title:                 "Orders DB migration",
		Description:           strings.Repeat("d", LongTextMinLen),
		BusinessJustification: strings.Repeat("j", LongTextMinLen),
		Priority:              domain.PriorityHigh,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}

	short := valid
	short.Title = strings.Repeat("t", TitleMinLen-1)
	fieldErrorFor(t, short.Validate(), "title")

	long := valid
	long.Title = strings.Repeat("t", TitleMaxLen+1)
	fieldErrorFor(t, long.Validate(), "title")

	badPriority := valid
	badPriority.Priority = "SEVERE"
	fieldErrorFor(t, badPriority.Validate(), "priority")
}

// Length limits count runes, not bytes, so multibyte text is not penalized.
func TestValidate_RuneCounting(t *testing.T) {
	req := CreateProjectRequestRequest{
		Title:                 strings.Repeat("é", TitleMinLen),
		Description:           strings.Repeat("é", LongTextMinLen),
		BusinessJustification: strings.Repeat("é", LongTextMinLen),
		Priority:              domain.PriorityLow,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Expected multibyte text at the minimum length to pass, got %v", err)
	}
}

func TestCreateChangeRequestRequest_Validate(t *testing.T) {
	valid := CreateChangeRequestRequest{
		Title:            "Upgrade payment gateway TLS",
		Description:      strings.Repeat("d", LongTextMinLen),
		ChangeType:       domain.ChangeTypeNormal,
		Priority:         domain.PriorityHigh,
		RiskLevel:        domain.RiskLevelMedium,
		ImpactAssessment: strings.Repeat("i", LongTextMinLen),
		RollbackPlan:     strings.Repeat("r", LongTextMinLen),
		AffectedSystems:  "payment-gateway, checkout",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}

	badType := valid
	badType.ChangeType = "HOTFIX"
	fieldErrorFor(t, badType.Validate(), "changeType")

	badRisk := valid
	badRisk.RiskLevel = "EXTREME"
	fieldErrorFor(t, badRisk.Validate(), "riskLevel")

	badSystems := valid
	badSystems.AffectedSystems = "ab"
	fieldErrorFor(t, badSystems.Validate(), "affectedSystems")

	// Several broken fields are reported together.
	broken := valid
	broken.Title = "x"
	broken.RiskLevel = "EXTREME"
	err := broken.Validate()
	appErr := err.(*response.AppError)
	if len(appErr.Fields) != 2 {
		t.Errorf("Expected 2 field errors, got %v", appErr.Fields)
	}
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	valid := CreateTaskRequest{
		Title:       "Write migration scripts",
		Description: strings.Repeat("d", LongTextMinLen),
		Priority:    domain.PriorityMedium,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}

	negative := valid
	hours := -0.5
	negative.EstimatedHours = &hours
	fieldErrorFor(t, negative.Validate(), "estimatedHours")
}

func TestBulkCreateTasksRequest_Validate(t *testing.T) {
	good := CreateTaskRequest{
		Title:       "Write migration scripts",
		Description: strings.Repeat("d", LongTextMinLen),
		Priority:    domain.PriorityMedium,
	}
	bad := good
	bad.Priority = "SEVERE"

	req := BulkCreateTasksRequest{Tasks: []CreateTaskRequest{good, bad}}
	fieldErrorFor(t, req.Validate(), "priority")

	req = BulkCreateTasksRequest{Tasks: []CreateTaskRequest{good, good}}
	if err := req.Validate(); err != nil {
		t.Fatalf("Expected valid batch, got %v", err)
	}
}

func TestUpdateProjectRequest_Validate(t *testing.T) {
	empty := UpdateProjectRequest{}
	if err := empty.Validate(); err != nil {
		t.Fatalf("Expected empty update to pass, got %v", err)
	}

	name := "ok"
	short := UpdateProjectRequest{Name: &name}
	fieldErrorFor(t, short.Validate(), "name")

	priority := domain.Priority("SEVERE")
	bad := UpdateProjectRequest{Priority: &priority}
	fieldErrorFor(t, bad.Validate(), "priority")
}
