package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

func setupRequestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ProjectRequest{}, &domain.Project{}, &domain.Task{}))
	return db
}

func approvedRequest(t *testing.T, db *gorm.DB) *domain.ProjectRequest {
	t.Helper()
	request := &domain.ProjectRequest{
		Title:                 "Orders DB migration",
		Description:           "Migrate the orders database to the new postgres cluster",
		BusinessJustification: "Current cluster reaches end of support this quarter",
		Status:                domain.RequestStatusApproved,
		Priority:              domain.PriorityHigh,
		RequestingUserID:      uuid.New(),
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func projectFor(request *domain.ProjectRequest, userID uuid.UUID) *domain.Project {
	return &domain.Project{
		Name:                   request.Title,
		Description:            request.Description,
		Status:                 domain.ProjectStatusPlanning,
		Priority:               request.Priority,
		CreatedByUserID:        userID,
		ConvertedFromRequestID: &request.ID,
	}
}

func TestRequestRepository_Convert(t *testing.T) {
	db := setupRequestDB(t)
	repo := NewRequestRepository(db)
	request := approvedRequest(t, db)

	project := projectFor(request, uuid.New())
	require.NoError(t, repo.Convert(context.Background(), request.ID, project))
	require.NotEqual(t, uuid.Nil, project.ID)

	var storedRequest domain.ProjectRequest
	require.NoError(t, db.First(&storedRequest, "id = ?", request.ID).Error)
	assert.Equal(t, domain.RequestStatusConverted, storedRequest.Status)
	require.NotNil(t, storedRequest.ConvertedToProjectID)
	assert.Equal(t, project.ID, *storedRequest.ConvertedToProjectID)

	var storedProject domain.Project
	require.NoError(t, db.First(&storedProject, "id = ?", project.ID).Error)
	assert.Equal(t, domain.ProjectStatusPlanning, storedProject.Status)
	require.NotNil(t, storedProject.ConvertedFromRequestID)
	assert.Equal(t, request.ID, *storedProject.ConvertedFromRequestID)
}

// A second convert finds the row no longer APPROVED, so the conditional
// update matches nothing and the transaction rolls back without creating a
// second project.
func TestRequestRepository_Convert_Idempotent(t *testing.T) {
	db := setupRequestDB(t)
	repo := NewRequestRepository(db)
	request := approvedRequest(t, db)

	first := projectFor(request, uuid.New())
	require.NoError(t, repo.Convert(context.Background(), request.ID, first))

	second := projectFor(request, uuid.New())
	err := repo.Convert(context.Background(), request.ID, second)
	require.ErrorIs(t, err, ErrNotConverted)

	var projectCount int64
	require.NoError(t, db.Model(&domain.Project{}).Count(&projectCount).Error)
	assert.Equal(t, int64(1), projectCount, "only the first convert creates a project")

	var storedRequest domain.ProjectRequest
	require.NoError(t, db.First(&storedRequest, "id = ?", request.ID).Error)
	require.NotNil(t, storedRequest.ConvertedToProjectID)
	assert.Equal(t, first.ID, *storedRequest.ConvertedToProjectID, "back-pointer keeps the first project")
}

func TestRequestRepository_Convert_RequiresApproved(t *testing.T) {
	db := setupRequestDB(t)
	repo := NewRequestRepository(db)

	request := &domain.ProjectRequest{
		Title:                 "Orders DB migration",
		Description:           "Migrate the orders database to the new postgres cluster",
		BusinessJustification: "Current cluster reaches end of support this quarter",
		Status:                domain.RequestStatusInReview,
		Priority:              domain.PriorityHigh,
		RequestingUserID:      uuid.New(),
	}
	require.NoError(t, db.Create(request).Error)

	err := repo.Convert(context.Background(), request.ID, projectFor(request, uuid.New()))
	require.ErrorIs(t, err, ErrNotConverted)

	var projectCount int64
	require.NoError(t, db.Model(&domain.Project{}).Count(&projectCount).Error)
	assert.Zero(t, projectCount)
}

func TestRequestRepository_FindAll_StatusFilter(t *testing.T) {
	db := setupRequestDB(t)
	repo := NewRequestRepository(db)

	for _, status := range []domain.RequestStatus{
		domain.RequestStatusDraft,
		domain.RequestStatusPending,
		domain.RequestStatusPending,
		domain.RequestStatusApproved,
	} {
		request := &domain.ProjectRequest{
			Title:                 "Request in status " + string(status),
			Description:           "Migrate the orders database to the new postgres cluster",
			BusinessJustification: "Current cluster reaches end of support this quarter",
			Status:                status,
			Priority:              domain.PriorityLow,
			RequestingUserID:      uuid.New(),
		}
		require.NoError(t, db.Create(request).Error)
	}

	all, err := repo.FindAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	pending := domain.RequestStatusPending
	filtered, err := repo.FindAll(context.Background(), &pending)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, request := range filtered {
		assert.Equal(t, domain.RequestStatusPending, request.Status)
	}
}
