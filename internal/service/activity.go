package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/repository"
)

// activityRecorder appends transition rows to the audit log. Recording is
// best-effort: a failed write is logged but never fails the transition that
// already committed.
type activityRecorder struct {
	activityRepo repository.ActivityRepository
	logger       *zap.Logger
}

func newActivityRecorder(activityRepo repository.ActivityRepository, logger *zap.Logger) *activityRecorder {
	return &activityRecorder{activityRepo: activityRepo, logger: logger}
}

func (a *activityRecorder) record(ctx context.Context, entityType domain.ActivityEntityType, entityID, actorID uuid.UUID, action string, details map[string]string) {
	if a.activityRepo == nil {
		return
	}

	var payload datatypes.JSON
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	activity := &domain.Activity{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Details:    payload,
	}
	if err := a.activityRepo.Create(ctx, activity); err != nil {
		a.logger.Warn("Failed to record activity",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}
