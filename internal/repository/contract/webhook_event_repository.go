package contract

import (
	"context"

	"gorm.io/datatypes"
)

type WebhookEventRepository interface {
	// Seen reports whether the event id has already been recorded.
	Seen(ctx context.Context, id string) (bool, error)

	// Record stores a processed event. Returns false when the event id was
	// already recorded (the gateway redelivers on any non-2xx response).
	Record(ctx context.Context, id, resourceType, action string, payload datatypes.JSON) (bool, error)
}
