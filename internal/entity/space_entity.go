// FILE: internal/entity/space_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Space struct {
	Id        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
