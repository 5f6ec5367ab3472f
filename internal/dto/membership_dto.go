// FILE: internal/dto/membership_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Join flow DTOs ---

type ApplyRequest struct {
	SpaceName  string `json:"space_name" validate:"required,min=2"`
	SpaceEmail string `json:"space_email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Statement  string `json:"statement"`
	// Annual fee as a decimal string, e.g. "20.00". Optional; defaults apply.
	Fee string `json:"fee" validate:"omitempty,numeric"`
}

type ApplyResponse struct {
	MembershipId uuid.UUID `json:"membership_id"`
	Status       string    `json:"status"`
}

type RedirectFlowResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type CompleteFlowResponse struct {
	MandateId     string `json:"mandate_id"`
	MandateStatus string `json:"mandate_status"`
}

// --- Status / decision DTOs ---

type MembershipStatusResponse struct {
	Status string `json:"status"`
}

type DecisionResponse struct {
	MembershipId uuid.UUID `json:"membership_id"`
	Status       string    `json:"status"`
	// False when the membership had already been decided.
	Applied bool `json:"applied"`
	// Rejections only: whether the active mandate was cancelled at the
	// gateway. Nil when there was no mandate to cancel.
	MandateCancelled *bool `json:"mandate_cancelled,omitempty"`
}

type MembershipResponse struct {
	Id                   uuid.UUID  `json:"id"`
	Status               string     `json:"status"`
	Fee                  string     `json:"fee"`
	Statement            string     `json:"statement"`
	ApprovalRequestCount int        `json:"approval_request_count"`
	CreatedAt            time.Time  `json:"created_at"`
	StartedAt            *time.Time `json:"started_at,omitempty"`
	ExpiredAt            *time.Time `json:"expired_at,omitempty"`
	Active               bool       `json:"active"`
}

// --- Webhook DTOs ---

// Internal bus message emitted when a payment lands, consumed by the
// notification worker.
type PaymentReceivedMessage struct {
	MembershipId uuid.UUID `json:"membership_id"`
	PaymentId    string    `json:"payment_id"`
	PayoutDate   time.Time `json:"payout_date"`
}
