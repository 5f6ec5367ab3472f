// FILE: internal/service/membership_service.go
package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"spacefed-be/internal/config"
	"spacefed-be/internal/dto"
	"spacefed-be/internal/entity"
	"spacefed-be/internal/pkg/gocardless"
	"spacefed-be/internal/pkg/logger"
	"spacefed-be/internal/pkg/mailer"
	"spacefed-be/internal/repository/memory"
	"spacefed-be/internal/repository/specification"
	"spacefed-be/internal/repository/unitofwork"
	"spacefed-be/pkg/events"
	pktNats "spacefed-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const membershipYear = 365 * 24 * time.Hour

var defaultFee = decimal.NewFromFloat(20.00)

type IMembershipService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*entity.SpaceMembership, error)
	GetMembership(ctx context.Context, id uuid.UUID) (*entity.SpaceMembership, error)

	// Redirect flow
	GetRedirectFlowURL(ctx context.Context, membershipId uuid.UUID) (string, error)
	CompleteRedirectFlow(ctx context.Context, membershipId uuid.UUID, flowID string) (*entity.GocardlessMandate, error)

	// Notifications
	SendApprovalRequest(ctx context.Context, membershipId uuid.UUID)
	SendApplicationDecision(ctx context.Context, membership *entity.SpaceMembership) bool

	// Decisions
	Approve(ctx context.Context, membershipId uuid.UUID) (bool, error)
	// Reject reports the transition result and, separately, the outcome of
	// cancelling the current mandate (nil when there was none to cancel).
	Reject(ctx context.Context, membershipId uuid.UUID) (applied bool, mandateCancelled *bool, err error)
	DecideBySessionToken(ctx context.Context, token, action string) (*dto.DecisionResponse, error)

	// Payments
	RequestPayment(ctx context.Context, membershipId uuid.UUID) error
	HandlePaymentReceived(ctx context.Context, membership *entity.SpaceMembership, payment *entity.GocardlessPayment) error
	HandleMandateUpdated(ctx context.Context, resource *gocardless.Mandate) error

	// Lookups
	Mandate(ctx context.Context, membershipId uuid.UUID) (*entity.GocardlessMandate, error)
	HasActiveMandate(ctx context.Context, membershipId uuid.UUID) (bool, error)
	// MembershipStatus returns nil when the space has no membership record.
	MembershipStatus(ctx context.Context, spaceId uuid.UUID) (*entity.MembershipStatus, error)
}

type membershipService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        gocardless.Client
	emailService   mailer.IEmailService
	statusCache    *memory.StatusCache
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
	busPublisher   IPublisherService
	baseURL        string
	boardEmail     string
	currency       string
}

func NewMembershipService(
	uowFactory unitofwork.RepositoryFactory,
	gateway gocardless.Client,
	emailService mailer.IEmailService,
	statusCache *memory.StatusCache,
	sysLogger logger.ILogger,
	eventPublisher *pktNats.Publisher,
	busPublisher IPublisherService,
	cfg *config.Config,
) IMembershipService {
	return &membershipService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		emailService:   emailService,
		statusCache:    statusCache,
		logger:         sysLogger,
		eventPublisher: eventPublisher,
		busPublisher:   busPublisher,
		baseURL:        cfg.App.BaseURL,
		boardEmail:     cfg.Mail.BoardEmail,
		currency:       cfg.Gocardless.Currency,
	}
}

func (s *membershipService) Apply(ctx context.Context, req *dto.ApplyRequest) (*entity.SpaceMembership, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fee := defaultFee
	if req.Fee != "" {
		parsed, err := decimal.NewFromString(req.Fee)
		if err != nil {
			return nil, fmt.Errorf("invalid fee: %w", err)
		}
		fee = parsed
	}

	space, err := uow.SpaceRepository().FindOne(ctx, specification.Filter("email", req.SpaceEmail))
	if err != nil {
		return nil, err
	}
	if space == nil {
		space = &entity.Space{
			Id:    uuid.New(),
			Name:  req.SpaceName,
			Email: req.SpaceEmail,
		}
		if err := uow.SpaceRepository().Create(ctx, space); err != nil {
			return nil, err
		}
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	}

	membership := &entity.SpaceMembership{
		Id:          uuid.New(),
		Status:      entity.MembershipStatusPending,
		Fee:         fee,
		Statement:   req.Statement,
		CreatedAt:   time.Now(),
		SpaceId:     space.Id,
		AppliedById: user.Id,
	}
	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, err
	}

	s.statusCache.Invalidate(space.Id)
	s.publishEvent(ctx, events.TypeMembershipApplied, map[string]interface{}{
		"membership_id": membership.Id,
		"space_id":      space.Id,
		"space_name":    space.Name,
		"fee":           membership.Fee.StringFixed(2),
		"occurred_at":   time.Now(),
	})

	return membership, nil
}

func (s *membershipService) GetMembership(ctx context.Context, id uuid.UUID) (*entity.SpaceMembership, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: id})
}

// GetRedirectFlowURL starts a fresh payment setup flow. There is no status
// guard: re-initiating on a decided membership is allowed and simply rotates
// the session token.
func (s *membershipService) GetRedirectFlowURL(ctx context.Context, membershipId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return "", err
	}
	if membership == nil {
		return "", fmt.Errorf("membership not found")
	}

	user, space, err := s.loadParties(ctx, uow, membership)
	if err != nil {
		return "", err
	}

	token := uuid.New()
	membership.SessionToken = hex.EncodeToString(token[:])

	flow, err := s.gateway.CreateRedirectFlow(ctx, &gocardless.RedirectFlowCreateRequest{
		Description:        "Space Federation Space Membership",
		SessionToken:       membership.SessionToken,
		SuccessRedirectURL: fmt.Sprintf("%s/api/join/step3?membership_id=%s", s.baseURL, membership.Id),
		PrefilledCustomer: gocardless.PrefilledCustomer{
			GivenName:   user.FirstName,
			FamilyName:  user.LastName,
			CompanyName: space.Name,
			Email:       space.Email,
		},
	})
	if err != nil {
		return "", err
	}

	membership.RedirectFlowId = flow.Id
	if err := uow.MembershipRepository().Update(ctx, membership); err != nil {
		return "", err
	}

	return flow.RedirectURL, nil
}

// CompleteRedirectFlow finishes payment setup and records the resulting
// mandate. Gateway failures (token mismatch, unknown flow) propagate
// untouched; there is no local recovery here.
func (s *membershipService) CompleteRedirectFlow(ctx context.Context, membershipId uuid.UUID, flowID string) (*entity.GocardlessMandate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("membership not found")
	}

	s.logger.Info("membership", "Completing redirect flow", map[string]interface{}{
		"membership_id": membership.Id,
		"flow_id":       flowID,
	})
	flow, err := s.gateway.CompleteRedirectFlow(ctx, flowID, membership.SessionToken)
	if err != nil {
		return nil, err
	}

	s.logger.Info("membership", "Fetching detailed mandate info", map[string]interface{}{
		"mandate_id": flow.Links.Mandate,
	})
	detail, err := s.gateway.GetMandate(ctx, flow.Links.Mandate)
	if err != nil {
		return nil, err
	}

	mandate := &entity.GocardlessMandate{
		Id:                    flow.Links.Mandate,
		SpaceMembershipId:     membership.Id,
		Reference:             detail.Reference,
		Status:                detail.Status,
		CustomerId:            detail.Links.Customer,
		CreditorId:            detail.Links.Creditor,
		CustomerBankAccountId: detail.Links.CustomerBankAccount,
	}
	if err := uow.MandateRepository().Create(ctx, mandate); err != nil {
		return nil, err
	}

	s.logger.Info("membership", "Mandate record created", map[string]interface{}{
		"mandate_id": mandate.Id,
	})
	return mandate, nil
}

// SendApprovalRequest emails the board with the applicant's statement, fee
// and the approve/reject action links. Delivery failures are logged and
// swallowed; the counter only moves on success.
func (s *membershipService) SendApprovalRequest(ctx context.Context, membershipId uuid.UUID) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil || membership == nil {
		s.logger.Error("membership", "send_approval_request: membership lookup failed", map[string]interface{}{
			"membership_id": membershipId,
			"error":         fmt.Sprint(err),
		})
		return
	}

	user, space, err := s.loadParties(ctx, uow, membership)
	if err != nil {
		s.logger.Error("membership", "send_approval_request: failed to load applicant/space", map[string]interface{}{
			"membership_id": membership.Id,
			"error":         err.Error(),
		})
		return
	}

	data := mailer.ApprovalRequestEmail{
		ApplicantEmail:     user.Email,
		ApplicantFirstName: user.FirstName,
		ApplicantLastName:  user.LastName,
		SpaceName:          space.Name,
		Statement:          membership.Statement,
		Fee:                membership.Fee,
		ApproveURL:         fmt.Sprintf("%s/api/membership/approval/%s/approve", s.baseURL, membership.SessionToken),
		RejectURL:          fmt.Sprintf("%s/api/membership/approval/%s/reject", s.baseURL, membership.SessionToken),
	}

	if err := s.emailService.SendApprovalRequest(s.boardEmail, data); err != nil {
		// TODO: surface repeated delivery failures to the board some other way
		s.logger.Error("membership", "send_approval_request: failed to send email", map[string]interface{}{
			"membership_id": membership.Id,
			"space":         space.Name,
			"error":         err.Error(),
		})
		return
	}

	membership.ApprovalRequestCount++
	if err := uow.MembershipRepository().Update(ctx, membership); err != nil {
		s.logger.Error("membership", "send_approval_request: failed to persist counter", map[string]interface{}{
			"membership_id": membership.Id,
			"error":         err.Error(),
		})
	}
}

// SendApplicationDecision notifies the applicant (space in cc) of the final
// status. Returns false on delivery failure; never raises.
func (s *membershipService) SendApplicationDecision(ctx context.Context, membership *entity.SpaceMembership) bool {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, space, err := s.loadParties(ctx, uow, membership)
	if err != nil {
		s.logger.Error("membership", "send_application_decision: failed to load applicant/space", map[string]interface{}{
			"membership_id": membership.Id,
			"error":         err.Error(),
		})
		return false
	}

	data := mailer.DecisionEmail{
		ApplicantFirstName: user.FirstName,
		SpaceName:          space.Name,
		Status:             string(membership.Status),
		Fee:                membership.Fee,
	}

	if err := s.emailService.SendApplicationDecision(user.Email, space.Email, data); err != nil {
		s.logger.Error("membership", "send_application_decision: unable to send email", map[string]interface{}{
			"membership_id": membership.Id,
			"status":        membership.Status,
			"error":         err.Error(),
		})
		return false
	}
	return true
}

// Approve transitions Pending → Approved exactly once. The conditional
// UPDATE makes the guard atomic: when two reviewers race, one call returns
// false and performs no side effects.
func (s *membershipService) Approve(ctx context.Context, membershipId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return false, err
	}
	if membership == nil {
		return false, fmt.Errorf("membership not found")
	}

	won, err := uow.MembershipRepository().UpdateStatusIfPending(ctx, membership.Id, entity.MembershipStatusApproved)
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	membership.Status = entity.MembershipStatusApproved
	s.statusCache.Invalidate(membership.SpaceId)

	// Decision email result is deliberately ignored: the approval is already
	// committed and a failed notification must not undo it.
	s.SendApplicationDecision(ctx, membership)

	s.publishEvent(ctx, events.TypeMembershipApproved, map[string]interface{}{
		"membership_id": membership.Id,
		"space_id":      membership.SpaceId,
		"occurred_at":   time.Now(),
	})

	if err := s.RequestPayment(ctx, membership.Id); err != nil {
		// The transition stands; the first payment can be retried by the
		// renewal scheduler.
		return true, err
	}
	return true, nil
}

// Reject mirrors Approve and additionally cancels the current mandate when
// one is active. The cancellation outcome is reported separately from the
// transition: a rejection that wins the transition stands even when the
// gateway refuses the cancel.
func (s *membershipService) Reject(ctx context.Context, membershipId uuid.UUID) (bool, *bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return false, nil, err
	}
	if membership == nil {
		return false, nil, fmt.Errorf("membership not found")
	}

	won, err := uow.MembershipRepository().UpdateStatusIfPending(ctx, membership.Id, entity.MembershipStatusRejected)
	if err != nil {
		return false, nil, err
	}
	if !won {
		return false, nil, nil
	}

	membership.Status = entity.MembershipStatusRejected
	s.statusCache.Invalidate(membership.SpaceId)

	s.SendApplicationDecision(ctx, membership)

	s.publishEvent(ctx, events.TypeMembershipRejected, map[string]interface{}{
		"membership_id": membership.Id,
		"space_id":      membership.SpaceId,
		"occurred_at":   time.Now(),
	})

	mandate, err := s.Mandate(ctx, membership.Id)
	if err != nil {
		return true, nil, err
	}
	if mandate.IsActive() {
		cancelled := s.cancelMandate(ctx, mandate)
		return true, &cancelled, nil
	}
	return true, nil, nil
}

func (s *membershipService) DecideBySessionToken(ctx context.Context, token, action string) (*dto.DecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.BySessionToken{Token: token})
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("membership not found")
	}

	var applied bool
	var mandateCancelled *bool
	var status entity.MembershipStatus
	switch action {
	case "approve":
		applied, err = s.Approve(ctx, membership.Id)
		status = entity.MembershipStatusApproved
	case "reject":
		applied, mandateCancelled, err = s.Reject(ctx, membership.Id)
		status = entity.MembershipStatusRejected
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return nil, err
	}

	if !applied {
		// Already decided; report the stored status.
		current, findErr := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membership.Id})
		if findErr == nil && current != nil {
			status = current.Status
		}
	}

	return &dto.DecisionResponse{
		MembershipId:     membership.Id,
		Status:           string(status),
		Applied:          applied,
		MandateCancelled: mandateCancelled,
	}, nil
}

// RequestPayment collects the full annual fee against the current mandate.
// Without an active mandate this is a no-op: approval can precede payment
// setup, and the renewal scheduler calls this blindly every year.
func (s *membershipService) RequestPayment(ctx context.Context, membershipId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("membership not found")
	}

	mandate, err := s.Mandate(ctx, membership.Id)
	if err != nil {
		return err
	}
	if !mandate.IsActive() {
		return nil
	}

	amount := membership.Fee.Shift(2).IntPart() // fee in minor units
	payment, err := s.gateway.CreatePayment(ctx, &gocardless.PaymentCreateRequest{
		Amount:   amount,
		Currency: s.currency,
		Mandate:  mandate.Id,
	})
	if err != nil {
		return err
	}

	record := &entity.GocardlessPayment{
		Id:          payment.Id,
		MandateId:   mandate.Id,
		AmountCents: payment.Amount,
		Currency:    payment.Currency,
		Status:      payment.Status,
	}
	return uow.PaymentRepository().Create(ctx, record)
}

// HandlePaymentReceived anchors the membership year on the payout date.
// StartedAt is overwritten on every payment, not just the first, so a renewal
// payment restarts the year from its own payout date.
func (s *membershipService) HandlePaymentReceived(ctx context.Context, membership *entity.SpaceMembership, payment *entity.GocardlessPayment) error {
	if payment.PayoutDate == nil {
		s.logger.Error("membership", "handle_payment_received: payout_date is null", map[string]interface{}{
			"membership_id": membership.Id,
			"payment_id":    payment.Id,
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	started := *payment.PayoutDate
	expired := payment.PayoutDate.Add(membershipYear)
	membership.StartedAt = &started
	membership.ExpiredAt = &expired

	if err := uow.MembershipRepository().Update(ctx, membership); err != nil {
		return err
	}

	if s.busPublisher != nil {
		msgPayload := dto.PaymentReceivedMessage{
			MembershipId: membership.Id,
			PaymentId:    payment.Id,
			PayoutDate:   *payment.PayoutDate,
		}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return err
		}
		if err := s.busPublisher.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("membership", "failed to queue payment-received notification", map[string]interface{}{
				"membership_id": membership.Id,
				"error":         err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.TypeMembershipPaymentReceived, map[string]interface{}{
		"membership_id": membership.Id,
		"payment_id":    payment.Id,
		"payout_date":   payment.PayoutDate.Format("2006-01-02"),
		"occurred_at":   time.Now(),
	})

	return nil
}

// HandleMandateUpdated records the gateway's latest view of a mandate on
// our local record so has-active-mandate checks stay truthful.
func (s *membershipService) HandleMandateUpdated(ctx context.Context, resource *gocardless.Mandate) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mandate, err := uow.MandateRepository().FindOne(ctx, specification.Filter("id", resource.Id))
	if err != nil {
		return err
	}
	if mandate == nil {
		s.logger.Warn("membership", "mandate update for unknown mandate", map[string]interface{}{
			"mandate_id": resource.Id,
		})
		return nil
	}

	mandate.Status = resource.Status
	return uow.MandateRepository().Update(ctx, mandate)
}

// Mandate returns the membership's current (most recently created) mandate
// record, or nil when none exists.
func (s *membershipService) Mandate(ctx context.Context, membershipId uuid.UUID) (*entity.GocardlessMandate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MandateRepository().FindOne(ctx,
		specification.MembershipOwnedBy{MembershipID: membershipId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *membershipService) HasActiveMandate(ctx context.Context, membershipId uuid.UUID) (bool, error) {
	mandate, err := s.Mandate(ctx, membershipId)
	if err != nil {
		return false, err
	}
	return mandate.IsActive(), nil
}

func (s *membershipService) MembershipStatus(ctx context.Context, spaceId uuid.UUID) (*entity.MembershipStatus, error) {
	if status, found := s.statusCache.Get(spaceId); found {
		return &status, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	membership, err := uow.MembershipRepository().FindOne(ctx,
		specification.SpaceOwnedBy{SpaceID: spaceId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, nil
	}

	s.statusCache.Set(spaceId, membership.Status)
	return &membership.Status, nil
}

// --- helpers ---

func (s *membershipService) loadParties(ctx context.Context, uow unitofwork.UnitOfWork, membership *entity.SpaceMembership) (*entity.User, *entity.Space, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: membership.AppliedById})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, fmt.Errorf("applicant not found")
	}

	space, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: membership.SpaceId})
	if err != nil {
		return nil, nil, err
	}
	if space == nil {
		return nil, nil, fmt.Errorf("space not found")
	}
	return user, space, nil
}

func (s *membershipService) cancelMandate(ctx context.Context, mandate *entity.GocardlessMandate) bool {
	resource, err := s.gateway.CancelMandate(ctx, mandate.Id)
	if err != nil {
		s.logger.Error("membership", "failed to cancel mandate", map[string]interface{}{
			"mandate_id": mandate.Id,
			"error":      err.Error(),
		})
		return false
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	mandate.Status = resource.Status
	if err := uow.MandateRepository().Update(ctx, mandate); err != nil {
		s.logger.Error("membership", "failed to persist cancelled mandate", map[string]interface{}{
			"mandate_id": mandate.Id,
			"error":      err.Error(),
		})
	}
	return true
}

func (s *membershipService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("membership", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
