// FILE: internal/controller/membership_controller.go
package controller

import (
	"time"

	"spacefed-be/internal/dto"
	"spacefed-be/internal/pkg/serverutils"
	"spacefed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMembershipController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	RedirectFlow(ctx *fiber.Ctx) error
	CompleteFlow(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type membershipController struct {
	membershipService service.IMembershipService
}

func NewMembershipController(membershipService service.IMembershipService) IMembershipController {
	return &membershipController{
		membershipService: membershipService,
	}
}

func (c *membershipController) RegisterRoutes(r fiber.Router) {
	join := r.Group("/join")
	join.Post("apply", c.Apply)
	join.Get("redirect-flow/:membershipId", c.RedirectFlow)
	join.Get("step3", c.CompleteFlow)

	membership := r.Group("/membership")
	membership.Get("approval/:sessionToken/:action", c.Decide)
	membership.Get("status/:spaceId", c.Status)
	membership.Get(":id", c.Show)
}

func (c *membershipController) Apply(ctx *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	membership, err := c.membershipService.Apply(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Application received", dto.ApplyResponse{
		MembershipId: membership.Id,
		Status:       string(membership.Status),
	}))
}

// RedirectFlow starts payment setup and sends the applicant's browser to
// the gateway's hosted pages.
func (c *membershipController) RedirectFlow(ctx *fiber.Ctx) error {
	membershipId, err := uuid.Parse(ctx.Params("membershipId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid membership id")
	}

	url, err := c.membershipService.GetRedirectFlowURL(ctx.Context(), membershipId)
	if err != nil {
		return err
	}

	return ctx.Redirect(url, fiber.StatusFound)
}

// CompleteFlow is the success landing page the gateway redirects back to.
// It confirms the flow, records the mandate and emails the board.
func (c *membershipController) CompleteFlow(ctx *fiber.Ctx) error {
	flowID := ctx.Query("redirect_flow_id")
	if flowID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "redirect_flow_id is required")
	}
	membershipId, err := uuid.Parse(ctx.Query("membership_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid membership id")
	}

	mandate, err := c.membershipService.CompleteRedirectFlow(ctx.Context(), membershipId, flowID)
	if err != nil {
		return err
	}

	c.membershipService.SendApprovalRequest(ctx.Context(), membershipId)

	return ctx.JSON(serverutils.SuccessResponse("Payment setup complete", dto.CompleteFlowResponse{
		MandateId:     mandate.Id,
		MandateStatus: mandate.Status,
	}))
}

// Decide handles the approve/reject links from the board email.
func (c *membershipController) Decide(ctx *fiber.Ctx) error {
	token := ctx.Params("sessionToken")
	action := ctx.Params("action")

	res, err := c.membershipService.DecideBySessionToken(ctx.Context(), token, action)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Decision recorded", res))
}

func (c *membershipController) Status(ctx *fiber.Ctx) error {
	spaceId, err := uuid.Parse(ctx.Params("spaceId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid space id")
	}

	status, err := c.membershipService.MembershipStatus(ctx.Context(), spaceId)
	if err != nil {
		return err
	}

	// Spaces that never applied report "None" rather than a missing resource.
	res := dto.MembershipStatusResponse{Status: "None"}
	if status != nil {
		res.Status = string(*status)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *membershipController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid membership id")
	}

	membership, err := c.membershipService.GetMembership(ctx.Context(), id)
	if err != nil {
		return err
	}
	if membership == nil {
		return fiber.NewError(fiber.StatusNotFound, "membership not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", dto.MembershipResponse{
		Id:                   membership.Id,
		Status:               string(membership.Status),
		Fee:                  membership.Fee.StringFixed(2),
		Statement:            membership.Statement,
		ApprovalRequestCount: membership.ApprovalRequestCount,
		CreatedAt:            membership.CreatedAt,
		StartedAt:            membership.StartedAt,
		ExpiredAt:            membership.ExpiredAt,
		Active:               membership.IsActive(time.Now()),
	}))
}
