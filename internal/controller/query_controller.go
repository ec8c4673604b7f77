package controller

import (
	"errors"

	"ai-question-answer-be/internal/dto"
	"ai-question-answer-be/internal/pkg/serverutils"
	"ai-question-answer-be/internal/service"
	"ai-question-answer-be/pkg/guardrail"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService    service.IQueryService
	feedbackService service.IFeedbackService
}

func NewQueryController(queryService service.IQueryService, feedbackService service.IFeedbackService) IQueryController {
	return &queryController{
		queryService:    queryService,
		feedbackService: feedbackService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("answer", c.Answer)
	h.Post("search", c.Search)
	h.Post("feedback", c.Feedback)
}

// Answer runs the full guardrail pipeline, including LLM generation
// when the caller asks for it.
func (c *queryController) Answer(ctx *fiber.Ctx) error {
	return c.handleQuery(ctx, nil)
}

// Search is retrieval only. It reuses the answer flow with generation
// forced off.
func (c *queryController) Search(ctx *fiber.Ctx) error {
	generate := false
	return c.handleQuery(ctx, &generate)
}

func (c *queryController) handleQuery(ctx *fiber.Ctx, generateOverride *bool) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user id in token"))
	}

	var req dto.AnswerQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if generateOverride != nil {
		req.GenerateLLMResponse = *generateOverride
	}

	res, queryErr, err := c.queryService.Answer(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, guardrail.ErrUpstreamUnavailable) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Unable to process the query at this time."))
		}
		return err
	}
	if queryErr != nil {
		// the guardrail rejected the query, the body carries the reason
		return ctx.Status(fiber.StatusBadRequest).JSON(queryErr)
	}

	return ctx.JSON(res)
}

func (c *queryController) Feedback(ctx *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	err := c.feedbackService.Submit(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrQueryNotFound) || errors.Is(err, service.ErrSecretKeyMismatch) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Feedback submitted successfully", nil))
}
