package controller

import (
	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/pkg/serverutils"
	"ai-editor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Purge(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("knowledge/:category", c.Ingest)
	h.Delete("knowledge/:category", c.Purge)
}

func (c *knowledgeController) Ingest(ctx *fiber.Ctx) error {
	category := ctx.Params("category")

	var req dto.IngestKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Ingest(ctx.Context(), category, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Documents queued for ingestion", res))
}

func (c *knowledgeController) Purge(ctx *fiber.Ctx) error {
	category := ctx.Params("category")

	res, err := c.knowledgeService.PurgeCategory(ctx.Context(), category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Knowledge category purged", res))
}
