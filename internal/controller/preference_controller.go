package controller

import (
	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/pkg/serverutils"
	"ai-editor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	RecordEdit(ctx *fiber.Ctx) error
	ListPreferences(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{
		preferenceService: preferenceService,
	}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("record-edit", c.RecordEdit)
	h.Get("preferences/:text_type", c.ListPreferences)
}

func (c *preferenceController) RecordEdit(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	var req dto.RecordEditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.preferenceService.RecordEdit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record edit", res))
}

func (c *preferenceController) ListPreferences(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)
	textType := ctx.Params("text_type")

	values, err := c.preferenceService.GetPreferences(ctx.Context(), userId, textType)
	if err != nil {
		return err
	}

	res := dto.ListPreferencesResponse{
		TextType:    textType,
		Preferences: values,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list preferences", res))
}
