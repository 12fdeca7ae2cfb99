package controller

import (
	"errors"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/pkg/serverutils"
	"ai-triage-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPrescriptionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type prescriptionController struct {
	prescriptionService service.IPrescriptionService
}

func NewPrescriptionController(prescriptionService service.IPrescriptionService) IPrescriptionController {
	return &prescriptionController{
		prescriptionService: prescriptionService,
	}
}

func (c *prescriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prescription/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *prescriptionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePrescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := c.prescriptionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create prescription", res))
}

func (c *prescriptionController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid prescription id")
	}

	res, err := c.prescriptionService.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPrescriptionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show prescription", res))
}

func (c *prescriptionController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.prescriptionService.List(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list prescriptions", res))
}
