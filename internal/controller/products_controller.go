package controller

import (
	"empower-commerce-be/internal/dto"
	"empower-commerce-be/internal/pkg/serverutils"
	"empower-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductsController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

type productsController struct {
	productsService service.IProductsService
}

func NewProductsController(productsService service.IProductsService) IProductsController {
	return &productsController{
		productsService: productsService,
	}
}

func (c *productsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("/search", c.Search)
	h.Post("/compare", c.Compare)
}

func (c *productsController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("query")

	res, err := c.productsService.Search(ctx.Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search products", res))
}

func (c *productsController) Compare(ctx *fiber.Ctx) error {
	var req dto.ProductCompareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productsService.Compare(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compare products", res))
}
