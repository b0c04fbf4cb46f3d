package recipes

import (
	"errors"
	"strconv"

	"mccraft/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for recipe queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the recipe routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/items/:id", h.HandleGetItem)
	app.Get("/producers", h.HandleProducersByName)
	app.Get("/producers/:id", h.HandleProducersOf)
	app.Get("/recipes/:id", h.HandleGetRecipe)
	app.Get("/search", h.HandleSearch)
}

// HandleGetItem returns a single item.
// @Summary Get Item
// @Description Get an item or fluid by its internal id.
// @Tags recipes
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item "Item"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items/{id} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	item, err := h.service.GetItem(c.Context(), id)
	if err != nil {
		return h.fail(c, "Item lookup failed", err)
	}
	return c.JSON(item)
}

// HandleProducersOf lists the recipes producing an item.
// @Summary Get Producers
// @Description List the recipes that output the given item.
// @Tags recipes
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {array} PartialRecipe "Producers"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /producers/{id} [get]
func (h *Handler) HandleProducersOf(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	producers, err := h.service.ProducersOf(c.Context(), id)
	if err != nil {
		return h.fail(c, "Producer lookup failed", err)
	}
	return c.JSON(producers)
}

// HandleProducersByName lists the recipes producing items with a matching name.
// @Summary Search Producers
// @Description List the recipes whose output name starts with the query.
// @Tags recipes
// @Produce json
// @Param name query string true "Name prefix"
// @Success 200 {array} PartialRecipe "Producers"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /producers [get]
func (h *Handler) HandleProducersByName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, errors.New("name is required"))
	}

	producers, err := h.service.ProducersByName(c.Context(), name)
	if err != nil {
		return h.fail(c, "Producer search failed", err)
	}
	return c.JSON(producers)
}

// HandleGetRecipe returns a complete recipe.
// @Summary Get Recipe
// @Description Get a recipe with its machine, input slots and outputs.
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} Recipe "Recipe"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/{id} [get]
func (h *Handler) HandleGetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	recipe, err := h.service.GetRecipe(c.Context(), id)
	if err != nil {
		return h.fail(c, "Recipe lookup failed", err)
	}
	return c.JSON(recipe)
}

// HandleSearch searches items by name.
// @Summary Search Items
// @Description Page through items whose name starts with the query.
// @Tags recipes
// @Produce json
// @Param q query string true "Name prefix"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(10)
// @Success 200 {array} models.Item "Items"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	var q SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, err)
	}

	items, err := h.service.SearchItems(c.Context(), q)
	if err != nil {
		return h.fail(c, "Item search failed", err)
	}
	return c.JSON(items)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
