package integrity

import (
	"mccraft/core/logger"
	"mccraft/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/exports", h.HandleExportsCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema and exports checks.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if exports, err := h.service.CheckExports(c.Context()); err != nil {
		report["exports"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["exports"] = exports
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks and optionally repairs the recipe schema.
// @Summary Check Schema
// @Description Compares the recipe tables with the models and lists missing foreign keys and indexes. Missing relaxed constraints mean an import was interrupted; fix=true re-adds them.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Re-add missing constraints"
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	missing := append(append([]string{}, report.MissingForeignKeys...), report.MissingIndexes...)
	if len(missing) > 0 {
		l.Warn("Missing constraints detected",
			zap.Strings("missing", missing),
			zap.Bool("interrupted_import", report.InterruptedImport))

		if fix {
			l.Info("Attempting to restore missing constraints")
			restored, err := h.service.FixSchema()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to restore constraints",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  restored,
			})
		}
	}

	return c.JSON(report)
}

// HandleExportsCheck checks the export files in the bucket.
// @Summary Check Exports
// @Description Verify that the bucket holds recipe exports and a tooltip map under the exports prefix. fix=true creates the folder.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create the exports folder"
// @Success 200 {object} checks.ExportsReport "Exports Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/exports [get]
func (h *Handler) HandleExportsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckExports(c.Context())
	if err != nil {
		l.Error("Exports check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if report.RecipeFiles == 0 && fix {
		l.Info("Attempting to create exports folder")
		if err := h.service.FixExports(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create exports folder",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "fixed",
			"fixed":  []string{report.Prefix},
		})
	}

	return c.JSON(report)
}
