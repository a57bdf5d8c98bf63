package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/services"
)

type CareersHandler struct {
	catalog services.CareerCatalog
}

func NewCareersHandler(catalog services.CareerCatalog) *CareersHandler {
	return &CareersHandler{catalog: catalog}
}

// HandleGetCareers handles GET /careers?interest=<key> against the static
// interest catalog.
func (h *CareersHandler) HandleGetCareers(c *fiber.Ctx) error {
	interest := c.Query("interest")
	if interest == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "interest is required",
		})
	}

	return c.JSON(models.CareersResponse{
		Careers: h.catalog.Suggest(interest),
	})
}
