package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

type TaxonomyHandler struct {
	registry *taxonomy.Registry
}

func NewTaxonomyHandler(registry *taxonomy.Registry) *TaxonomyHandler {
	return &TaxonomyHandler{registry: registry}
}

// List handles GET /api/indicator_types
// Optional ?group= and ?group=&category= narrow the result.
func (h *TaxonomyHandler) List(c fiber.Ctx) error {
	group := c.Query("group")
	category := c.Query("category")

	switch {
	case group != "" && category != "":
		return c.JSON(h.registry.SubtypesFor(group, category))
	case group != "":
		defs := h.registry.List()
		filtered := defs[:0]
		for _, d := range defs {
			if d.GroupType == group {
				filtered = append(filtered, d)
			}
		}
		return c.JSON(filtered)
	default:
		return c.JSON(h.registry.List())
	}
}

// Groups handles GET /api/indicator_types/groups
func (h *TaxonomyHandler) Groups(c fiber.Ctx) error {
	return c.JSON(h.registry.Groups())
}

// Categories handles GET /api/indicator_types/categories?group=
func (h *TaxonomyHandler) Categories(c fiber.Ctx) error {
	group := c.Query("group")
	if group == "" {
		return invalidField(c, "group is required")
	}
	return c.JSON(h.registry.CategoriesFor(group))
}
