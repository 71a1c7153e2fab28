package inventory

import (
	"fmt"
	"strings"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

type CreateMaterialRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

func toMaterialResponse(m models.Material) MaterialResponse {
	return MaterialResponse{ID: m.ID, ProductID: m.ProductID, Name: m.Name, IsActive: m.IsActive}
}

// POST /materials/
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.ProductID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_id and name are required")
		}

		m := models.Material{
			ID:        uuid.NewString(),
			ProductID: body.ProductID,
			Name:      body.Name,
			IsActive:  true,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var p models.Product
			if err := tx.First(&p, "id = ?", body.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}

			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			return history.Record(tx, "Material Added",
				fmt.Sprintf("Material %s added", m.Name), "material", m.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toMaterialResponse(m))
	}
}

// GET /products/:id/materials/ (sadece aktif hammaddeler)
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Params("id")

		var materials []models.Material
		err := database.DB.
			Where("product_id = ? AND is_active = ?", productID, true).
			Find(&materials).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list materials")
		}

		res := make([]MaterialResponse, 0, len(materials))
		for _, m := range materials {
			res = append(res, toMaterialResponse(m))
		}
		return c.JSON(res)
	}
}

// DELETE /materials/:id (soft delete)
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var m models.Material
			if err := tx.First(&m, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Material not found")
			}

			if err := tx.Model(&m).Update("is_active", false).Error; err != nil {
				return err
			}
			return history.Record(tx, "Material Deleted",
				fmt.Sprintf("Material %s deleted", m.Name), "material", m.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
