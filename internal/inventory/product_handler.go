package inventory

import (
	"errors"
	"fmt"
	"strings"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Rate     float64 `json:"rate"`
	IsActive bool    `json:"is_active"`
}

type ProductRequest struct {
	Name string          `json:"name"`
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Code:     p.Code,
		Rate:     p.Rate.InexactFloat64(),
		IsActive: p.IsActive,
	}
}

// POST /products/
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)
		if body.Name == "" || body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and code are required")
		}

		p := models.Product{
			ID:       uuid.NewString(),
			Name:     body.Name,
			Code:     body.Code,
			Rate:     body.Rate,
			IsActive: true,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			// Unique constraint'e düşmeden önce açıkça kontrol et
			var existing models.Product
			if err := tx.First(&existing, "code = ?", p.Code).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Product code already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Create(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusBadRequest, "Product code already exists")
				}
				return err
			}
			return history.Record(tx, "Product Created",
				fmt.Sprintf("Product %s (%s) created", p.Name, p.Code), "product", p.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toProductResponse(p))
	}
}

// GET /products/?skip=0&limit=100 (sadece aktif ürünler)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)

		var products []models.Product
		err := database.DB.
			Where("is_active = ?", true).
			Offset(skip).Limit(limit).
			Find(&products).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// PUT /products/:id (full update)
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)
		if body.Name == "" || body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and code are required")
		}

		var p models.Product
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&p, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}

			// Kod başka bir üründe kullanılıyorsa reddet
			var existing models.Product
			if err := tx.First(&existing, "code = ? AND id <> ?", body.Code, p.ID).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Product code already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			oldVal := fmt.Sprintf("%s (%s)", p.Name, p.Code)
			p.Name = body.Name
			p.Code = body.Code
			p.Rate = body.Rate

			if err := tx.Save(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusBadRequest, "Product code already exists")
				}
				return err
			}
			return history.Record(tx, "Product Updated",
				fmt.Sprintf("Product updated from %s to %s (%s)", oldVal, p.Name, p.Code), "product", p.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /products/:id (soft delete)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var p models.Product
			if err := tx.First(&p, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}

			if err := tx.Model(&p).Update("is_active", false).Error; err != nil {
				return err
			}
			return history.Record(tx, "Product Deleted",
				fmt.Sprintf("Product %s (%s) deleted", p.Name, p.Code), "product", p.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
