package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	PONo      string `json:"po_no"`
	POQty     int    `json:"po_qty"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

type CreatePORequest struct {
	ProductID string `json:"product_id"`
	PONo      string `json:"po_no"`
	POQty     int    `json:"po_qty"`
}

func toPOResponse(po models.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:        po.ID,
		ProductID: po.ProductID,
		PONo:      po.PONo,
		POQty:     po.POQty,
		CreatedAt: po.CreatedAt.UTC().Format(time.RFC3339),
		IsActive:  po.IsActive,
	}
}

// POST /pos/
func CreatePOHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePORequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.PONo = strings.TrimSpace(body.PONo)
		if body.PONo == "" || body.ProductID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_id and po_no are required")
		}
		if body.POQty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "po_qty must be positive")
		}

		po := models.PurchaseOrder{
			ID:        uuid.NewString(),
			ProductID: body.ProductID,
			PONo:      body.PONo,
			POQty:     body.POQty,
			IsActive:  true,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var p models.Product
			if err := tx.First(&p, "id = ?", body.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}

			// Unique constraint'e düşmeden önce açıkça kontrol et: çakışma
			// client'a generic 500 değil anlamlı 400 olarak dönmeli.
			var existing models.PurchaseOrder
			if err := tx.First(&existing, "po_no = ?", body.PONo).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "PO Number already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Create(&po).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusBadRequest, "PO Number already exists")
				}
				return err
			}
			return history.Record(tx, "PO Created",
				fmt.Sprintf("PO %s (Qty %d) created", po.PONo, po.POQty), "po", po.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toPOResponse(po))
	}
}

// GET /pos/?skip=0&limit=100 (sadece aktif PO'lar)
func ListPOsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)

		var pos []models.PurchaseOrder
		err := database.DB.
			Where("is_active = ?", true).
			Offset(skip).Limit(limit).
			Find(&pos).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list purchase orders")
		}

		res := make([]PurchaseOrderResponse, 0, len(pos))
		for _, po := range pos {
			res = append(res, toPOResponse(po))
		}
		return c.JSON(res)
	}
}
