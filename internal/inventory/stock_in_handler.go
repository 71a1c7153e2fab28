package inventory

import (
	"fmt"
	"time"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockINResponse struct {
	ID     string `json:"id"`
	POID   string `json:"po_id"`
	Date   string `json:"date"`
	Qty    int    `json:"qty"`
	Note   string `json:"note"`
	Edited bool   `json:"edited"`
}

type StockINRequest struct {
	POID string `json:"po_id"`
	Date string `json:"date"` // "2006-01-02"
	Qty  int    `json:"qty"`
	Note string `json:"note"`
}

func toStockINResponse(in models.StockIN) StockINResponse {
	return StockINResponse{
		ID:     in.ID,
		POID:   in.POID,
		Date:   in.Date.Format("2006-01-02"),
		Qty:    in.Qty,
		Note:   in.Note,
		Edited: in.Edited,
	}
}

// POST /ins/
func CreateStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockINRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
		}
		if body.Qty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "qty must be positive")
		}

		in := models.StockIN{
			ID:   uuid.NewString(),
			POID: body.POID,
			Date: d,
			Qty:  body.Qty,
			Note: body.Note,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var po models.PurchaseOrder
			if err := tx.First(&po, "id = ?", body.POID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Purchase Order not found")
			}

			if err := tx.Create(&in).Error; err != nil {
				return err
			}
			return history.Record(tx, "Stock IN Added",
				fmt.Sprintf("IN Qty %d for PO %s", in.Qty, po.PONo), "stock_in", in.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toStockINResponse(in))
	}
}

// GET /pos/:id/ins/
func ListStockInsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		poID := c.Params("id")

		var ins []models.StockIN
		if err := database.DB.Where("po_id = ?", poID).Find(&ins).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list stock ins")
		}

		res := make([]StockINResponse, 0, len(ins))
		for _, in := range ins {
			res = append(res, toStockINResponse(in))
		}
		return c.JSON(res)
	}
}

// PUT /ins/:id
// Miktar azaltılıyorsa bakiye kuralı: diğer IN'ler + yeni miktar, toplam
// OUT'un altına düşemez.
func UpdateStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StockINRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
		}
		if body.Qty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "qty must be positive")
		}

		var in models.StockIN
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&in, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Stock IN entry not found")
			}

			oldQty := in.Qty
			if body.Qty < oldQty {
				sumOthers, err := sumStockIN(tx, in.POID, in.ID)
				if err != nil {
					return err
				}
				sumOut, err := sumStockOUT(tx, in.POID)
				if err != nil {
					return err
				}
				if err := ValidateStockInReduction(body.Qty, sumOthers+body.Qty, sumOut); err != nil {
					return fiber.NewError(fiber.StatusBadRequest, err.Error())
				}
			}

			in.Date = d
			in.Qty = body.Qty
			in.Note = body.Note
			in.Edited = true

			if err := tx.Save(&in).Error; err != nil {
				return err
			}
			return history.Record(tx, "Stock IN Updated",
				fmt.Sprintf("IN updated from %d to %d", oldQty, in.Qty), "stock_in", in.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toStockINResponse(in))
	}
}

// DELETE /ins/:id (hard delete, bakiye kuralı geçerse)
func DeleteStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var in models.StockIN
			if err := tx.First(&in, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Stock IN entry not found")
			}

			sumOthers, err := sumStockIN(tx, in.POID, in.ID)
			if err != nil {
				return err
			}
			sumOut, err := sumStockOUT(tx, in.POID)
			if err != nil {
				return err
			}
			if err := ValidateStockInRemoval(sumOthers, sumOut); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			if err := tx.Delete(&in).Error; err != nil {
				return err
			}
			return history.Record(tx, "Stock IN Deleted",
				fmt.Sprintf("IN entry of %d deleted", in.Qty), "stock_in", in.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
