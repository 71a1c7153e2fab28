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

type StockOUTResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	POID      string  `json:"po_id"`
	Date      string  `json:"date"`
	Qty       int     `json:"qty"`
	Note      string  `json:"note"`
	InvoiceID *string `json:"invoice_id"`
}

type CreateStockOutRequest struct {
	ProductID string `json:"product_id"`
	POID      string `json:"po_id"`
	Date      string `json:"date"` // "2006-01-02"
	Qty       int    `json:"qty"`
	Note      string `json:"note"`
}

func toStockOUTResponse(out models.StockOUT) StockOUTResponse {
	return StockOUTResponse{
		ID:        out.ID,
		ProductID: out.ProductID,
		POID:      out.POID,
		Date:      out.Date.Format("2006-01-02"),
		Qty:       out.Qty,
		Note:      out.Note,
		InvoiceID: out.InvoiceID,
	}
}

// POST /outs/
// Çıkış miktarı PO'nun kalan bakiyesini (toplam IN - toplam OUT) aşamaz.
func CreateStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockOutRequest
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

		out := models.StockOUT{
			ID:        uuid.NewString(),
			ProductID: body.ProductID,
			POID:      body.POID,
			Date:      d,
			Qty:       body.Qty,
			Note:      body.Note,
			InvoiceID: nil, // çıkışlar faturasız doğar
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var po models.PurchaseOrder
			if err := tx.First(&po, "id = ?", body.POID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Purchase Order not found")
			}

			sumIn, err := sumStockIN(tx, body.POID, "")
			if err != nil {
				return err
			}
			sumOut, err := sumStockOUT(tx, body.POID)
			if err != nil {
				return err
			}
			if err := ValidateStockOutQty(body.Qty, sumIn, sumOut); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			if err := tx.Create(&out).Error; err != nil {
				return err
			}
			return history.Record(tx, "Stock OUT Added",
				fmt.Sprintf("OUT Qty %d for PO %s", out.Qty, po.PONo), "stock_out", out.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toStockOUTResponse(out))
	}
}

// GET /outs/?skip=0&limit=100 (en yeni tarih önce)
func ListStockOutsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)

		var outs []models.StockOUT
		err := database.DB.
			Order("date DESC").
			Offset(skip).Limit(limit).
			Find(&outs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list stock outs")
		}

		res := make([]StockOUTResponse, 0, len(outs))
		for _, out := range outs {
			res = append(res, toStockOUTResponse(out))
		}
		return c.JSON(res)
	}
}
