package invoice

import (
	"errors"
	"fmt"
	"time"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceResponse struct {
	ID         string `json:"id"`
	InvoiceNo  string `json:"invoice_no"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	PrintCount int    `json:"print_count"`
}

type CreateInvoiceRequest struct {
	OutIDs []string `json:"out_ids"`
}

type AddItemsRequest struct {
	OutIDs []string `json:"out_ids"`
}

func toInvoiceResponse(inv models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID,
		InvoiceNo:  inv.InvoiceNo,
		Date:       inv.Date.Format("2006-01-02"),
		Status:     inv.Status,
		PrintCount: inv.PrintCount,
	}
}

// Numara çakışmasında transaction kaç kez yeniden denenir.
const maxNumberRetries = 5

// POST /invoices/
// Fatura + kalem ataması + history tek transaction: exclusivity reddi fatura
// satırını da geri alır. Faturaya bağlanacak çıkışların hiçbirinde invoice_id
// dolu olamaz (yaratılış anında "aynı fatura" diye bir şey henüz yok).
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.OutIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "out_ids is required")
		}

		var inv models.Invoice
		var err error
		for attempt := 0; attempt < maxNumberRetries; attempt++ {
			err = database.DB.Transaction(func(tx *gorm.DB) error {
				no, err := nextInvoiceNo(tx, attempt)
				if err != nil {
					return err
				}

				inv = models.Invoice{
					ID:        uuid.NewString(),
					InvoiceNo: no,
					Date:      time.Now().UTC().Truncate(24 * time.Hour),
					Status:    models.InvoiceStatusDraft,
				}
				if err := tx.Create(&inv).Error; err != nil {
					return err
				}

				var outs []models.StockOUT
				if err := tx.Where("id IN ?", body.OutIDs).Find(&outs).Error; err != nil {
					return err
				}
				for _, o := range outs {
					if o.InvoiceID != nil {
						return fiber.NewError(fiber.StatusBadRequest,
							fmt.Sprintf("Stock OUT %s is already invoiced.", o.ID))
					}
				}
				err = tx.Model(&models.StockOUT{}).
					Where("id IN ?", body.OutIDs).
					Update("invoice_id", inv.ID).Error
				if err != nil {
					return err
				}

				return history.Record(tx, "Invoice Created",
					fmt.Sprintf("Invoice %s created with %d items", inv.InvoiceNo, len(body.OutIDs)), "invoice", inv.ID)
			}, database.Serializable)
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				break
			}
		}
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Could not allocate invoice number, please retry")
			}
			return err
		}

		return c.JSON(toInvoiceResponse(inv))
	}
}

// GET /invoices/?skip=0&limit=100 (en yeni tarih önce)
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)

		var invoices []models.Invoice
		err := database.DB.
			Order("date DESC").
			Offset(skip).Limit(limit).
			Find(&invoices).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list invoices")
		}

		res := make([]InvoiceResponse, 0, len(invoices))
		for _, inv := range invoices {
			res = append(res, toInvoiceResponse(inv))
		}
		return c.JSON(res)
	}
}

// PUT /invoices/:id/status?status_val=Printed
// "Printed" her seferinde print_count'u artırır; status değeri enum olarak
// zorlanmıyor, kalem üyeliği dondurma sadece "Printed" literaline bakar.
func UpdateInvoiceStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		statusVal := c.Query("status_val")
		if statusVal == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status_val is required")
		}

		var inv models.Invoice
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&inv, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
			}

			oldStatus := inv.Status
			inv.Status = statusVal
			if statusVal == models.InvoiceStatusPrinted {
				inv.PrintCount++
			}

			if err := tx.Save(&inv).Error; err != nil {
				return err
			}
			return history.Record(tx, "Invoice Status Changed",
				fmt.Sprintf("Invoice %s status: %s -> %s", inv.InvoiceNo, oldStatus, statusVal), "invoice", inv.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"ok": true, "status": inv.Status, "print_count": inv.PrintCount})
	}
}

// POST /invoices/:id/items
func AddInvoiceItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body AddItemsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var inv models.Invoice
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&inv, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
			}
			if inv.Status == models.InvoiceStatusPrinted {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot edit a Printed invoice.")
			}

			var outs []models.StockOUT
			if err := tx.Where("id IN ?", body.OutIDs).Find(&outs).Error; err != nil {
				return err
			}
			for _, o := range outs {
				if o.InvoiceID != nil && *o.InvoiceID != inv.ID {
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("Stock OUT %s is already in another invoice.", o.ID))
				}
			}
			err := tx.Model(&models.StockOUT{}).
				Where("id IN ?", body.OutIDs).
				Update("invoice_id", inv.ID).Error
			if err != nil {
				return err
			}

			return history.Record(tx, "Invoice Updated",
				fmt.Sprintf("Added %d items to Invoice %s", len(outs), inv.InvoiceNo), "invoice", inv.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(toInvoiceResponse(inv))
	}
}

// DELETE /invoices/:id/items/:out_id
func RemoveInvoiceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		outID := c.Params("out_id")

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var inv models.Invoice
			if err := tx.First(&inv, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
			}
			if inv.Status == models.InvoiceStatusPrinted {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot edit a Printed invoice.")
			}

			var out models.StockOUT
			if err := tx.First(&out, "id = ? AND invoice_id = ?", outID, inv.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Item not found in this invoice")
			}

			if err := tx.Model(&out).Update("invoice_id", nil).Error; err != nil {
				return err
			}
			return history.Record(tx, "Invoice Updated",
				fmt.Sprintf("Removed item from Invoice %s", inv.InvoiceNo), "invoice", inv.ID)
		}, database.Serializable)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
