package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/inventory"
	"samara-backend/internal/invoice"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupTestDB: her test için izole bir in-memory sqlite açar ve global DB'yi
// ona yönlendirir. Test bitince eski bağlantı geri gelir.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration hatası: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	// sqlite zaten serializable çalışır; sürücüye ayrıca izolasyon seviyesi
	// geçirmiyoruz.
	prevOpts := database.Serializable
	database.Serializable = &sql.TxOptions{}
	t.Cleanup(func() { database.Serializable = prevOpts })

	return db
}

// SetupApp: cmd/server'daki route tablosunun test kopyası.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()
	SetupTestDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Post("/products/", inventory.CreateProductHandler())
	app.Get("/products/", inventory.ListProductsHandler())
	app.Put("/products/:id", inventory.UpdateProductHandler())
	app.Delete("/products/:id", inventory.DeleteProductHandler())
	app.Get("/products/:id/materials/", inventory.ListMaterialsHandler())

	app.Post("/materials/", inventory.CreateMaterialHandler())
	app.Delete("/materials/:id", inventory.DeleteMaterialHandler())

	app.Post("/pos/", inventory.CreatePOHandler())
	app.Get("/pos/", inventory.ListPOsHandler())
	app.Get("/pos/:id/ins/", inventory.ListStockInsHandler())

	app.Post("/ins/", inventory.CreateStockInHandler())
	app.Put("/ins/:id", inventory.UpdateStockInHandler())
	app.Delete("/ins/:id", inventory.DeleteStockInHandler())

	app.Post("/outs/", inventory.CreateStockOutHandler())
	app.Get("/outs/", inventory.ListStockOutsHandler())

	app.Post("/invoices/", invoice.CreateInvoiceHandler())
	app.Get("/invoices/", invoice.ListInvoicesHandler())
	app.Put("/invoices/:id/status", invoice.UpdateInvoiceStatusHandler())
	app.Post("/invoices/:id/items", invoice.AddInvoiceItemsHandler())
	app.Delete("/invoices/:id/items/:out_id", invoice.RemoveInvoiceItemHandler())

	app.Get("/history/", history.ListHistoryHandler())

	return app
}

// DoJSON: isteği fiber app üzerinden çalıştırır, status ile ham gövdeyi döner.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("istek gövdesi marshal edilemedi: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek çalıştırılamadı: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("cevap gövdesi okunamadı: %v", err)
	}
	return resp.StatusCode, raw
}

// DecodeMap: tek kayıt dönen endpoint cevapları için.
func DecodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("cevap decode edilemedi: %v (%s)", err, raw)
	}
	return m
}

// DecodeList: liste dönen endpoint cevapları için.
func DecodeList(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(raw, &l); err != nil {
		t.Fatalf("cevap decode edilemedi: %v (%s)", err, raw)
	}
	return l
}
