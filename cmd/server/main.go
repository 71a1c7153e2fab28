package main

import (
	"log"
	"strings"

	"samara-backend/internal/config"
	"samara-backend/internal/database"
	"samara-backend/internal/history"
	"samara-backend/internal/inventory"
	"samara-backend/internal/invoice"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		AppName: "Samara Industry Factory System API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	// CORS origins virgülle ayrılmış string olarak geliyor
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Ürünler
	app.Post("/products/", inventory.CreateProductHandler())
	app.Get("/products/", inventory.ListProductsHandler())
	app.Put("/products/:id", inventory.UpdateProductHandler())
	app.Delete("/products/:id", inventory.DeleteProductHandler())
	app.Get("/products/:id/materials/", inventory.ListMaterialsHandler())

	// Hammaddeler
	app.Post("/materials/", inventory.CreateMaterialHandler())
	app.Delete("/materials/:id", inventory.DeleteMaterialHandler())

	// Satınalma siparişleri
	app.Post("/pos/", inventory.CreatePOHandler())
	app.Get("/pos/", inventory.ListPOsHandler())
	app.Get("/pos/:id/ins/", inventory.ListStockInsHandler())

	// Stok girişleri
	app.Post("/ins/", inventory.CreateStockInHandler())
	app.Put("/ins/:id", inventory.UpdateStockInHandler())
	app.Delete("/ins/:id", inventory.DeleteStockInHandler())

	// Stok çıkışları
	app.Post("/outs/", inventory.CreateStockOutHandler())
	app.Get("/outs/", inventory.ListStockOutsHandler())

	// Faturalar
	app.Post("/invoices/", invoice.CreateInvoiceHandler())
	app.Get("/invoices/", invoice.ListInvoicesHandler())
	app.Put("/invoices/:id/status", invoice.UpdateInvoiceStatusHandler())
	app.Post("/invoices/:id/items", invoice.AddInvoiceItemsHandler())
	app.Delete("/invoices/:id/items/:out_id", invoice.RemoveInvoiceItemHandler())

	// İşlem geçmişi
	app.Get("/history/", history.ListHistoryHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
