package invoice_test

import (
	"net/http"
	"strings"
	"testing"

	"samara-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

// Faturalanabilir çıkışlar için tam zincir: ürün -> PO -> IN -> OUT'lar.
func seedOuts(t *testing.T, app *fiber.App, qtys ...int) []string {
	t.Helper()

	status, raw := testutil.DoJSON(t, app, http.MethodPost, "/products/", map[string]any{
		"name": "Widget", "code": "W1", "rate": 10.0,
	})
	if status != http.StatusOK {
		t.Fatalf("ürün oluşturulamadı: %d %s", status, raw)
	}
	productID := testutil.DecodeMap(t, raw)["id"].(string)

	status, raw = testutil.DoJSON(t, app, http.MethodPost, "/pos/", map[string]any{
		"product_id": productID, "po_no": "PO-1", "po_qty": 1000,
	})
	if status != http.StatusOK {
		t.Fatalf("PO oluşturulamadı: %d %s", status, raw)
	}
	poID := testutil.DecodeMap(t, raw)["id"].(string)

	status, raw = testutil.DoJSON(t, app, http.MethodPost, "/ins/", map[string]any{
		"po_id": poID, "date": "2025-01-10", "qty": 1000, "note": "",
	})
	if status != http.StatusOK {
		t.Fatalf("Stock IN oluşturulamadı: %d %s", status, raw)
	}

	ids := make([]string, 0, len(qtys))
	for _, q := range qtys {
		status, raw = testutil.DoJSON(t, app, http.MethodPost, "/outs/", map[string]any{
			"product_id": productID, "po_id": poID, "date": "2025-01-11", "qty": q, "note": "",
		})
		if status != http.StatusOK {
			t.Fatalf("Stock OUT oluşturulamadı: %d %s", status, raw)
		}
		ids = append(ids, testutil.DecodeMap(t, raw)["id"].(string))
	}
	return ids
}

func outInvoiceID(t *testing.T, app *fiber.App, outID string) any {
	t.Helper()
	_, raw := testutil.DoJSON(t, app, http.MethodGet, "/outs/", nil)
	for _, o := range testutil.DecodeList(t, raw) {
		if o["id"] == outID {
			return o["invoice_id"]
		}
	}
	t.Fatalf("çıkış bulunamadı: %s", outID)
	return nil
}

func TestCreateInvoice(t *testing.T) {
	app := testutil.SetupApp(t)
	outs := seedOuts(t, app, 30, 20)

	status, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
		"out_ids": outs,
	})
	if status != http.StatusOK {
		t.Fatalf("fatura oluşturulamadı: %d %s", status, raw)
	}
	inv := testutil.DecodeMap(t, raw)
	if inv["invoice_no"] != "SI-00001" {
		t.Errorf("ilk fatura SI-00001 olmalı: %v", inv["invoice_no"])
	}
	if inv["status"] != "Draft" || inv["print_count"].(float64) != 0 {
		t.Errorf("yeni fatura Draft/0 olmalı: %v", inv)
	}

	// her iki çıkış da bu faturaya bağlandı
	for _, id := range outs {
		if got := outInvoiceID(t, app, id); got != inv["id"] {
			t.Errorf("çıkış %s faturaya bağlanmalıydı: %v", id, got)
		}
	}

	// zaten faturalanmış çıkışla ikinci fatura reddedilir ve hiçbir state değişmez
	status, raw = testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
		"out_ids": []string{outs[0]},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("ikinci fatura reddedilmeliydi: %d %s", status, raw)
	}
	if msg := testutil.DecodeMap(t, raw)["error"].(string); !strings.Contains(msg, "already invoiced") {
		t.Errorf("beklenmeyen hata mesajı: %q", msg)
	}
	if got := outInvoiceID(t, app, outs[0]); got != inv["id"] {
		t.Errorf("önceki atama bozulmamalı: %v", got)
	}
	_, raw = testutil.DoJSON(t, app, http.MethodGet, "/invoices/", nil)
	if got := len(testutil.DecodeList(t, raw)); got != 1 {
		t.Errorf("reddedilen fatura kaydedilmemeli, %d fatura var", got)
	}
}

func TestInvoiceNumbersSequential(t *testing.T) {
	app := testutil.SetupApp(t)
	outs := seedOuts(t, app, 10, 10, 10)

	want := []string{"SI-00001", "SI-00002", "SI-00003"}
	for i, id := range outs {
		status, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
			"out_ids": []string{id},
		})
		if status != http.StatusOK {
			t.Fatalf("fatura %d oluşturulamadı: %d %s", i, status, raw)
		}
		if got := testutil.DecodeMap(t, raw)["invoice_no"]; got != want[i] {
			t.Errorf("fatura %d numarası %s olmalı: %v", i, want[i], got)
		}
	}
}

func TestInvoiceStatusAndPrintCount(t *testing.T) {
	app := testutil.SetupApp(t)
	outs := seedOuts(t, app, 10)

	_, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{"out_ids": outs})
	invID := testutil.DecodeMap(t, raw)["id"].(string)

	status, raw := testutil.DoJSON(t, app, http.MethodPut, "/invoices/"+invID+"/status?status_val=Ready", nil)
	if status != http.StatusOK {
		t.Fatalf("status update: %d %s", status, raw)
	}
	resp := testutil.DecodeMap(t, raw)
	if resp["ok"] != true || resp["status"] != "Ready" || resp["print_count"].(float64) != 0 {
		t.Errorf("beklenmeyen cevap: %v", resp)
	}

	// her "Printed" print_count'u artırır
	for i := 1; i <= 2; i++ {
		_, raw = testutil.DoJSON(t, app, http.MethodPut, "/invoices/"+invID+"/status?status_val=Printed", nil)
		if got := testutil.DecodeMap(t, raw)["print_count"].(float64); got != float64(i) {
			t.Errorf("print_count %d olmalı: %v", i, got)
		}
	}

	status, _ = testutil.DoJSON(t, app, http.MethodPut, "/invoices/yok/status?status_val=Ready", nil)
	if status != http.StatusNotFound {
		t.Errorf("bilinmeyen fatura için 404 bekleniyordu: %d", status)
	}
}

func TestPrintedInvoiceFrozen(t *testing.T) {
	app := testutil.SetupApp(t)
	outs := seedOuts(t, app, 10, 20)

	_, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
		"out_ids": []string{outs[0]},
	})
	inv := testutil.DecodeMap(t, raw)
	invID := inv["id"].(string)

	testutil.DoJSON(t, app, http.MethodPut, "/invoices/"+invID+"/status?status_val=Printed", nil)

	// kalem ekleme ve çıkarma artık her zaman reddedilir
	status, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/"+invID+"/items", map[string]any{
		"out_ids": []string{outs[1]},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("Printed faturaya kalem eklenememeli: %d %s", status, raw)
	}
	if got := outInvoiceID(t, app, outs[1]); got != nil {
		t.Errorf("reddedilen ekleme invoice_id değiştirmemeli: %v", got)
	}

	status, _ = testutil.DoJSON(t, app, http.MethodDelete, "/invoices/"+invID+"/items/"+outs[0], nil)
	if status != http.StatusBadRequest {
		t.Errorf("Printed faturadan kalem çıkarılamamalı: %d", status)
	}
	if got := outInvoiceID(t, app, outs[0]); got != invID {
		t.Errorf("reddedilen çıkarma invoice_id değiştirmemeli: %v", got)
	}
}

func TestInvoiceItems(t *testing.T) {
	app := testutil.SetupApp(t)
	outs := seedOuts(t, app, 10, 20, 30)

	_, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
		"out_ids": []string{outs[0]},
	})
	inv1 := testutil.DecodeMap(t, raw)["id"].(string)

	// boşta olan çıkış eklenebilir; kendi faturasındaki çıkış tekrar verilebilir
	status, raw := testutil.DoJSON(t, app, http.MethodPost, "/invoices/"+inv1+"/items", map[string]any{
		"out_ids": []string{outs[0], outs[1]},
	})
	if status != http.StatusOK {
		t.Fatalf("kalem ekleme: %d %s", status, raw)
	}

	// başka faturanın kalemi eklenemez
	_, raw = testutil.DoJSON(t, app, http.MethodPost, "/invoices/", map[string]any{
		"out_ids": []string{outs[2]},
	})
	inv2 := testutil.DecodeMap(t, raw)["id"].(string)

	status, raw = testutil.DoJSON(t, app, http.MethodPost, "/invoices/"+inv2+"/items", map[string]any{
		"out_ids": []string{outs[1]},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("başka faturanın kalemi reddedilmeliydi: %d %s", status, raw)
	}
	if msg := testutil.DecodeMap(t, raw)["error"].(string); !strings.Contains(msg, "already in another invoice") {
		t.Errorf("beklenmeyen hata mesajı: %q", msg)
	}
	if got := outInvoiceID(t, app, outs[1]); got != inv1 {
		t.Errorf("önceki atama bozulmamalı: %v", got)
	}

	// kalem çıkarma invoice_id'yi temizler
	status, raw = testutil.DoJSON(t, app, http.MethodDelete, "/invoices/"+inv1+"/items/"+outs[1], nil)
	if status != http.StatusOK {
		t.Fatalf("kalem çıkarma: %d %s", status, raw)
	}
	if got := outInvoiceID(t, app, outs[1]); got != nil {
		t.Errorf("çıkarılan kalem faturasız olmalı: %v", got)
	}

	// faturada olmayan kalem
	status, _ = testutil.DoJSON(t, app, http.MethodDelete, "/invoices/"+inv1+"/items/"+outs[2], nil)
	if status != http.StatusNotFound {
		t.Errorf("faturada olmayan kalem için 404 bekleniyordu: %d", status)
	}

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/invoices/yok/items", map[string]any{
		"out_ids": []string{outs[1]},
	})
	if status != http.StatusNotFound {
		t.Errorf("bilinmeyen fatura için 404 bekleniyordu: %d", status)
	}
}
