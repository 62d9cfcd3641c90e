package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/furent/furniture-rental-backend/internal/catalog"
	"github.com/furent/furniture-rental-backend/internal/store"
)

func makeApp(t *testing.T) (*fiber.App, *catalog.Service) {
	t.Helper()
	catalogSvc := catalog.NewService(catalog.NewStoreRepository(store.NewMemory()))
	service := NewService(NewInMemoryRepository(), catalogSvc)
	handler := NewHandler(service)

	app := fiber.New()
	// stand-in for the jwt middleware: X-User-ID becomes the token claim
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app, catalogSvc
}

func TestCartPreviewFlow(t *testing.T) {
	app, catalogSvc := makeApp(t)

	p, err := catalogSvc.CreateProduct(catalog.Product{Nombre: "Sofá", Precio: 50000, Categoria: "Salas"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// unauthenticated requests are rejected
	res, _ := app.Test(httptest.NewRequest("GET", "/carrito/datos", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// one item, qty 1, 3 rental days
	body := `{"productoId":"` + p.ID + `","cantidad":1,"diasAlquiler":3}`
	req := httptest.NewRequest("POST", "/carrito/agregar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u-1")
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("add: expected 200, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("GET", "/carrito/datos", nil)
	req3.Header.Set("X-User-ID", "u-1")
	res3, _ := app.Test(req3)
	var summary struct {
		Items           []Item  `json:"items"`
		Total           float64 `json:"total"`
		TotalFormateado string  `json:"totalFormateado"`
	}
	raw, _ := io.ReadAll(res3.Body)
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	// 50000 * 1 * 3
	if summary.Total != 150000 {
		t.Fatalf("total = %v, want 150000", summary.Total)
	}
	if summary.TotalFormateado != "$150.000,00" {
		t.Fatalf("totalFormateado = %q, want $150.000,00", summary.TotalFormateado)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(summary.Items))
	}

	// remove it, preview goes back to the empty state
	rm := `{"productoId":"` + p.ID + `"}`
	req4 := httptest.NewRequest("POST", "/carrito/eliminar", strings.NewReader(rm))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "u-1")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("remove: expected 200, got %d", res4.StatusCode)
	}

	res5, _ := app.Test(req3)
	raw5, _ := io.ReadAll(res5.Body)
	var after struct {
		Items []Item  `json:"items"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(raw5, &after); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(after.Items) != 0 || after.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", after)
	}
}

func TestCartCountAndClear(t *testing.T) {
	app, catalogSvc := makeApp(t)

	p1, _ := catalogSvc.CreateProduct(catalog.Product{Nombre: "Silla", Precio: 8000, Categoria: "Comedor"})
	p2, _ := catalogSvc.CreateProduct(catalog.Product{Nombre: "Mesa", Precio: 20000, Categoria: "Comedor"})

	for _, add := range []string{
		`{"productoId":"` + p1.ID + `","cantidad":4,"diasAlquiler":2}`,
		`{"productoId":"` + p2.ID + `","cantidad":1,"diasAlquiler":2}`,
	} {
		req := httptest.NewRequest("POST", "/carrito/agregar", strings.NewReader(add))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "u-9")
		if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
			t.Fatalf("add: expected 200, got %d", res.StatusCode)
		}
	}

	req := httptest.NewRequest("GET", "/carrito/cantidad", nil)
	req.Header.Set("X-User-ID", "u-9")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"cantidadItems":5`) {
		t.Fatalf("expected 5 items, got %s", string(b))
	}

	reqClear := httptest.NewRequest("POST", "/carrito/vaciar", nil)
	reqClear.Header.Set("X-User-ID", "u-9")
	if res, _ := app.Test(reqClear); res.StatusCode != fiber.StatusOK {
		t.Fatalf("clear: expected 200, got %d", res.StatusCode)
	}

	res2, _ := app.Test(req)
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"cantidadItems":0`) {
		t.Fatalf("expected empty cart after clear, got %s", string(b2))
	}
}

func TestSubtotal(t *testing.T) {
	item := Item{Precio: 50000, Cantidad: 2, DiasAlquiler: 3}
	if got := Subtotal(item); got != 300000 {
		t.Fatalf("Subtotal = %v, want 300000", got)
	}
}
