package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/store"
)

func newTestApp() (*fiber.App, *Service) {
	repo := NewStoreRepository(store.NewMemory())
	service := NewService(repo)
	handler := NewHandler(service)
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/admin"))
	return app, service
}

func TestProductCRUD(t *testing.T) {
	app, _ := newTestApp()

	body := `{"nombreProducto":"Sofá chesterfield","descripcionProducto":"3 puestos","precioProducto":50000,"categoriaProducto":"Salas","stock":4}`
	req := httptest.NewRequest("POST", "/admin/productos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: expected 201, got %d", res.StatusCode)
	}

	var created struct {
		Producto Product `json:"producto"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Producto.ID == "" {
		t.Fatal("created product has no id")
	}
	if created.Producto.Estado != ProductActive {
		t.Fatalf("new product state = %q, want ACTIVO", created.Producto.Estado)
	}

	// list includes it
	res2, _ := app.Test(httptest.NewRequest("GET", "/productos", nil))
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "chesterfield") {
		t.Fatalf("list missing created product: %s", string(b2))
	}

	// update
	update := `{"nombreProducto":"Sofá chesterfield","descripcionProducto":"3 puestos","precioProducto":60000,"categoriaProducto":"Salas","stock":4,"estado":"ACTIVO"}`
	req3 := httptest.NewRequest("PUT", "/admin/productos/"+created.Producto.ID, strings.NewReader(update))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("update: expected 200, got %d", res3.StatusCode)
	}

	// delete, then 404 on fetch
	res4, _ := app.Test(httptest.NewRequest("DELETE", "/admin/productos/"+created.Producto.ID, nil))
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: expected 200, got %d", res4.StatusCode)
	}
	res5, _ := app.Test(httptest.NewRequest("GET", "/productos/"+created.Producto.ID, nil))
	if res5.StatusCode != fiber.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", res5.StatusCode)
	}
}

func TestCreateProductRejectsBadData(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest("POST", "/admin/productos", strings.NewReader(`{"nombreProducto":"","precioProducto":100}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("empty name: expected 400, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("POST", "/admin/productos", strings.NewReader(`{"nombreProducto":"Mesa","precioProducto":-5}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("negative price: expected 400, got %d", res2.StatusCode)
	}
}

func TestCategoryCounts(t *testing.T) {
	app, service := newTestApp()

	if _, err := service.CreateCategory(Category{Nombre: "Salas"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for _, name := range []string{"Sofá", "Mesa de centro"} {
		if _, err := service.CreateProduct(Product{Nombre: name, Precio: 1000, Categoria: "Salas"}); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	res, _ := app.Test(httptest.NewRequest("GET", "/categorias", nil))
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"cantidadProductos":2`) {
		t.Fatalf("expected category count 2, got %s", string(b))
	}
}
