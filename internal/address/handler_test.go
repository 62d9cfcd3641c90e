package address

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/furent/furniture-rental-backend/internal/store"
)

func makeApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	service := NewService(NewStoreRepository(store.NewMemory()))
	handler := NewHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app, service
}

func TestAddressLifecycle(t *testing.T) {
	app, _ := makeApp(t)

	body := `{"nombreDireccion":"Casa","direccionCompleta":"Calle 45 #12-30","ciudad":"Bogotá","departamento":"Cundinamarca","telefono":"3001234567"}`
	req := httptest.NewRequest("POST", "/direcciones/crear", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: got %d", res.StatusCode)
	}
	var created struct {
		Direccion Address `json:"direccion"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Direccion.EsPrincipal {
		t.Fatal("first address should be principal")
	}

	// update it
	edit := `{"nombreDireccion":"Oficina","direccionCompleta":"Cra 7 #71-21","ciudad":"Bogotá","departamento":"Cundinamarca"}`
	reqEdit := httptest.NewRequest("POST", "/direcciones/editar/"+created.Direccion.ID, strings.NewReader(edit))
	reqEdit.Header.Set("Content-Type", "application/json")
	reqEdit.Header.Set("X-User-ID", "u-1")
	resEdit, _ := app.Test(reqEdit)
	rawEdit, _ := io.ReadAll(resEdit.Body)
	if resEdit.StatusCode != fiber.StatusOK || !strings.Contains(string(rawEdit), "Oficina") {
		t.Fatalf("edit: %d %s", resEdit.StatusCode, rawEdit)
	}

	reqDel := httptest.NewRequest("POST", "/direcciones/eliminar/"+created.Direccion.ID, nil)
	reqDel.Header.Set("X-User-ID", "u-1")
	if res, _ := app.Test(reqDel); res.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: got %d", res.StatusCode)
	}

	reqList := httptest.NewRequest("GET", "/direcciones/api/listar", nil)
	reqList.Header.Set("X-User-ID", "u-1")
	resList, _ := app.Test(reqList)
	rawList, _ := io.ReadAll(resList.Body)
	if !strings.Contains(string(rawList), `"direcciones":[]`) {
		t.Fatalf("list after delete: %s", rawList)
	}
}

func TestPrincipalPromotion(t *testing.T) {
	_, service := makeApp(t)

	first, err := service.Create("u-2", SaveRequest{Nombre: "Casa", Direccion: "Calle 1", Ciudad: "Cali", Departamento: "Valle"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := service.Create("u-2", SaveRequest{Nombre: "Finca", Direccion: "Km 4 vía norte", Ciudad: "Cali", Departamento: "Valle"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.SetPrincipal("u-2", second.ID); err != nil {
		t.Fatalf("set principal: %v", err)
	}
	addresses, _ := service.List("u-2")
	for _, addr := range addresses {
		if addr.ID == first.ID && addr.EsPrincipal {
			t.Fatal("old principal not cleared")
		}
	}

	// deleting the principal promotes the remaining address
	if err := service.Delete("u-2", second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	addresses, _ = service.List("u-2")
	if len(addresses) != 1 || !addresses[0].EsPrincipal {
		t.Fatalf("promotion failed: %+v", addresses)
	}
}

func TestCreateRequiresCoreFields(t *testing.T) {
	_, service := makeApp(t)
	if _, err := service.Create("u-3", SaveRequest{Nombre: "Casa"}); err != ErrMissingFields {
		t.Fatalf("got %v, want ErrMissingFields", err)
	}
}
