package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/furent/furniture-rental-backend/internal/store"
	"github.com/furent/furniture-rental-backend/internal/user"
)

type fakeDirectory struct{}

func (fakeDirectory) GetByID(id string) (user.User, error) {
	return user.User{ID: id, Nombre: "Cliente " + id}, nil
}

func makeApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	service := NewService(NewStoreRepository(store.NewMemory()))
	handler := NewHandler(service, fakeDirectory{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v, "admin": c.Get("X-Admin") == "true"}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/resenas/admin"))
	return app, service
}

func postJSON(t *testing.T, app *fiber.App, userID, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
		req.Header.Set("X-Admin", "true")
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, raw
}

func seedReview(t *testing.T, service *Service, userID, alquilerID, productoID string, rating int) Review {
	t.Helper()
	rev, err := service.Create(userID, "Cliente "+userID, CreateRequest{
		AlquilerID: alquilerID, ProductoID: productoID,
		Calificacion: rating, Comentario: "Comentario suficientemente largo",
	})
	if err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return rev
}

func TestCreateValidation(t *testing.T) {
	app, _ := makeApp(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"alquilerId":"a-1","productoId":"p-1","calificacion":5,"comentario":"Excelente sofá, muy cómodo"}`, fiber.StatusCreated},
		{"rating 0", `{"alquilerId":"a-1","productoId":"p-2","calificacion":0,"comentario":"Excelente sofá, muy cómodo"}`, fiber.StatusBadRequest},
		{"rating 6", `{"alquilerId":"a-1","productoId":"p-2","calificacion":6,"comentario":"Excelente sofá, muy cómodo"}`, fiber.StatusBadRequest},
		{"short comment", `{"alquilerId":"a-1","productoId":"p-2","calificacion":4,"comentario":"corto"}`, fiber.StatusBadRequest},
		{"no product", `{"alquilerId":"a-1","calificacion":4,"comentario":"Excelente sofá, muy cómodo"}`, fiber.StatusBadRequest},
		{"duplicate", `{"alquilerId":"a-1","productoId":"p-1","calificacion":3,"comentario":"Otra reseña del mismo"}`, fiber.StatusConflict},
	}
	for _, tc := range cases {
		code, raw := postJSON(t, app, "u-1", "/resenas/crear", tc.body)
		if code != tc.want {
			t.Fatalf("%s: got %d, want %d: %s", tc.name, code, tc.want, raw)
		}
	}

	// unauthenticated
	code, _ := postJSON(t, app, "", "/resenas/crear", `{}`)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("anonymous: got %d, want 401", code)
	}
}

func TestApprovedOnlyOnProductPageAndStats(t *testing.T) {
	app, service := makeApp(t)

	// three reviewers, same product
	r1 := seedReview(t, service, "u-a", "a-1", "p-9", 5)
	r2 := seedReview(t, service, "u-b", "a-2", "p-9", 4)
	seedReview(t, service, "u-c", "a-3", "p-9", 1)

	if _, err := service.Approve(r1.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := service.Approve(r2.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// third stays pending

	res, _ := app.Test(httptest.NewRequest("GET", "/resenas/producto/p-9", nil))
	raw, _ := io.ReadAll(res.Body)
	var listed struct {
		Resenas []Review `json:"resenas"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Resenas) != 2 {
		t.Fatalf("product page shows %d reviews, want 2 approved", len(listed.Resenas))
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/resenas/estadisticas/p-9", nil))
	raw2, _ := io.ReadAll(res2.Body)
	var statsOut struct {
		Estadisticas Stats `json:"estadisticas"`
	}
	if err := json.Unmarshal(raw2, &statsOut); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	// (5+4)/2 = 4.5
	if statsOut.Estadisticas.Promedio != 4.5 || statsOut.Estadisticas.Total != 2 {
		t.Fatalf("stats = %+v, want promedio 4.5 over 2", statsOut.Estadisticas)
	}
	if statsOut.Estadisticas.Distribucion[4] != 1 || statsOut.Estadisticas.Distribucion[3] != 1 {
		t.Fatalf("distribution = %v", statsOut.Estadisticas.Distribucion)
	}
}

func TestStatsRounding(t *testing.T) {
	_, service := makeApp(t)

	ratings := []int{5, 4, 4} // 13/3 = 4.333... → 4.3
	for i, rating := range ratings {
		rev := seedReview(t, service, fmt.Sprintf("u-%d", i), fmt.Sprintf("a-%d", i), "p-r", rating)
		if _, err := service.Approve(rev.ID); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}
	stats, err := service.StatsByProduct("p-r")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Promedio != 4.3 {
		t.Fatalf("promedio = %v, want 4.3", stats.Promedio)
	}
}

func TestGeneralFanOutSkipsReviewed(t *testing.T) {
	_, service := makeApp(t)

	seedReview(t, service, "u-g", "a-g", "p-1", 5)

	result, err := service.CreateGeneral("u-g", "Cliente", "a-g", []ProductRef{
		{ProductoID: "p-1"}, {ProductoID: "p-2"}, {ProductoID: "p-3"},
	}, 4, "Todo llegó en perfecto estado")
	if err != nil {
		t.Fatalf("CreateGeneral: %v", err)
	}
	if result.Creadas != 2 || result.Omitidas != 1 || result.Errores != 0 {
		t.Fatalf("result = %+v, want 2 creadas / 1 omitida", result)
	}
}

func TestIndividualEntriesValidatedPerProduct(t *testing.T) {
	_, service := makeApp(t)

	result, err := service.CreateIndividual("u-i", "Cliente", "a-i", []IndividualEntry{
		{ProductoID: "p-1", Calificacion: 5, Comentario: "Muy buena mesa de comedor"},
		{ProductoID: "p-2", Calificacion: 0, Comentario: "Muy buena mesa de comedor"}, // bad rating
		{ProductoID: "p-3", Calificacion: 3, Comentario: "corto"},                    // bad comment
	})
	if err != nil {
		t.Fatalf("CreateIndividual: %v", err)
	}
	if result.Creadas != 1 || result.Errores != 2 {
		t.Fatalf("result = %+v, want 1 creada / 2 errores", result)
	}
}

// failingRepository forces Save to fail for chosen review ids, exercising the
// best-effort bulk loop.
type failingRepository struct {
	Repository
	failIDs map[string]bool
}

func (f *failingRepository) Save(rev Review) error {
	if f.failIDs[rev.ID] {
		return errors.New("backend caído")
	}
	return f.Repository.Save(rev)
}

func TestBulkModerationBestEffort(t *testing.T) {
	inner := NewStoreRepository(store.NewMemory())
	failing := &failingRepository{Repository: inner, failIDs: map[string]bool{}}
	service := NewService(failing)

	const n, m = 5, 2
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rev, err := service.Create(fmt.Sprintf("u-%d", i), "Cliente", CreateRequest{
			AlquilerID: fmt.Sprintf("a-%d", i), ProductoID: "p-bulk",
			Calificacion: 4, Comentario: "Comentario suficientemente largo",
		})
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		ids = append(ids, rev.ID)
	}
	// force m of them to fail moderation
	failing.failIDs[ids[1]] = true
	failing.failIDs[ids[3]] = true

	result, err := service.ApproveAll()
	if err != nil {
		t.Fatalf("ApproveAll: %v", err)
	}
	if result.Procesadas != n-m || result.Errores != m {
		t.Fatalf("result = %+v, want %d procesadas / %d errores", result, n-m, m)
	}

	// the failed ones are still pending and show up on a reload
	pending, err := service.ListPending()
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != m {
		t.Fatalf("pending after bulk = %d, want %d", len(pending), m)
	}
}

func TestPendingCountAndModerationFlow(t *testing.T) {
	app, service := makeApp(t)

	r1 := seedReview(t, service, "u-m1", "a-m1", "p-m", 5)
	seedReview(t, service, "u-m2", "a-m2", "p-m", 2)

	req := httptest.NewRequest("GET", "/resenas/admin/pendientes/count", nil)
	req.Header.Set("X-User-ID", "admin")
	req.Header.Set("X-Admin", "true")
	res, _ := app.Test(req)
	raw, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(raw), `"count":2`) {
		t.Fatalf("count = %s, want 2", raw)
	}

	code, _ := postJSON(t, app, "admin", "/resenas/admin/rechazar/"+r1.ID, "")
	if code != fiber.StatusOK {
		t.Fatalf("reject: got %d", code)
	}
	// moderating twice is a conflict
	code2, _ := postJSON(t, app, "admin", "/resenas/admin/aprobar/"+r1.ID, "")
	if code2 != fiber.StatusConflict {
		t.Fatalf("re-moderate: got %d, want 409", code2)
	}

	code3, raw3 := postJSON(t, app, "admin", "/resenas/admin/responder/"+r1.ID, `{"respuesta":"Gracias por tu reseña"}`)
	if code3 != fiber.StatusOK || !strings.Contains(string(raw3), "Gracias por tu reseña") {
		t.Fatalf("reply: %d %s", code3, raw3)
	}
}

func TestReviewedProductsForRental(t *testing.T) {
	_, service := makeApp(t)

	seedReview(t, service, "u-r", "a-r", "p-1", 5)
	seedReview(t, service, "u-r", "a-r", "p-2", 4)
	seedReview(t, service, "u-r", "a-otro", "p-3", 3)

	ids, err := service.ReviewedProducts("a-r", "u-r")
	if err != nil {
		t.Fatalf("ReviewedProducts: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want p-1 and p-2 only", ids)
	}
}
