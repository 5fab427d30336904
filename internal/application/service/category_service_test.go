package service_test

import (
	"context"
	"encoding/json"
	"net"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/application/service"
	"github.com/jhoicas/supermercado-admin/internal/domain"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/rest"
	"github.com/jhoicas/supermercado-admin/pkg/config"
	"github.com/jhoicas/supermercado-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	token string
}

func (m *memStore) SaveToken(token string) error { m.token = token; return nil }
func (m *memStore) LoadToken() (string, error)   { return m.token, nil }
func (m *memStore) ClearToken() error            { m.token = ""; return nil }

// backend app Fiber con un contador de peticiones recibidas, para poder
// afirmar que la validación local corta antes de tocar la red.
type backend struct {
	app   *fiber.App
	calls atomic.Int32
}

func newBackend() *backend {
	b := &backend{app: fiber.New()}
	b.app.Use(func(c *fiber.Ctx) error {
		b.calls.Add(1)
		return c.Next()
	})
	return b
}

func (b *backend) start(t *testing.T) *rest.Client {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = b.app.Listener(ln) }()
	t.Cleanup(func() { _ = b.app.Shutdown() })
	return rest.NewClient(
		config.APIConfig{BaseURL: "http://" + ln.Addr().String(), TimeoutSeconds: 5},
		&memStore{}, logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación local antes de la red
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryService_CreateValidaAntesDeLaRed(t *testing.T) {
	casos := []struct {
		nombre string
		form   dto.CategoryForm
	}{
		{"título vacío", dto.CategoryForm{Title: "", Level: 1}},
		{"título solo espacios", dto.CategoryForm{Title: "   ", Level: 1}},
		{"nivel cero", dto.CategoryForm{Title: "Lácteos", Level: 0}},
		{"nivel fuera de rango", dto.CategoryForm{Title: "Lácteos", Level: 4}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			b := newBackend()
			svc := service.NewCategoryService(b.start(t))

			_, err := svc.Create(context.Background(), tc.form)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualValues(t, 0, b.calls.Load(),
				"un formulario inválido no debe generar tráfico de red")
		})
	}
}

func TestCategoryService_CreateEmiteUnaSolaPeticionConTituloRecortado(t *testing.T) {
	b := newBackend()
	var gotBody atomic.Value
	b.app.Post("/admin/categories", func(c *fiber.Ctx) error {
		gotBody.Store(append([]byte(nil), c.Body()...))
		return c.JSON(fiber.Map{"data": fiber.Map{"category": fiber.Map{
			"id": 31, "title": "Dairy", "level": 1,
		}}})
	})
	svc := service.NewCategoryService(b.start(t))

	cat, err := svc.Create(context.Background(), dto.CategoryForm{Title: "  Dairy  ", Level: 1})
	require.NoError(t, err)

	assert.EqualValues(t, 1, b.calls.Load(), "exactamente una petición al backend")
	assert.Equal(t, 31, cat.ID)
	assert.Equal(t, "Dairy", cat.Title)

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody.Load().([]byte), &body))
	assert.Equal(t, "Dairy", body["title"], "el título viaja recortado")
	assert.Equal(t, float64(1), body["level"])
	assert.NotContains(t, body, "icon", "los opcionales ausentes se omiten del payload")
	assert.NotContains(t, body, "parent")
}

func TestCategoryService_UpdateSoloEnviaLosCamposDelPatch(t *testing.T) {
	b := newBackend()
	var gotBody atomic.Value
	b.app.Put("/admin/categories/9", func(c *fiber.Ctx) error {
		gotBody.Store(append([]byte(nil), c.Body()...))
		return c.JSON(fiber.Map{"data": fiber.Map{"category": fiber.Map{"id": 9, "title": "Bebidas"}}})
	})
	svc := service.NewCategoryService(b.start(t))

	title := " Bebidas "
	_, err := svc.Update(context.Background(), 9, dto.CategoryPatch{Title: &title})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody.Load().([]byte), &body))
	assert.Equal(t, map[string]any{"title": "Bebidas"}, body,
		"solo los campos presentes en el patch deben viajar")
}

func TestCategoryService_IDInvalido(t *testing.T) {
	b := newBackend()
	svc := service.NewCategoryService(b.start(t))

	_, errGet := svc.Get(context.Background(), 0)
	_, errUpd := svc.Update(context.Background(), -1, dto.CategoryPatch{})
	_, errDel := svc.Delete(context.Background(), 0)

	assert.ErrorIs(t, errGet, domain.ErrValidation)
	assert.ErrorIs(t, errUpd, domain.ErrValidation)
	assert.ErrorIs(t, errDel, domain.ErrValidation)
	assert.EqualValues(t, 0, b.calls.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tolerancia a las formas de respuesta
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryService_ListToleraLasTresFormas(t *testing.T) {
	casos := []struct {
		nombre string
		cuerpo string
	}{
		{"con sobre data", `{"data":{"categories":[{"id":1,"title":"Frutas","level":1}],"pagination":{"page":1,"limit":10,"total":1,"totalPages":1}}}`},
		{"plano sin sobre", `{"categories":[{"id":1,"title":"Frutas","level":1}]}`},
		{"arreglo desnudo", `[{"id":1,"title":"Frutas","level":1}]`},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			b := newBackend()
			cuerpo := tc.cuerpo
			b.app.Get("/categories", func(c *fiber.Ctx) error {
				c.Set("Content-Type", "application/json")
				return c.SendString(cuerpo)
			})
			svc := service.NewCategoryService(b.start(t))

			list, err := svc.List(context.Background(), dto.ListParams{})
			require.NoError(t, err)

			require.Len(t, list.Categories, 1)
			assert.Equal(t, "Frutas", list.Categories[0].Title)
		})
	}
}

func TestCategoryService_ListConFormaInesperadaDegradaAVacio(t *testing.T) {
	b := newBackend()
	b.app.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"otra_cosa": true}})
	})
	svc := service.NewCategoryService(b.start(t))

	list, err := svc.List(context.Background(), dto.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, list.Categories, "una forma inesperada nunca es error, es lista vacía")
}

func TestCategoryService_ListPropagaPaginacionYQuery(t *testing.T) {
	b := newBackend()
	var gotQuery atomic.Value
	b.app.Get("/categories", func(c *fiber.Ctx) error {
		gotQuery.Store(string(c.Request().URI().QueryString()))
		return c.JSON(fiber.Map{"data": fiber.Map{
			"categories": []fiber.Map{{"id": 2, "title": "Aseo", "level": 1}},
			"pagination": fiber.Map{"page": 2, "limit": 5, "total": 11, "totalPages": 3},
		}})
	})
	svc := service.NewCategoryService(b.start(t))

	list, err := svc.List(context.Background(), dto.ListParams{Page: 2, Limit: 5, Search: "aseo"})
	require.NoError(t, err)

	assert.Equal(t, "limit=5&page=2&search=aseo", gotQuery.Load())
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 3, list.Pagination.TotalPages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Árbol y raíces
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryService_TreeDecodificaHijosAnidados(t *testing.T) {
	b := newBackend()
	b.app.Get("/categories/tree", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"categories": []fiber.Map{
			{"id": 1, "title": "Abarrotes", "level": 1, "children": []fiber.Map{
				{"id": 4, "title": "Arroz", "level": 2, "parent": 1},
			}},
		}}})
	})
	svc := service.NewCategoryService(b.start(t))

	tree, err := svc.Tree(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Arroz", tree[0].Children[0].Title)
	assert.Equal(t, 2, tree[0].Children[0].Level)
}

func TestCategoryService_RootsFiltraPorNivel(t *testing.T) {
	b := newBackend()
	b.app.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"categories": []fiber.Map{
			{"id": 1, "title": "Abarrotes", "level": 1},
			{"id": 4, "title": "Arroz", "level": 2, "parent": 1},
		}}})
	})
	svc := service.NewCategoryService(b.start(t))

	roots, err := svc.Roots(context.Background())
	require.NoError(t, err)

	require.Len(t, roots, 1)
	assert.Equal(t, "Abarrotes", roots[0].Title)
}
