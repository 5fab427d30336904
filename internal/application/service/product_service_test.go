package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/application/service"
	"github.com/jhoicas/supermercado-admin/internal/domain"
	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
)

// formularioValido formulario mínimo que pasa la validación local.
func formularioValido() dto.ProductForm {
	return dto.ProductForm{Name: "Leche entera 1L", SKU: "LCH-001", Category: "3"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación local antes de la red
// ──────────────────────────────────────────────────────────────────────────────

func TestProductService_CreateValidaAntesDeLaRed(t *testing.T) {
	casos := []struct {
		nombre  string
		mutador func(*dto.ProductForm)
	}{
		{"sin SKU", func(f *dto.ProductForm) { f.SKU = "  " }},
		{"sin nombre", func(f *dto.ProductForm) { f.Name = "" }},
		{"categoría vacía", func(f *dto.ProductForm) { f.Category = "" }},
		{"categoría no numérica", func(f *dto.ProductForm) { f.Category = "lacteos" }},
		{"categoría no positiva", func(f *dto.ProductForm) { f.Category = "0" }},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			b := newBackend()
			svc := service.NewProductService(b.start(t))
			form := formularioValido()
			tc.mutador(&form)

			_, err := svc.Create(context.Background(), form)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualValues(t, 0, b.calls.Load(),
				"un formulario inválido no debe generar tráfico de red")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción del payload
// ──────────────────────────────────────────────────────────────────────────────

func TestProductService_CreateAplicaDefaultsDeBanderas(t *testing.T) {
	b := newBackend()
	var gotBody atomic.Value
	b.app.Post("/admin/products", func(c *fiber.Ctx) error {
		gotBody.Store(append([]byte(nil), c.Body()...))
		return c.JSON(fiber.Map{"data": fiber.Map{"product": fiber.Map{"id": 50, "uiCode": "LCH-001", "title": "Leche entera 1L"}}})
	})
	svc := service.NewProductService(b.start(t))

	p, err := svc.Create(context.Background(), formularioValido())
	require.NoError(t, err)
	assert.Equal(t, 50, p.ID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody.Load().([]byte), &body))

	assert.Equal(t, "LCH-001", body["uiCode"])
	assert.Equal(t, "Leche entera 1L", body["title"])
	assert.Equal(t, float64(3), body["category"])

	// Defaults cuando el formulario deja las banderas en blanco.
	assert.Equal(t, float64(1), body["status"])
	assert.Equal(t, float64(0), body["weighted"])
	assert.Equal(t, float64(1), body["trackInventory"])
	assert.Equal(t, float64(1), body["discount"])
	assert.Equal(t, float64(1), body["points"])
	assert.Equal(t, float64(1), body["isReturnable"])

	// Opcionales ausentes: ni siquiera viajan como null.
	assert.NotContains(t, body, "brand")
	assert.NotContains(t, body, "expiry")
	assert.NotContains(t, body, "image")
}

func TestProductService_CreateRespetaBanderasExplicitas(t *testing.T) {
	b := newBackend()
	var gotBody atomic.Value
	b.app.Post("/admin/products", func(c *fiber.Ctx) error {
		gotBody.Store(append([]byte(nil), c.Body()...))
		return c.JSON(fiber.Map{"data": fiber.Map{"product": fiber.Map{"id": 51}}})
	})
	svc := service.NewProductService(b.start(t))

	form := formularioValido()
	form.Status = "0"
	form.Weighted = "1"
	form.Discount = "0"
	form.Expiry = "30"
	form.Brand = "8"

	_, err := svc.Create(context.Background(), form)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody.Load().([]byte), &body))
	assert.Equal(t, float64(0), body["status"])
	assert.Equal(t, float64(1), body["weighted"])
	assert.Equal(t, float64(0), body["discount"])
	assert.Equal(t, float64(30), body["expiry"])
	assert.Equal(t, float64(8), body["brand"])
}

func TestProductService_CreateCodificaLaImagenComoDataURL(t *testing.T) {
	b := newBackend()
	var gotBody atomic.Value
	b.app.Post("/admin/products", func(c *fiber.Ctx) error {
		gotBody.Store(append([]byte(nil), c.Body()...))
		return c.JSON(fiber.Map{"data": fiber.Map{"product": fiber.Map{"id": 52}}})
	})
	svc := service.NewProductService(b.start(t))

	form := formularioValido()
	form.Image = []byte{0x89, 0x50, 0x4e, 0x47}
	form.ImageMIME = "image/png"

	_, err := svc.Create(context.Background(), form)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody.Load().([]byte), &body))
	img, ok := body["image"].(string)
	require.True(t, ok, "la imagen debe viajar como cadena")
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"), "debe ser un data URL con el MIME informado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestProductService_ListDecodificaRelacionesIncrustadas(t *testing.T) {
	b := newBackend()
	b.app.Get("/products", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"products": []fiber.Map{
			{
				"id": 50, "uiCode": "LCH-001", "title": "Leche entera 1L", "status": 1,
				"category": fiber.Map{"id": 3, "title": "Lácteos"},
				"brand":    fiber.Map{"id": 8, "title": "Alpina"},
			},
		}}})
	})
	svc := service.NewProductService(b.start(t))

	list, err := svc.List(context.Background(), dto.ListParams{})
	require.NoError(t, err)

	require.Len(t, list.Products, 1)
	p := list.Products[0]
	require.NotNil(t, p.Category)
	assert.Equal(t, "Lácteos", p.Category.Title)
	require.NotNil(t, p.Brand)
	assert.Equal(t, 8, p.Brand.ID)
	assert.Nil(t, p.Company)
}

func TestProductService_GetToleraObjetoSinSobre(t *testing.T) {
	b := newBackend()
	b.app.Get("/products/50", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": 50, "uiCode": "LCH-001", "title": "Leche entera 1L"})
	})
	svc := service.NewProductService(b.start(t))

	p, err := svc.Get(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, "LCH-001", p.UICode)
}

func TestProductService_DeleteDevuelveElMensajeDelBackend(t *testing.T) {
	casos := []struct {
		nombre   string
		cuerpo   string
		esperado string
	}{
		{"mensaje con sobre", `{"data":{"message":"Producto eliminado correctamente"}}`, "Producto eliminado correctamente"},
		{"mensaje plano", `{"message":"Producto eliminado"}`, "Producto eliminado"},
		{"sin mensaje", `{}`, ""},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			b := newBackend()
			cuerpo := tc.cuerpo
			b.app.Delete("/admin/products/50", func(c *fiber.Ctx) error {
				c.Set("Content-Type", "application/json")
				return c.SendString(cuerpo)
			})
			svc := service.NewProductService(b.start(t))

			msg, err := svc.Delete(context.Background(), 50)
			require.NoError(t, err)
			assert.Equal(t, tc.esperado, msg)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda local
// ──────────────────────────────────────────────────────────────────────────────

func TestProductService_FilterIgnoraMayusculasYDiacriticos(t *testing.T) {
	svc := service.NewProductService(nil)
	products := []entity.Product{
		{ID: 1, UICode: "AZU-01", Title: "Azúcar morena"},
		{ID: 2, UICode: "CFE-02", Title: "Café molido"},
		{ID: 3, UICode: "ARR-03", Title: "Arroz blanco"},
	}

	assert.Len(t, svc.Filter(products, "azucar"), 1, "la búsqueda debe ignorar tildes")
	assert.Len(t, svc.Filter(products, "CAFÉ"), 1, "la búsqueda debe ignorar mayúsculas")
	assert.Len(t, svc.Filter(products, "arr"), 1)
	assert.Len(t, svc.Filter(products, "cfe-02"), 1, "también busca por código")
	assert.Len(t, svc.Filter(products, ""), 3, "consulta vacía devuelve todo")
	assert.Empty(t, svc.Filter(products, "pescado"))
}
