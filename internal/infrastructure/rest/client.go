// Package rest implementa el punto único de salida a la red del cliente:
// URL base y timeout desde configuración, inyección del bearer token,
// normalización de errores en APIError y verbos tipados sobre net/http.
//
// Un 401 del backend limpia el token como efecto secundario y notifica a los
// suscriptores de OnUnauthorized antes de devolver el error; es el único
// lugar donde la sesión se invalida implícitamente.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/supermercado-admin/pkg/config"
	"github.com/jhoicas/supermercado-admin/pkg/logger"
)

// maxBodyBytes límite de lectura del cuerpo de respuesta.
const maxBodyBytes = 10 << 20

// TokenStore persistencia durable del bearer token. Un valor ausente o
// ilegible se reporta como token vacío, nunca como error de sesión.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

// ProgressFunc recibe los bytes enviados y el total durante una subida.
type ProgressFunc func(sent, total int64)

// Client cliente HTTP del backend del supermercado. Es seguro para uso
// concurrente; cada petición es independiente (sin colas ni deduplicación).
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     *logger.Logger

	mu           sync.RWMutex
	token        string
	unauthorized []func()
}

// NewClient construye el cliente y carga ansiosamente el token persistido,
// de modo que las peticiones emitidas antes de que la sesión termine de
// restaurarse ya viajen autenticadas.
func NewClient(cfg config.APIConfig, store TokenStore, log *logger.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		store:   store,
		log:     log,
	}
	if tok, err := store.LoadToken(); err == nil && tok != "" {
		c.token = tok
	}
	return c
}

// ── Gestión del token ─────────────────────────────────────────────────────────

// Token devuelve el token actual ("" si no hay sesión).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken guarda el token en memoria, lo persiste y lo aplica a todas las
// peticiones futuras.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if err := c.store.SaveToken(token); err != nil {
		c.log.Warn().Err(err).Msg("rest: no se pudo persistir el token")
	}
}

// ClearToken elimina el token de memoria y del almacenamiento durable.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if err := c.store.ClearToken(); err != nil {
		c.log.Warn().Err(err).Msg("rest: no se pudo limpiar el token persistido")
	}
}

// OnUnauthorized registra un callback que se invoca sincrónicamente cuando el
// backend responde 401, después de limpiar el token. La sesión se suscribe
// aquí para soltar el usuario en el mismo instante.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = append(c.unauthorized, fn)
}

// ── Verbos ────────────────────────────────────────────────────────────────────

// Get emite un GET y devuelve el cuerpo decodificable de la respuesta 2xx.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// Post serializa payload como JSON y emite un POST.
func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json")
}

// Put serializa payload como JSON y emite un PUT.
func (c *Client) Put(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, body, "application/json")
}

// Patch serializa payload como JSON y emite un PATCH.
func (c *Client) Patch(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, path, body, "application/json")
}

// Delete emite un DELETE.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

// FilePart un archivo a incluir en una subida multipart.
type FilePart struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// UploadFile emite un POST multipart/form-data con campos y archivos,
// notificando el progreso de subida si onProgress no es nil.
func (c *Client) UploadFile(ctx context.Context, path string, fields map[string]string, files []FilePart, onProgress ProgressFunc) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("preparar formulario: %v", err)}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("preparar archivo %s: %v", f.FileName, err)}
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("leer archivo %s: %v", f.FileName, err)}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("cerrar formulario: %v", err)}
	}

	total := int64(buf.Len())
	var body io.Reader = &buf
	if onProgress != nil {
		body = &progressReader{r: &buf, total: total, notify: onProgress}
	}
	return c.do(ctx, http.MethodPost, path, body, w.FormDataContentType())
}

// ── Núcleo ────────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	start := time.Now()
	data, err := c.roundTrip(ctx, method, path, body, contentType)
	observeRequest(method, err, time.Since(start))
	return data, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("construir petición: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("rest: sin respuesta")
		return nil, &APIError{Kind: KindNetwork, Message: "error de red: sin respuesta del servidor"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "error de red: respuesta truncada"}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	msg := errorMessage(raw, resp.StatusCode)
	if resp.StatusCode == http.StatusUnauthorized {
		// Único punto de invalidación implícita de la sesión.
		c.ClearToken()
		c.notifyUnauthorized()
	}
	c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("rest: respuesta de error")
	return nil, &APIError{Kind: KindServer, Status: resp.StatusCode, Message: msg}
}

func (c *Client) notifyUnauthorized() {
	c.mu.RLock()
	subs := make([]func(), len(c.unauthorized))
	copy(subs, c.unauthorized)
	c.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// errorMessage extrae el campo message del cuerpo de error del backend,
// con mensaje genérico de respaldo.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("error del servidor (HTTP %d)", status)
}

func encodeJSON(payload any) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{Kind: KindRequest, Message: fmt.Sprintf("serializar cuerpo: %v", err)}
	}
	return bytes.NewReader(b), nil
}

// progressReader envuelve el cuerpo multipart y notifica bytes enviados.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	notify ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.notify(p.sent, p.total)
	}
	return n, err
}
