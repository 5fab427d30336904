// Package storage persiste la sesión (token y usuario) en disco, el análogo
// durable del almacenamiento local del navegador. El contrato es deliberado:
// un valor ausente o ilegible bajo cualquiera de las dos claves se trata como
// "sin sesión", nunca como error.
package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/pkg/config"
)

// Nombres de archivo bajo el directorio de sesión; espejo de las claves
// admin_token / admin_user del frontend original.
const (
	tokenFile = "admin_token"
	userFile  = "admin_user.json"
)

// Store almacenamiento durable de la sesión. Si se configuró una clave,
// los archivos se cifran en reposo con ChaCha20-Poly1305.
type Store struct {
	dir  string
	aead cipher.AEAD
}

// New prepara el directorio de sesión (0700) y el cifrado opcional.
func New(cfg config.SessionConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: crear directorio de sesión: %w", err)
	}
	s := &Store{dir: cfg.Dir}
	key, err := cfg.KeyBytes()
	if err != nil {
		return nil, err
	}
	if key != nil {
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("storage: inicializar cifrado: %w", err)
		}
		s.aead = aead
	}
	return s, nil
}

// ── Token ─────────────────────────────────────────────────────────────────────

// SaveToken escribe el bearer token; la escritura es síncrona e inmediata.
func (s *Store) SaveToken(token string) error {
	return s.write(tokenFile, []byte(token))
}

// LoadToken devuelve el token persistido, o "" si no existe o no se puede leer.
func (s *Store) LoadToken() (string, error) {
	b, ok := s.read(tokenFile)
	if !ok {
		return "", nil
	}
	return string(b), nil
}

// ClearToken elimina el token persistido.
func (s *Store) ClearToken() error {
	return s.remove(tokenFile)
}

// ── Usuario ───────────────────────────────────────────────────────────────────

// SaveUser serializa y escribe el registro del usuario actual.
func (s *Store) SaveUser(u *entity.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("storage: serializar usuario: %w", err)
	}
	return s.write(userFile, b)
}

// LoadUser devuelve el usuario persistido, o nil si no existe o no parsea.
func (s *Store) LoadUser() (*entity.User, error) {
	b, ok := s.read(userFile)
	if !ok {
		return nil, nil
	}
	var u entity.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// ClearUser elimina el usuario persistido.
func (s *Store) ClearUser() error {
	return s.remove(userFile)
}

// Clear elimina token y usuario.
func (s *Store) Clear() error {
	errTok := s.remove(tokenFile)
	errUsr := s.remove(userFile)
	if errTok != nil {
		return errTok
	}
	return errUsr
}

// ── E/S ───────────────────────────────────────────────────────────────────────

func (s *Store) write(name string, plain []byte) error {
	data := plain
	if s.aead != nil {
		nonce := make([]byte, s.aead.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("storage: generar nonce: %w", err)
		}
		data = append(nonce, s.aead.Seal(nil, nonce, plain, nil)...)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	return nil
}

// read devuelve el contenido en claro y si el valor existe y es legible.
func (s *Store) read(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, false
	}
	if s.aead == nil {
		return data, true
	}
	if len(data) < s.aead.NonceSize() {
		return nil, false
	}
	nonce, sealed := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, false
	}
	return plain, true
}

func (s *Store) remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: eliminar %s: %w", name, err)
	}
	return nil
}
