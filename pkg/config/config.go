package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del backend REST del supermercado.
type APIConfig struct {
	BaseURL        string // URL base del backend, incluye el prefijo de versión (ej. https://.../v1)
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red como duración.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig configuración de la persistencia local de la sesión.
// Si Key no está vacío debe ser una clave hex de 32 bytes; los archivos de
// sesión se cifran en reposo con ChaCha20-Poly1305.
type SessionConfig struct {
	Dir string
	Key string
}

// KeyBytes decodifica la clave de cifrado. Devuelve nil si no hay clave configurada.
func (c SessionConfig) KeyBytes() ([]byte, error) {
	if c.Key == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(c.Key)
	if err != nil {
		return nil, fmt.Errorf("config: SESSION_KEY no es hex válido: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("config: SESSION_KEY debe ser de 32 bytes, tiene %d", len(b))
	}
	return b, nil
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "supermercado-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "https://mhjapi.up.railway.app/v1"),
			TimeoutSeconds: getInt(v, "HTTP_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			Dir: getString(v, "SESSION_DIR", defaultSessionDir()),
			Key: getString(v, "SESSION_KEY", ""),
		},
	}

	return cfg, nil
}

// defaultSessionDir devuelve el directorio de sesión por defecto bajo la
// configuración del usuario; si no se puede resolver, un directorio relativo.
func defaultSessionDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".supermercado-admin"
	}
	return filepath.Join(base, "supermercado-admin")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			// Un valor ilegible cae al default: un cero silencioso aquí
			// dejaría, por ejemplo, un http.Client sin timeout.
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
