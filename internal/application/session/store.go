// Package session es el dueño del ciclo de vida de autenticación del panel.
//
// Máquina de estados: restoring (inicial) → authenticated | unauthenticated.
// El token vive en el cliente REST y en el almacenamiento durable en lockstep;
// el usuario actual vive aquí. La restauración es atómica: o quedan token y
// usuario, o no queda ninguno.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/domain"
	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/rest"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/storage"
	"github.com/jhoicas/supermercado-admin/pkg/logger"
)

// State estado observable de la sesión.
type State int

const (
	StateRestoring State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Rutas de navegación de la aplicación.
const (
	RouteDashboard = "/"
	RouteLogin     = "/login"
)

// Notifier superficie de notificaciones al usuario (los toasts del panel).
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// Navigator navegación entre pantallas. Replace sustituye la entrada actual
// del historial para que "atrás" no regrese a una pantalla protegida.
type Navigator interface {
	Go(route string)
	Replace(route string)
}

// Store almacén de sesión. Se construye una vez al arrancar el proceso y vive
// hasta el final; los dependientes observan transiciones vía Subscribe en
// lugar de consultar por sondeo.
type Store struct {
	api     *rest.Client
	storage *storage.Store
	notify  Notifier
	nav     Navigator
	log     *logger.Logger

	mu        sync.RWMutex
	state     State
	user      *entity.User
	loading   bool
	ephemeral bool
	subs      []func(State)
}

// New construye el almacén en estado restoring y se suscribe al evento de
// no-autorizado del cliente REST: un 401 limpia el token en el cliente y
// aquí se suelta el usuario en el mismo instante, no en el próximo render.
func New(api *rest.Client, st *storage.Store, notify Notifier, nav Navigator, log *logger.Logger) *Store {
	s := &Store{
		api:     api,
		storage: st,
		notify:  notify,
		nav:     nav,
		log:     log,
		state:   StateRestoring,
		loading: true,
	}
	api.OnUnauthorized(s.onUnauthorized)
	return s
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// State devuelve el estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User devuelve el usuario autenticado o nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated indica si hay un usuario con sesión válida.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsLoading es true solo durante la restauración inicial y durante un
// login/register en vuelo.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registra un observador de transiciones de estado.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// Restore intenta levantar la sesión persistida. Si existen token y usuario y
// el usuario parsea, transiciona a authenticated; cualquier otra combinación
// limpia los restos y transiciona a unauthenticated. Nunca deja token sin
// usuario ni usuario sin token.
func (s *Store) Restore() {
	token, _ := s.storage.LoadToken()
	user, _ := s.storage.LoadUser()

	if token == "" || user == nil {
		s.discardSession()
		s.transition(StateUnauthenticated, nil, false)
		return
	}

	if expired(token) {
		// Un token ya vencido garantizaría un 401 en la primera petición;
		// se descarta durante la restauración.
		s.log.Info().Msg("session: token persistido expirado, se descarta")
		s.discardSession()
		s.transition(StateUnauthenticated, nil, false)
		return
	}

	s.api.SetToken(token)
	s.log.Debug().Str("email", user.Email).Msg("session: sesión restaurada")
	s.transition(StateAuthenticated, user, false)
}

// Login autentica contra POST /auth/staff/login. Si falla, el estado previo
// queda intacto (sin escrituras parciales de token o usuario). Con
// rememberMe en false la sesión es efímera: el token persistido se elimina
// en Close, el equivalente del cierre del navegador.
func (s *Store) Login(ctx context.Context, email, password string, rememberMe bool) error {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.api.Post(ctx, "/auth/staff/login", dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.notify.Error("Error de inicio de sesión", err.Error())
		return err
	}

	payload, _ := dto.Unwrap(raw)
	var data dto.LoginData
	if err := json.Unmarshal(payload, &data); err != nil || data.Token == "" {
		s.notify.Error("Error de inicio de sesión", "respuesta de login inválida")
		return fmt.Errorf("session: respuesta de login inválida: %w", domain.ErrServer)
	}

	s.api.SetToken(data.Token)
	if err := s.storage.SaveUser(&data.User); err != nil {
		s.log.Warn().Err(err).Msg("session: no se pudo persistir el usuario")
	}

	s.mu.Lock()
	s.ephemeral = !rememberMe
	s.mu.Unlock()

	s.transition(StateAuthenticated, &data.User, false)
	s.notify.Success("Inicio de sesión", "Bienvenido, "+data.User.Name)
	s.nav.Go(RouteDashboard)
	return nil
}

// Register siempre falla: no existe endpoint público de registro de staff.
// No muta el estado de la sesión.
func (s *Store) Register(_ context.Context, _ dto.RegisterData) error {
	s.notify.Error("Registro no disponible", "Contacte a un administrador para crear una cuenta de staff.")
	return domain.ErrRegistrationUnavailable
}

// Logout cierra la sesión. Es idempotente: repetirlo deja el mismo estado
// terminal (sin token, sin usuario).
func (s *Store) Logout() {
	s.api.ClearToken()
	s.discardUser()
	s.transition(StateUnauthenticated, nil, false)
	s.notify.Success("Sesión cerrada", "Has cerrado sesión correctamente.")
	s.nav.Go(RouteLogin)
}

// Me refresca el usuario actual desde GET /auth/staff/me y lo persiste.
func (s *Store) Me(ctx context.Context) (*entity.User, error) {
	raw, err := s.api.Get(ctx, "/auth/staff/me")
	if err != nil {
		return nil, err
	}
	payload, _ := dto.Unwrap(raw)
	var u entity.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, fmt.Errorf("session: decodificar perfil: %w", domain.ErrServer)
	}
	if err := s.storage.SaveUser(&u); err != nil {
		s.log.Warn().Err(err).Msg("session: no se pudo persistir el usuario")
	}
	s.transition(s.State(), &u, false)
	return &u, nil
}

// Close limpieza de fin de proceso. Para sesiones efímeras (rememberMe en
// false) elimina el token persistido, de modo que no sobreviva al reinicio.
func (s *Store) Close() {
	s.mu.RLock()
	ephemeral := s.ephemeral
	s.mu.RUnlock()
	if ephemeral {
		if err := s.storage.ClearToken(); err != nil {
			s.log.Warn().Err(err).Msg("session: no se pudo eliminar el token efímero")
		}
	}
}

// ── Interno ───────────────────────────────────────────────────────────────────

// onUnauthorized reacciona al 401 detectado por el cliente REST. El token ya
// fue limpiado allí; aquí se suelta el usuario sincrónicamente.
func (s *Store) onUnauthorized() {
	if s.State() != StateAuthenticated {
		return
	}
	s.log.Info().Msg("session: 401 del backend, sesión invalidada")
	s.discardUser()
	s.transition(StateUnauthenticated, nil, false)
}

func (s *Store) discardUser() {
	if err := s.storage.ClearUser(); err != nil {
		s.log.Warn().Err(err).Msg("session: no se pudo limpiar el usuario persistido")
	}
}

// discardSession limpia atómicamente token y usuario persistidos junto con el
// token en memoria del cliente.
func (s *Store) discardSession() {
	s.api.ClearToken()
	s.discardUser()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// transition aplica el nuevo estado y notifica a los suscriptores fuera del lock.
func (s *Store) transition(state State, user *entity.User, loading bool) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.loading = loading
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

// expired inspecciona el claim exp del token sin verificar la firma; la
// verificación real es del backend.
func expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		// Un token opaco (no JWT) no se puede inspeccionar; se deja pasar.
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
