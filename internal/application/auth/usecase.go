package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/jwt"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

const defaultSessionTTL = 8 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	// SessionTTL duración de la sesión del servidor; el token nunca dura más que ella.
	SessionTTL time.Duration
}

// AuthUseCase login, canje de ID token, revalidación por petición y logout.
//
// El token solo identifica la sesión: en cada petición se vuelve a leer la sesión y el
// usuario, y el rol que cuenta es el del documento.
type AuthUseCase struct {
	provider ports.AuthProvider
	users    repository.UserRepository
	sessions repository.SessionStore
	jwtCfg   JWTConfig
	now      func() time.Time
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. now nil usa time.Now.
func NewAuthUseCase(provider ports.AuthProvider, users repository.UserRepository, sessions repository.SessionStore, jwtCfg JWTConfig, now func() time.Time, log *logger.Logger) *AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCase{provider: provider, users: users, sessions: sessions, jwtCfg: jwtCfg, now: now, log: log}
}

// Login verifica email/password con el proveedor y abre una sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	id, err := uc.provider.SignIn(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return nil, err
	}
	return uc.startSession(ctx, id)
}

// Exchange canjea un ID token obtenido por el cliente directamente del proveedor.
func (uc *AuthUseCase) Exchange(ctx context.Context, in dto.SessionExchangeRequest) (*dto.LoginResponse, error) {
	id, err := uc.provider.VerifyToken(ctx, in.IDToken)
	if err != nil {
		return nil, err
	}
	return uc.startSession(ctx, id)
}

func (uc *AuthUseCase) startSession(ctx context.Context, id *ports.AuthIdentity) (*dto.LoginResponse, error) {
	user, err := uc.users.Get(ctx, id.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// cuentas creadas fuera de la app: el perfil se busca por email
		if user, err = uc.users.GetByEmail(ctx, strings.ToLower(id.Email)); err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrUserDisabled
	}
	role := access.NormalizeRole(user.Role)
	if role == "" {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	ttl := uc.sessionTTL()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      role,
		BranchID:  user.BranchID,
		Name:      user.Name,
		Email:     user.Email,
		CSRFToken: newCSRFToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		UserID:    user.ID,
		BranchID:  user.BranchID,
		Role:      role,
		SessionID: sess.ID,
	}, int(ttl/time.Minute))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("uid", user.ID).Str("role", role).Str("provider", uc.provider.Name()).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		CSRFToken: sess.CSRFToken,
		ExpiresAt: sess.ExpiresAt,
		Redirect:  access.DashboardFor(role),
		User:      usecase.ToUserResponse(user),
	}, nil
}

// Authenticate valida el token, la sesión y el usuario. Devuelve la identidad con el rol
// vigente del documento de usuario.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*access.Principal, *entity.Session, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, nil, domain.ErrSessionExpired.WithCause(err)
	}
	sess, err := uc.sessions.Get(ctx, id.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil || sess.Expired(uc.now()) {
		return nil, nil, domain.ErrSessionExpired
	}
	if sess.UserID != id.UserID {
		return nil, nil, domain.ErrUnauthorized
	}
	user, err := uc.users.Get(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.Active {
		if err := uc.sessions.Delete(ctx, sess.ID); err != nil {
			uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("authenticate: no se pudo borrar la sesión")
		}
		if user == nil {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, domain.ErrUserDisabled
	}
	return &access.Principal{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      access.NormalizeRole(user.Role),
		BranchID:  user.BranchID,
		SessionID: sess.ID,
	}, sess, nil
}

// Check decisión de acceso para una sección. roles admite varios separados por coma;
// vacío solo exige una sesión válida.
func (uc *AuthUseCase) Check(p *access.Principal, roles string) dto.AuthCheckResponse {
	var required []string
	for _, r := range strings.Split(roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			required = append(required, r)
		}
	}
	if len(required) == 0 && p != nil {
		required = []string{p.Role}
	}
	res := access.CheckAny(p, required...)
	out := dto.AuthCheckResponse{Decision: string(res.Decision), Redirect: res.Redirect}
	if res.Allowed() {
		out.User = &dto.UserResponse{ID: p.UserID, Name: p.Name, Email: p.Email, Role: p.Role, BranchID: p.BranchID, Permissions: []string{}, Active: true}
	}
	return out
}

// Me perfil completo del usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, p *access.Principal) (*dto.UserResponse, error) {
	u, err := uc.users.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := usecase.ToUserResponse(u)
	return &resp, nil
}

// Logout borra la sesión (y con ella el token CSRF) y cierra la sesión en el proveedor.
// Siempre responde con la redirección al login, aunque falle alguno de los pasos.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID, userID string) dto.RedirectResponse {
	if sessionID != "" {
		if err := uc.sessions.Delete(ctx, sessionID); err != nil {
			uc.log.Warn().Err(err).Str("session_id", sessionID).Msg("logout: no se pudo borrar la sesión")
		}
	}
	if userID != "" {
		if err := uc.provider.SignOut(ctx, userID); err != nil {
			uc.log.Warn().Err(err).Str("uid", userID).Msg("logout: el proveedor no cerró la sesión")
		}
	}
	return dto.RedirectResponse{Redirect: access.LoginPath}
}

// VerifyCSRF compara el token recibido con el de la sesión.
func VerifyCSRF(sess *entity.Session, token string) error {
	if sess == nil || token == "" || sess.CSRFToken == "" {
		return domain.ErrCSRF
	}
	if subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(token)) != 1 {
		return domain.ErrCSRF
	}
	return nil
}

func (uc *AuthUseCase) sessionTTL() time.Duration {
	ttl := uc.jwtCfg.SessionTTL
	limit := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	if ttl <= 0 || (limit > 0 && ttl > limit) {
		ttl = limit
	}
	if ttl < time.Minute {
		ttl = defaultSessionTTL
	}
	return ttl
}

func newCSRFToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
