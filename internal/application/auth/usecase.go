package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y logout; ambos quedan en el log de auditoría.
type AuthUseCase struct {
	tx     ports.TxRunner
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica nombre/password, genera JWT y registra LOGIN.
// Usuario inexistente, inactivo o password incorrecto dan el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, domain.Validation("name y password son requeridos")
	}

	var out dto.LoginResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		user, err := r.Users.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return domain.ErrUnauthorized
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
			return domain.ErrUnauthorized
		}
		token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.IsAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return err
		}
		actor := entity.Actor{UserID: user.ID, Name: user.Name, IsAdmin: user.IsAdmin}
		if err := writeAuthEvent(ctx, r, actor, entity.ActionLogin, uc.now()); err != nil {
			return err
		}
		out = dto.LoginResponse{
			Token: token,
			User:  dto.MeResponse{ID: user.ID, Name: user.Name, IsAdmin: user.IsAdmin},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout registra LOGOUT. El token es stateless: el cliente lo descarta.
func (uc *AuthUseCase) Logout(ctx context.Context, actor entity.Actor) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		return writeAuthEvent(ctx, r, actor, entity.ActionLogout, uc.now())
	})
}

func writeAuthEvent(ctx context.Context, r ports.Repos, actor entity.Actor, action entity.AuditAction, now time.Time) error {
	return appaudit.Write(ctx, r.Audit, appaudit.Record{
		Actor:    actor,
		Action:   action,
		Entity:   entity.AuditAuth,
		EntityID: actor.UserID,
		Diff:     audit.Event{"name": actor.Name},
	}, now)
}
