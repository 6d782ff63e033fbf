package auth

import (
	"context"
	"time"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/identity"
	"github.com/jhoicas/controle-estoque/internal/application/role"
	"github.com/jhoicas/controle-estoque/internal/application/session"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/pkg/jwt"
)

var _ session.Authenticator = (*AuthUseCase)(nil)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación contra el Identity Store local: registro y login.
type AuthUseCase struct {
	identities *identity.Store
	resolver   role.Resolver
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identities *identity.Store, resolver role.Resolver, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identities: identities, resolver: resolver, jwtCfg: jwtCfg}
}

// Register da de alta un principal con rol user.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	p, err := uc.identities.Register(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	out := dto.FromPrincipal(p)
	return &out, nil
}

// Authenticate verifica nombre/contraseña, resuelve el rol y emite el JWT.
// Implementa session.Authenticator para el backend local.
func (uc *AuthUseCase) Authenticate(ctx context.Context, name, credential string) (*entity.Session, error) {
	p, err := uc.identities.Authenticate(ctx, name, credential)
	if err != nil {
		return nil, err
	}
	r, err := uc.resolver.Resolve(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, p.Name, string(r), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &entity.Session{
		Username:  p.Name,
		Role:      r,
		Token:     token,
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: exp,
	}, nil
}

// Login variante HTTP de Authenticate.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	s, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Access: s.Token, ExpiresAt: s.ExpiresAt}, nil
}
