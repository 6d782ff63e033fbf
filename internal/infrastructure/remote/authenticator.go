package remote

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/role"
	"github.com/jhoicas/controle-estoque/internal/application/session"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

var _ session.Authenticator = (*Authenticator)(nil)

// Authenticator login contra el backend: obtiene el token, consulta el perfil
// y resuelve el rol con la política configurada.
type Authenticator struct {
	client *Client
	policy role.Policy
	now    func() time.Time
}

// NewAuthenticator construye el autenticador remoto.
func NewAuthenticator(client *Client, policy role.Policy) *Authenticator {
	return &Authenticator{client: client, policy: policy, now: time.Now}
}

// Authenticate POST /api/token y luego GET /api/users/me con el token obtenido.
func (a *Authenticator) Authenticate(ctx context.Context, name, credential string) (*entity.Session, error) {
	name = strings.TrimSpace(name)
	var tok dto.TokenResponse
	if err := a.client.do(ctx, http.MethodPost, "/api/token", "", dto.TokenRequest{Username: name, Password: credential}, &tok); err != nil {
		return nil, err
	}

	var me dto.UserResponse
	if err := a.client.do(ctx, http.MethodGet, "/api/users/me", tok.Access, nil, &me); err != nil {
		return nil, err
	}
	username := me.Username
	if username == "" {
		username = name
	}

	return &entity.Session{
		Username:  username,
		Role:      a.policy.Resolve(username, role.Profile{Superuser: me.IsSuperuser, Staff: me.IsStaff}),
		Token:     tok.Access,
		IssuedAt:  a.now().UTC(),
		ExpiresAt: tok.ExpiresAt,
	}, nil
}
