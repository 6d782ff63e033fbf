package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// Users gestión de usuarios vía API.
type Users struct {
	client *Client
	token  TokenFunc
}

// NewUsers construye el directorio remoto.
func NewUsers(client *Client, token TokenFunc) *Users {
	return &Users{client: client, token: token}
}

// Register POST /api/users (público).
func (u *Users) Register(ctx context.Context, name, credential string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := u.client.do(ctx, http.MethodPost, "/api/users", "", dto.RegisterRequest{Username: name, Password: credential}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List GET /api/users.
func (u *Users) List(ctx context.Context) ([]dto.UserResponse, error) {
	tok, err := u.token(ctx)
	if err != nil {
		return nil, err
	}
	var out []dto.UserResponse
	if err := u.client.do(ctx, http.MethodGet, "/api/users", tok, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Promote PATCH /api/users/:name enviando los flags del backend.
// Solo un admin local llega a enviar la petición; el backend vuelve a decidir con el rol del token.
func (u *Users) Promote(ctx context.Context, actorRole entity.Role, target string, newRole entity.Role) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, newRole)
	}
	tok, err := u.token(ctx)
	if err != nil {
		return nil, err
	}
	superuser, staff := newRole.Flags()
	in := dto.PromoteRequest{IsSuperuser: &superuser, IsStaff: &staff}
	var out dto.UserResponse
	if err := u.client.do(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(target), tok, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
