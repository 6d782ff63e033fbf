// Package remote habla con el backend REST (/api) y lo expone con los mismos
// puertos que el almacenamiento local: Authenticator, Ledger y directorio de usuarios.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
)

// maxBody tope de lectura de una respuesta.
const maxBody = 4 << 20

// TokenFunc devuelve el token de la sesión activa. Lo provee el Session Manager.
type TokenFunc func(ctx context.Context) (string, error)

// Client cliente HTTP del backend. Seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 5 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// codeErrors traduce los códigos de dto.ErrorResponse a errores de dominio.
var codeErrors = map[string]error{
	dto.CodeValidation:         domain.ErrInvalidInput,
	dto.CodeBadRequest:         domain.ErrInvalidInput,
	dto.CodeDuplicateName:      domain.ErrDuplicateName,
	dto.CodeDuplicateCode:      domain.ErrDuplicateCode,
	dto.CodeDuplicateTaxID:     domain.ErrDuplicateTaxID,
	dto.CodeUnknownPrincipal:   domain.ErrUnknownPrincipal,
	dto.CodeInvalidCredentials: domain.ErrInvalidCredentials,
	dto.CodeSessionExpired:     domain.ErrSessionExpired,
	dto.CodeForbidden:          domain.ErrForbidden,
	dto.CodeProtectedPrincipal: domain.ErrProtectedPrincipal,
	dto.CodeNotFound:           domain.ErrNotFound,
	dto.CodeInvalidAmount:      domain.ErrInvalidAmount,
	dto.CodeInsufficientStock:  domain.ErrInsufficientStock,
}

// do envía la petición con body JSON (opcional) y decodifica la respuesta en out (opcional).
// Fallos de red, timeouts y 5xx se devuelven como domain.ErrConnectionFailure.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", domain.ErrConnectionFailure, ctx.Err())
		}
		return fmt.Errorf("%w: %w", domain.ErrConnectionFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %w", domain.ErrConnectionFailure, err)
	}

	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

func statusError(status int, raw []byte) error {
	var e dto.ErrorResponse
	_ = json.Unmarshal(raw, &e)
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	if sentinel, ok := codeErrors[e.Code]; ok {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	switch {
	case status >= http.StatusInternalServerError, status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrConnectionFailure, status, msg)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrSessionExpired, msg)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	}
	return fmt.Errorf("%w: HTTP %d: %s", domain.ErrInvalidInput, status, msg)
}

// IsUnavailable indica si err significa que el backend no respondió.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrConnectionFailure)
}
