package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain"
)

var _ botflow.Backend = (*BackendClient)(nil)

// Rutas de onboarding de la API.
const (
	pathOnboardOwner = "/api/onboarding/owner"
	pathRedeemInvite = "/api/onboarding/invite"
)

// BackendClient llama a la API HTTP en nombre del bot.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient baseURL sin barra final, ej. http://localhost:8080.
func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *BackendClient) OnboardOwner(ctx context.Context, in dto.OwnerOnboardingRequest) (*dto.OwnerOnboardingResponse, error) {
	var out dto.OwnerOnboardingResponse
	if err := c.post(ctx, pathOnboardOwner, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BackendClient) RedeemInvite(ctx context.Context, in dto.InviteRedeemRequest) (*dto.InviteRedeemResponse, error) {
	var out dto.InviteRedeemResponse
	if err := c.post(ctx, pathRedeemInvite, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BackendClient) post(ctx context.Context, path string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("crear request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("leer respuesta %s: %w", path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decodificar respuesta %s: %w", path, err)
	}
	return nil
}

// decodeAPIError reconstruye el error de dominio a partir de dto.ErrorResponse.
func decodeAPIError(status int, body []byte) error {
	var er dto.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Message == "" {
		return fmt.Errorf("API respondió HTTP %d", status)
	}
	switch status {
	case http.StatusNotFound:
		return domain.NotFound(er.Code, er.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.Validation(er.Code, er.Message)
	case http.StatusConflict:
		if er.Code == domain.ErrShiftExpired.Code || er.Code == domain.ErrInviteExpired.Code || er.Code == domain.ErrShiftNotOpen.Code {
			return domain.InvalidState(er.Code, er.Message)
		}
		return domain.Conflict(er.Code, er.Message)
	}
	return fmt.Errorf("API respondió HTTP %d: %s", status, er.Message)
}
