package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
)

const keymapPath = "/api/v1/user/keymap"

// KeymapClient implements ports.KeymapStore against the review server's keymap API.
// The server identifies the user from the bearer token, so the user argument only labels logs and results.
type KeymapClient struct {
	baseURL string
	client  *http.Client
}

// Verify interface compliance at compile time
var _ ports.KeymapStore = (*KeymapClient)(nil)

// keymapRecord is the server's user_keymaps row
type keymapRecord struct {
	ActivePreset   string            `json:"active_preset"`
	CreatedAt      time.Time         `json:"created_at"`
	CustomBindings map[string]string `json:"custom_bindings_json"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type dataResponse struct {
	Data keymapRecord `json:"data"`
}

type upsertRequest struct {
	ActivePreset   *string           `json:"active_preset,omitempty"`
	CustomBindings map[string]string `json:"custom_bindings_json"` // null keeps the stored overrides
}

// NewKeymapClient creates a client for baseURL. An empty token sends no Authorization header.
func NewKeymapClient(baseURL, token string) *KeymapClient {
	client := &http.Client{Timeout: 10 * time.Second}
	if token = strings.TrimSpace(token); token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), src)
		client.Timeout = 10 * time.Second
	}

	return &KeymapClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
	}
}

// Close releases idle connections
func (c *KeymapClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Get implements KeymapReader.Get. A 204 response means the user has no saved keymap.
func (c *KeymapClient) Get(ctx context.Context, user string) (*domain.UserKeymap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+keymapPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build keymap request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keymap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, fmt.Errorf("keymap for %s: %w", user, domain.ErrKeymapNotFound)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return decodeKeymap(resp.Body, user)
}

// Upsert implements KeymapWriter.Upsert with a PUT of the partial document
func (c *KeymapClient) Upsert(ctx context.Context, user string, update domain.KeymapUpdate) (*domain.UserKeymap, error) {
	body, err := json.Marshal(upsertRequest{
		ActivePreset:   update.ActivePreset,
		CustomBindings: update.CustomBindings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode keymap update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+keymapPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build keymap request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to save keymap: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	logging.Logger.Debug("Keymap pushed", "user", user, "url", c.baseURL)
	return decodeKeymap(resp.Body, user)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("keymap server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}

func decodeKeymap(r io.Reader, user string) (*domain.UserKeymap, error) {
	var payload dataResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode keymap response: %w", err)
	}

	bindings := payload.Data.CustomBindings
	if bindings == nil {
		bindings = make(map[string]string)
	}

	return &domain.UserKeymap{
		ActivePreset:   payload.Data.ActivePreset,
		CreatedAt:      payload.Data.CreatedAt,
		CustomBindings: bindings,
		UpdatedAt:      payload.Data.UpdatedAt,
		User:           user,
	}, nil
}
