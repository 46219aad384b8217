package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Config struct {
	BaseURL  string
	Instance string
	Token    string
}

func (c Config) Configured() bool {
	return c.BaseURL != "" && c.Instance != "" && c.Token != ""
}

// GatewayProvider talks to an Evolution-API style WhatsApp gateway.
type GatewayProvider struct {
	cfg    Config
	client *http.Client
}

func NewGateway(cfg Config) *GatewayProvider {
	return &GatewayProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *GatewayProvider) Configured() bool { return p.cfg.Configured() }

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type sendTextResponse struct {
	Key struct {
		ID string `json:"id"`
	} `json:"key"`
}

func (p *GatewayProvider) SendText(ctx context.Context, number string, message string) (string, error) {
	if number == "" {
		return "", fmt.Errorf("numero de destino vacio")
	}

	body, err := json.Marshal(sendTextRequest{Number: number, Text: message})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/message/sendText/%s", p.cfg.BaseURL, p.cfg.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.cfg.Token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("enviar mensaje whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway whatsapp respondio %d", resp.StatusCode)
	}

	var parsed sendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// Message was accepted; a malformed body only costs us the id.
		return "", nil
	}
	return parsed.Key.ID, nil
}
