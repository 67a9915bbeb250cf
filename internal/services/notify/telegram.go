package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"weather-report/config"
	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

// maxErrorBody caps how much of a rejected response is kept.
const maxErrorBody = 512

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TelegramNotifier posts the chart with the report as its caption.
type TelegramNotifier struct {
	cfg        config.TelegramConfig
	httpClient HTTPClient
	l          *observe.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, l *observe.Logger, httpClient HTTPClient) *TelegramNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &TelegramNotifier{
		cfg:        cfg,
		httpClient: httpClient,
		l:          l,
	}
}

func (n *TelegramNotifier) Enabled() bool {
	return n.cfg.Token != "" && n.cfg.ChatID != ""
}

// Notify uploads imagePath with caption. Missing credentials make it a no-op
// reported as models.DeliverySkipped. Any failure is a *models.NotifyError.
func (n *TelegramNotifier) Notify(ctx context.Context, caption, imagePath string) (models.DeliveryStatus, error) {
	if !n.Enabled() {
		n.l.Info("telegram credentials not configured, skipping notification")
		return models.DeliverySkipped, nil
	}

	body, contentType, err := n.photoForm(caption, imagePath)
	if err != nil {
		return models.DeliveryFailed, &models.NotifyError{Err: err}
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendPhoto", strings.TrimRight(n.cfg.BaseURL, "/"), n.cfg.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return models.DeliveryFailed, &models.NotifyError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)

	n.l.Info("sending report to telegram", map[string]any{
		"chat_id": n.cfg.ChatID,
		"image":   filepath.Base(imagePath),
	})

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// the URL carries the token
		return models.DeliveryFailed, &models.NotifyError{Err: redact(err, n.cfg.Token)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return models.DeliveryFailed, &models.NotifyError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	n.l.Info("telegram message sent", map[string]any{
		"chat_id": n.cfg.ChatID,
	})

	return models.DeliveryDelivered, nil
}

func (n *TelegramNotifier) photoForm(caption, imagePath string) (io.Reader, string, error) {
	image, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer image.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("chat_id", n.cfg.ChatID); err != nil {
		return nil, "", err
	}
	if err := form.WriteField("caption", caption); err != nil {
		return nil, "", err
	}

	part, err := form.CreateFormFile("photo", filepath.Base(imagePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	if err := form.Close(); err != nil {
		return nil, "", err
	}

	return &buf, form.FormDataContentType(), nil
}

func redact(err error, token string) error {
	msg := err.Error()
	if token == "" || !strings.Contains(msg, token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(msg, token, "<token>"))
}
