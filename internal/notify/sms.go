package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/pkg/errors"
)

// SMSClient sends messages through an HTTP SMS provider. Without an API URL
// and key it runs in simulation mode: messages are logged, delivery is
// reported successful with a synthetic ID. That keeps development and test
// environments working with no provider account.
type SMSClient struct {
	apiURL     string
	apiKey     string
	sender     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSMSClient creates a new SMS gateway client
func NewSMSClient(cfg config.SMSConfig, logger *zap.Logger) *SMSClient {
	return &SMSClient{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		sender: cfg.Sender,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
	APIKey  string `json:"api_key"`
}

type smsResponse struct {
	MessageID string `json:"message_id"`
}

// Notify renders the template and dispatches it to the recipient.
func (c *SMSClient) Notify(ctx context.Context, recipient string, template Template, data interface{}) (Result, error) {
	message, err := Render(template, data)
	if err != nil {
		return Result{}, err
	}

	if c.apiURL == "" || c.apiKey == "" {
		c.logger.Info("SMS simulation mode",
			zap.String("to", recipient),
			zap.String("template", string(template)),
			zap.String("message", message),
		)
		return Result{MessageID: fmt.Sprintf("sim_%d", time.Now().UnixNano())}, nil
	}

	reqBody := smsRequest{
		To:      recipient,
		Message: message,
		Sender:  c.sender,
		APIKey:  c.apiKey,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &errors.ErrNotification{Recipient: recipient, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &errors.ErrNotification{Recipient: recipient, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, &errors.ErrNotification{
			Recipient: recipient,
			Err:       fmt.Errorf("SMS API status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var smsResp smsResponse
	if err := json.Unmarshal(body, &smsResp); err != nil {
		return Result{}, &errors.ErrNotification{Recipient: recipient, Err: err}
	}

	c.logger.Info("SMS sent",
		zap.String("to", recipient),
		zap.String("template", string(template)),
		zap.String("message_id", smsResp.MessageID),
	)

	return Result{MessageID: smsResp.MessageID}, nil
}
