package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"teamprompt/internal/utils"

	"go.uber.org/zap"
)

// Sender forwards one operation to the host and waits for its reply.
type Sender interface {
	Send(ctx context.Context, op string, payload interface{}) (json.RawMessage, error)
}

// HTTPSender posts messages to a host endpoint.
type HTTPSender struct {
	endpoint string
	client   *http.Client
}

func NewHTTPSender(endpoint string, timeout time.Duration, log *zap.Logger) *HTTPSender {
	return &HTTPSender{
		endpoint: endpoint,
		client:   utils.NewHTTPClient(timeout, log),
	}
}

func (s *HTTPSender) Send(ctx context.Context, op string, payload interface{}) (json.RawMessage, error) {
	msg := Message{Type: op}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", op, err)
		}
		msg.Payload = raw
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrHostRejected, op, resp.StatusCode)
	}

	var reply Reply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, fmt.Errorf("decode %s reply: %w", op, err)
	}
	if !reply.Success {
		return nil, fmt.Errorf("%w: %s: %s", ErrHostRejected, op, reply.Error)
	}
	return reply.Data, nil
}
