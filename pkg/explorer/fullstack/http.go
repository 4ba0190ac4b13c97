package fullstack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

// apiError is the error body returned by the API on failures.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type httpError struct {
	status int
	body   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("%s %d: %s", explorer.ErrUnexpectedStatus, e.status, e.body)
}

func (e *httpError) Unwrap() error {
	return explorer.ErrUnexpectedStatus
}

func (s *service) get(ctx context.Context, path string, out interface{}) error {
	return s.do(ctx, http.MethodGet, path, nil, out)
}

func (s *service) post(
	ctx context.Context, path string, body, out interface{},
) error {
	return s.do(ctx, http.MethodPost, path, body, out)
}

func (s *service) do(
	ctx context.Context, method, path string, body, out interface{},
) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	url := fmt.Sprintf("%s/%s", s.apiURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.breaker.Execute(func() (interface{}, error) {
		s.limiter.Take()
		return s.send(req)
	})
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("request failed")
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.([]byte), out); err != nil {
		return fmt.Errorf("%w: %s", explorer.ErrInvalidResponse, err)
	}
	return nil
}

func (s *service) send(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpError{resp.StatusCode, errorMessage(body)}
	}
	return body, nil
}

func errorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return string(bytes.TrimSpace(body))
}
