package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sandol-kakao-backend/internal/config"
)

// userIDHeader carries the resolved local user id to every upstream service.
const userIDHeader = "X-User-ID"

// StatusError is a non-2xx reply from an upstream service.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s failed with status %d: %s", e.Op, e.Code, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// StatusError (e.g. a transport failure).
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Client is the thin typed HTTP gateway to the domain microservices. It keeps
// a very small surface area tailored to the bot's needs: no retries and no
// circuit breaking, only identity propagation and JSON decoding.
type Client struct {
	httpClient *http.Client
	log        *zap.Logger

	mealBase       string
	noticeBase     string
	classroomBase  string
	staticInfoBase string
	userBase       string
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: 20 * time.Second},
		log:            log,
		mealBase:       strings.TrimRight(cfg.MealServiceURL, "/"),
		noticeBase:     strings.TrimRight(cfg.NoticeServiceURL, "/"),
		classroomBase:  strings.TrimRight(cfg.ClassroomServiceURL, "/"),
		staticInfoBase: strings.TrimRight(cfg.StaticInfoServiceURL, "/"),
		userBase:       strings.TrimRight(cfg.UserServiceURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, userID int64, method, rawURL string, params url.Values, body any) (*http.Response, error) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, userID int64, op, rawURL string, params url.Values, out any) error {
	resp, err := c.do(ctx, userID, http.MethodGet, rawURL, params, nil)
	if err != nil {
		return fmt.Errorf("upstream %s request failed: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		c.log.Warn("upstream call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream %s returned malformed JSON: %w", op, err)
	}
	return nil
}

// postJSON issues a POST and checks only for a 2xx status.
func (c *Client) postJSON(ctx context.Context, userID int64, op, rawURL string, body any) error {
	resp, err := c.do(ctx, userID, http.MethodPost, rawURL, nil, body)
	if err != nil {
		return fmt.Errorf("upstream %s request failed: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		c.log.Warn("upstream call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return nil
}
