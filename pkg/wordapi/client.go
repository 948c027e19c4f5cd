// Package wordapi talks to the word-service and the sentence validation
// service over HTTP.
package wordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/japaniel/wordchallenge/pkg/practice"
)

const (
	DefaultWordURL     = "http://127.0.0.1:3000/api/word"
	DefaultValidateURL = "http://127.0.0.1:8000/api/validate-sentence"

	// maxBodySize bounds how much of a response body is read.
	maxBodySize = 1 << 20
)

var (
	// ErrTransport marks failures where no HTTP response was received.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse is returned when a 2xx body lacks the expected fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for non-2xx responses. The body is not interpreted.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int { return e.Code }

// Client calls both services. The zero value is not usable; use New.
type Client struct {
	WordURL     string
	ValidateURL string
	UserAgent   string
	HTTP        *http.Client
}

// New returns a client with the given endpoints and request timeout.
func New(wordURL, validateURL string, timeout time.Duration) *Client {
	if wordURL == "" {
		wordURL = DefaultWordURL
	}
	if validateURL == "" {
		validateURL = DefaultValidateURL
	}
	return &Client{
		WordURL:     wordURL,
		ValidateURL: validateURL,
		UserAgent:   "wordchallenge-cli",
		HTTP:        &http.Client{Timeout: timeout},
	}
}

var (
	_ practice.WordSource = (*Client)(nil)
	_ practice.Validator  = (*Client)(nil)
)

type wordResponse struct {
	Word *practice.Word `json:"word"`
}

// RandomWord fetches one practice word.
func (c *Client) RandomWord(ctx context.Context) (practice.Word, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.WordURL, nil)
	if err != nil {
		return practice.Word{}, fmt.Errorf("create word request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var out wordResponse
	if err := c.do(req, &out); err != nil {
		return practice.Word{}, err
	}
	if out.Word == nil {
		return practice.Word{}, fmt.Errorf("word response: %w: missing word", ErrMalformedResponse)
	}
	return *out.Word, nil
}

type validateRequest struct {
	WordID   int64  `json:"word_id"`
	Sentence string `json:"sentence"`
}

type validateResponse struct {
	Score *float64 `json:"score"`
}

// Validate submits a sentence for wordID and returns its score.
func (c *Client) Validate(ctx context.Context, wordID int64, sentence string) (float64, error) {
	body, err := json.Marshal(validateRequest{WordID: wordID, Sentence: sentence})
	if err != nil {
		return 0, fmt.Errorf("encode validate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ValidateURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out validateResponse
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	if out.Score == nil {
		return 0, fmt.Errorf("validate response: %w: missing score", ErrMalformedResponse)
	}
	return *out.Score, nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{Method: req.Method, URL: req.URL.String(), Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", req.Method, req.URL, ErrTransport, err)
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("%s %s: %w: body exceeds %d bytes", req.Method, req.URL, ErrMalformedResponse, maxBodySize)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL, ErrMalformedResponse, err)
	}
	return nil
}
