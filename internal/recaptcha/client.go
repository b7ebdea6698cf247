// Google reCAPTCHA v3 verification (enquiry spam gate).
// API: https://developers.google.com/recaptcha/docs/verify
package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/marketbytes-devops/alameinmovers/internal/config"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	// ErrVerificationFailed — the token is bad or the score is below threshold.
	ErrVerificationFailed = errors.New("recaptcha verification failed")
	// ErrUnavailable — the verification service could not be reached. The spam
	// gate is required, so callers must fail the request (503), not wave it through.
	ErrUnavailable = errors.New("recaptcha service unavailable")
)

type Client struct {
	secretKey string
	minScore  float64
	http      *http.Client
	url       string
}

func New(cfg config.Recaptcha) *Client {
	return &Client{
		secretKey: cfg.SecretKey,
		minScore:  cfg.MinScore,
		http:      &http.Client{Timeout: cfg.Timeout},
		url:       verifyURL,
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the client token with Google. With no secret configured the
// gate is disabled (local development).
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	if c.secretKey == "" {
		return nil
	}
	if token == "" {
		return ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: siteverify %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if !out.Success || out.Score < c.minScore {
		return ErrVerificationFailed
	}
	return nil
}
