package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ModeSignup = "signup"
	ModeReset  = "reset"
)

// Client talks to the external OTP email-verification microservice. The
// service is opaque: codes are generated, mailed and checked on its side,
// this client only moves identifiers around.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type SendResponse struct {
	OTPID     string    `json:"otpId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyResponse struct {
	Verified  bool   `json:"verified"`
	ResetCode string `json:"resetCode,omitempty"`
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("otp service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) SendOTP(ctx context.Context, email, mode string) (*SendResponse, error) {
	var out SendResponse
	err := c.post(ctx, "/otp/send", map[string]string{
		"email": email,
		"mode":  mode,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, code, otpID, mode string) (*VerifyResponse, error) {
	var out VerifyResponse
	err := c.post(ctx, "/otp/verify", map[string]string{
		"email": email,
		"code":  code,
		"otpId": otpID,
		"mode":  mode,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendOTP(ctx context.Context, email, otpID string) (*SendResponse, error) {
	var out SendResponse
	err := c.post(ctx, "/otp/resend", map[string]string{
		"email": email,
		"otpId": otpID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
