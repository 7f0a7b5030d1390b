package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client talks to the external payment gateway. Only charge creation is
// used; charge completion and confirmation happen client-side and reach
// us as a confirmation callback.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

// CreateCharge asks the gateway for a payment intent and returns the
// client secret the frontend completes the charge with.
func (c *Client) CreateCharge(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	body, err := json.Marshal(ChargeRequest{Amount: amountMinorUnits, Currency: currency})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", errors.New("payment gateway returned non-OK status: " + resp.Status)
	}

	var apiResp ChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", err
	}
	if apiResp.ClientSecret == "" {
		return "", errors.New("payment gateway returned empty client secret")
	}

	return apiResp.ClientSecret, nil
}
