// Package vision wraps the external image-verification service. It is an
// untrusted, best-effort boolean signal: callers must treat errors as "not
// verified" and never let the call fail a state transition.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"untrashapi/pkg/config"
)

type Oracle interface {
	// TrashVisible reports whether trash/litter is visible at the image
	// reference.
	TrashVisible(ctx context.Context, imageUrl string) (bool, error)
}

type Client struct {
	HttpCli  *http.Client
	Endpoint string
	ApiKey   string
}

func NewClient(httpCli *http.Client, endpoint string, apiKey string) *Client {
	return &Client{
		HttpCli:  httpCli,
		Endpoint: endpoint,
		ApiKey:   apiKey,
	}
}

func (c *Client) TrashVisible(ctx context.Context, imageUrl string) (bool, error) {

	ctx, cancel := context.WithTimeout(ctx, config.ORACLE_TIMEOUT)
	defer cancel()

	reqBody, err := json.Marshal(&struct {
		ImageUrl string `json:"image_url"`
		Question string `json:"question"`
	}{
		ImageUrl: imageUrl,
		Question: "Is there visible trash, litter, or waste in this image?",
	})
	if err != nil {
		return false, fmt.Errorf("in TrashVisible:\n%w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return false, fmt.Errorf("in TrashVisible:\n%w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)

	resp, err := c.HttpCli.Do(req)
	if err != nil {
		return false, fmt.Errorf("in TrashVisible:\n%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("in TrashVisible:\nvision api status %d", resp.StatusCode)
	}

	var resData struct {
		TrashVisible bool `json:"trash_visible"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&resData); err != nil {
		return false, fmt.Errorf("in TrashVisible:\n%w", err)
	}

	return resData.TrashVisible, nil

}
