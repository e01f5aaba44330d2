// Package rewards backfills Osmosis liquidity-pool rewards from the
// Imperator chain API. Pool rewards accrue off-transaction, so they never
// appear in dumped logs and must be fetched separately.
package rewards

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api-osmosis-chain.imperator.co"

// DailyReward is one day's accrued reward for a token.
type DailyReward struct {
	Amount float64 `json:"amount"`
	Day    string  `json:"day"`
}

type rewardToken struct {
	Token string `json:"token"`
}

type Client struct {
	BaseURL string
	Logger  *zap.Logger

	httpClient *http.Client
}

func NewClient(baseURL string, l *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Logger:  l,
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

func (c *Client) get(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch '%s'", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status code %d from '%s'", res.StatusCode, url)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return errors.Wrap(err, "failed to parse response body")
	}
	return nil
}

// RewardTokens lists the tokens an address has earned pool rewards in.
func (c *Client) RewardTokens(ctx context.Context, address string) ([]string, error) {
	url := fmt.Sprintf("%s/lp/v1/rewards/token/%s", c.BaseURL, address)

	tokens := make([]rewardToken, 0)
	if err := c.get(ctx, url, &tokens); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tokens))
	for _, t := range tokens {
		names = append(names, t.Token)
	}
	return names, nil
}

// HistoricalRewards fetches the per-day reward series for one token.
func (c *Client) HistoricalRewards(ctx context.Context, address string, token string) ([]DailyReward, error) {
	url := fmt.Sprintf("%s/lp/v1/rewards/historical/%s/%s", c.BaseURL, address, token)

	series := make([]DailyReward, 0)
	if err := c.get(ctx, url, &series); err != nil {
		return nil, err
	}
	return series, nil
}
