package rewards

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testAddress = "osmo1wallet"

func setup(t *testing.T) *Client {
	client := NewClient(DefaultBaseURL, zap.NewNop())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func Test_Client(t *testing.T) {
	client := setup(t)

	httpmock.RegisterResponder("GET",
		DefaultBaseURL+"/lp/v1/rewards/token/"+testAddress,
		httpmock.NewStringResponder(200, `[{"token": "uosmo"}, {"token": "uion"}]`),
	)
	httpmock.RegisterResponder("GET",
		DefaultBaseURL+"/lp/v1/rewards/historical/"+testAddress+"/uosmo",
		httpmock.NewStringResponder(200, `[{"amount": 1.25, "day": "2022-01-15"}]`),
	)

	t.Run("Should list reward tokens", func(t *testing.T) {
		tokens, err := client.RewardTokens(context.Background(), testAddress)
		assert.Nil(t, err)
		assert.Equal(t, []string{"uosmo", "uion"}, tokens)
	})

	t.Run("Should fetch the historical series", func(t *testing.T) {
		series, err := client.HistoricalRewards(context.Background(), testAddress, "uosmo")
		assert.Nil(t, err)
		assert.Equal(t, 1, len(series))
		assert.Equal(t, 1.25, series[0].Amount)
		assert.Equal(t, "2022-01-15", series[0].Day)
	})
}

func Test_FetchToFile(t *testing.T) {
	client := setup(t)

	httpmock.RegisterResponder("GET",
		DefaultBaseURL+"/lp/v1/rewards/token/"+testAddress,
		httpmock.NewStringResponder(200, `[{"token": "uosmo"}, {"token": "uion"}]`),
	)
	httpmock.RegisterResponder("GET",
		DefaultBaseURL+"/lp/v1/rewards/historical/"+testAddress+"/uosmo",
		httpmock.NewStringResponder(200, `[{"amount": 1.25, "day": "2022-01-15"}]`),
	)
	// uion fails; the snapshot still gets written with what succeeded.
	httpmock.RegisterResponder("GET",
		DefaultBaseURL+"/lp/v1/rewards/historical/"+testAddress+"/uion",
		httpmock.NewStringResponder(500, `{}`),
	)

	path := filepath.Join(t.TempDir(), "osmosis_rewards.json")
	fetcher := NewFetcher(client, time.Millisecond, zap.NewNop())

	err := fetcher.FetchToFile(context.Background(), testAddress, path)
	assert.Nil(t, err)

	data, err := os.ReadFile(path)
	assert.Nil(t, err)

	var snapshot map[string][]DailyReward
	assert.Nil(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, 1, len(snapshot))
	assert.Equal(t, 1.25, snapshot["uosmo"][0].Amount)
}
