package chainRegistry

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func Test_BaseDenom(t *testing.T) {
	client := NewClient("https://rest.cosmos.directory/cosmoshub", zap.NewNop())

	httpmock.ActivateNonDefault(client.httpClient)
	defer httpmock.DeactivateAndReset()

	t.Run("Should extract the base denom from a trace response", func(t *testing.T) {
		httpmock.RegisterResponder("GET",
			"https://rest.cosmos.directory/cosmoshub/ibc/apps/transfer/v1/denom_traces/ABCD1234",
			httpmock.NewStringResponder(200, `{"denom_trace": {"path": "transfer/channel-141", "base_denom": "uosmo"}}`),
		)

		base, err := client.BaseDenom(context.Background(), "ABCD1234")
		assert.Nil(t, err)
		assert.Equal(t, "uosmo", base)
	})

	t.Run("Should error on a non-200 response", func(t *testing.T) {
		httpmock.RegisterResponder("GET",
			"https://rest.cosmos.directory/cosmoshub/ibc/apps/transfer/v1/denom_traces/MISSING",
			httpmock.NewStringResponder(404, `{"message": "denomination trace not found"}`),
		)

		_, err := client.BaseDenom(context.Background(), "MISSING")
		assert.NotNil(t, err)
	})

	t.Run("Should error on a malformed body", func(t *testing.T) {
		httpmock.RegisterResponder("GET",
			"https://rest.cosmos.directory/cosmoshub/ibc/apps/transfer/v1/denom_traces/BROKEN",
			httpmock.NewStringResponder(200, `not json`),
		)

		_, err := client.BaseDenom(context.Background(), "BROKEN")
		assert.NotNil(t, err)
	})
}
