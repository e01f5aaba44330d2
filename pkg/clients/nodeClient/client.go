// Package nodeClient resolves bridge hashes by shelling out to a chain
// client binary (e.g. gaiad) with a denom-trace query.
package nodeClient

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Client struct {
	binary  string
	nodeURL string
	logger  *zap.Logger
}

func NewClient(binary string, nodeURL string, logger *zap.Logger) *Client {
	return &Client{
		binary:  binary,
		nodeURL: nodeURL,
		logger:  logger,
	}
}

// BaseDenom queries the node for the denom trace of the given hash and
// extracts the base_denom line from the YAML output.
func (c *Client) BaseDenom(ctx context.Context, hash string) (string, error) {
	args := []string{"query", "ibc-transfer", "denom-trace", hash}
	if c.nodeURL != "" {
		args = append(args, "--node", c.nodeURL)
	}

	c.logger.Sugar().Debugw("Querying node for denom trace",
		zap.String("binary", c.binary),
		zap.String("hash", hash),
	)

	out, err := exec.CommandContext(ctx, c.binary, args...).Output()
	if err != nil {
		return "", errors.Wrapf(err, "denom-trace query failed for %s", hash)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "base_denom") {
			continue
		}
		base := strings.ReplaceAll(line, "base_denom:", "")
		return strings.TrimSpace(base), nil
	}
	return "", errors.Errorf("no base_denom in denom-trace output for %s", hash)
}
