package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitcli/bitcli/internal/core/domain"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, domain.NetworkMainnet, GetNetwork())
	assert.Equal(t, 15*time.Second, GetRequestTimeout())
	assert.Equal(t, 3, GetInt(FeeTargetBlocksKey))
	assert.Equal(t, 4, GetInt(SyncMaxConcurrencyKey))
	assert.Equal(t, 3, GetInt(SyncMaxRetriesKey))
	assert.NotEmpty(t, GetDatadir())
}

func TestGetExplorerEndpoint(t *testing.T) {
	defer Set(NetworkKey, domain.NetworkMainnet)
	defer Set(ExplorerEndpointKey, "")

	assert.Equal(t, "https://mempool.space/api", GetExplorerEndpoint())

	Set(NetworkKey, domain.NetworkTestnet)
	assert.Equal(t, "https://mempool.space/testnet/api", GetExplorerEndpoint())

	Set(ExplorerEndpointKey, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", GetExplorerEndpoint())
}
