package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitcli/bitcli/internal/core/domain"
	"github.com/bitcli/bitcli/pkg/explorer"
	"github.com/bitcli/bitcli/pkg/explorer/esplora"
)

const (
	// NetworkKey is the Bitcoin network to use. Either "mainnet" or "testnet"
	NetworkKey = "NETWORK"
	// ExplorerEndpointKey is the endpoint of the Esplora REST API to sync from
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// DatadirKey is the local data directory where the wallet state is stored
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// FeeTargetBlocksKey is the confirmation target, in blocks, used when asking the explorer for a fee rate
	FeeTargetBlocksKey = "FEE_TARGET_BLOCKS"
	// SyncMaxConcurrencyKey is the max number of addresses synced in parallel
	SyncMaxConcurrencyKey = "SYNC_MAX_CONCURRENCY"
	// SyncMaxRetriesKey is the number of attempts per address before giving up a sync round
	SyncMaxRetriesKey = "SYNC_MAX_RETRIES"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("bitcli", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("BITCLI")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, domain.NetworkMainnet)
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(FeeTargetBlocksKey, 3)
	vip.SetDefault(SyncMaxConcurrencyKey, 4)
	vip.SetDefault(SyncMaxRetriesKey, 3)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetNetwork ...
func GetNetwork() string {
	if vip.GetString(NetworkKey) == domain.NetworkTestnet {
		return domain.NetworkTestnet
	}
	return domain.NetworkMainnet
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetExplorerEndpoint returns the configured Esplora endpoint, falling back
// to the public mempool.space API of the configured network.
func GetExplorerEndpoint() string {
	if endpoint := GetString(ExplorerEndpointKey); endpoint != "" {
		return endpoint
	}
	if GetNetwork() == domain.NetworkTestnet {
		return "https://mempool.space/testnet/api"
	}
	return "https://mempool.space/api"
}

// GetRequestTimeout returns the timeout applied to every explorer request.
func GetRequestTimeout() time.Duration {
	return time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond
}

//GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	return esplora.NewService(GetExplorerEndpoint(), GetRequestTimeout())
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != domain.NetworkMainnet &&
		networkName != domain.NetworkTestnet {
		return fmt.Errorf(
			"network must be either '%s' or '%s'",
			domain.NetworkMainnet, domain.NetworkTestnet,
		)
	}

	if endpoint := GetString(ExplorerEndpointKey); endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
		}
	}

	if timeout := GetInt(ExplorerRequestTimeoutKey); timeout <= 0 {
		return fmt.Errorf("explorer request timeout must be a positive number")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
