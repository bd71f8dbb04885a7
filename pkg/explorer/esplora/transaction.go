package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/bitcli/bitcli/pkg/explorer"
)

func (e *esplora) GetBlockHeight(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	httpStatus, resp, err := e.get(ctx, url)
	if err != nil {
		return 0, err
	}
	if httpStatus != http.StatusOK {
		return 0, fmt.Errorf("%s", resp)
	}

	return strconv.Atoi(resp)
}

// GetFeeRate returns the estimated fee rate in sats per virtual byte for
// confirmation within targetBlocks blocks. Esplora's /fee-estimates returns
// a map of confirmation target to rate; the rate of the closest target not
// greater than the requested one is used, never below the 1 sat/vB floor.
func (e *esplora) GetFeeRate(ctx context.Context, targetBlocks int) (uint64, error) {
	url := fmt.Sprintf("%s/fee-estimates", e.apiURL)
	httpStatus, resp, err := e.get(ctx, url)
	if err != nil {
		return 0, err
	}
	if httpStatus != http.StatusOK {
		return 0, fmt.Errorf("%s", resp)
	}

	estimates := map[string]float64{}
	if err := json.Unmarshal([]byte(resp), &estimates); err != nil {
		return 0, fmt.Errorf("error on retrieving fee estimates: %s", err)
	}

	bestTarget := -1
	bestRate := float64(0)
	for target, rate := range estimates {
		t, err := strconv.Atoi(target)
		if err != nil {
			continue
		}
		if t <= targetBlocks && t > bestTarget {
			bestTarget = t
			bestRate = rate
		}
	}
	if bestTarget < 0 {
		return 0, fmt.Errorf("no fee estimate for target %d", targetBlocks)
	}

	feeRate := uint64(math.Ceil(bestRate))
	if feeRate < 1 {
		feeRate = 1
	}
	return feeRate, nil
}

func (e *esplora) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	url := fmt.Sprintf("%s/tx", e.apiURL)
	headers := map[string]string{
		"Content-Type": "text/plain",
	}

	httpStatus, resp, err := e.post(ctx, url, txHex, headers)
	if err != nil {
		return "", err
	}
	if httpStatus != http.StatusOK {
		return "", &explorer.BroadcastError{Reason: resp}
	}

	return resp, nil
}
