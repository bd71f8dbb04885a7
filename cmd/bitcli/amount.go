package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var satsPerBTC = decimal.NewFromInt(100000000)

// parseBTCAmount converts a decimal BTC amount to satoshis, rejecting
// anything below one satoshi of precision.
func parseBTCAmount(raw string) (uint64, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount '%s': %s", raw, err)
	}
	if amount.IsNegative() || amount.IsZero() {
		return 0, fmt.Errorf("amount must be a positive number of BTC")
	}

	sats := amount.Mul(satsPerBTC)
	if !sats.IsInteger() {
		return 0, fmt.Errorf("amount has sub-satoshi precision")
	}
	if !sats.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount is out of range")
	}

	return sats.BigInt().Uint64(), nil
}

func btcString(sats uint64) string {
	return decimal.NewFromInt(int64(sats)).Div(satsPerBTC).StringFixed(8)
}
