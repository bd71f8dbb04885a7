package explorer

import (
	"sort"
)

// conservative per-element virtual sizes of a segwit transaction, used to
// bound the fee paid by a selection before the real transaction is built.
const (
	txBaseVSize      = 11
	p2wpkhInVSize    = 68
	p2wpkhOutVSize   = 31
	selectionNumOuts = 2 // destination + change
)

// SelectUnspents performs a coin selection over the given list of utxos and
// returns a subset of them whose total value covers the target amount plus
// the estimated fee for the selection's own size at the given rate.
//
// The strategy is deterministic: utxos are sorted by descending value and
// picked greedily, so the selection uses as few inputs as possible with
// larger values first. Confirmed utxos are always preferred; unconfirmed
// ones are considered only when no confirmed selection can satisfy the
// target.
func SelectUnspents(
	utxos []Utxo,
	targetAmount uint64,
	satsPerVByte uint64,
) (coins []Utxo, change uint64, err error) {
	confirmed := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if u.IsConfirmed() {
			confirmed = append(confirmed, u)
		}
	}

	if coins, change, err = selectGreedy(
		confirmed, targetAmount, satsPerVByte,
	); err == nil {
		return
	}

	return selectGreedy(utxos, targetAmount, satsPerVByte)
}

func selectGreedy(
	utxos []Utxo,
	targetAmount uint64,
	satsPerVByte uint64,
) ([]Utxo, uint64, error) {
	sorted := make([]Utxo, len(utxos))
	copy(sorted, utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() > sorted[j].Value()
	})

	selected := make([]Utxo, 0, len(sorted))
	totalAmount := uint64(0)

	for _, u := range sorted {
		selected = append(selected, u)
		totalAmount += u.Value()

		required := targetAmount + estimateSelectionFee(
			len(selected), satsPerVByte,
		)
		if totalAmount >= required {
			return selected, totalAmount - required, nil
		}
	}

	return nil, 0, ErrInsufficientFunds
}

// estimateSelectionFee bounds the fee of a transaction spending numInputs
// P2WPKH inputs to a destination and a change output.
func estimateSelectionFee(numInputs int, satsPerVByte uint64) uint64 {
	vsize := txBaseVSize +
		numInputs*p2wpkhInVSize +
		selectionNumOuts*p2wpkhOutVSize
	return uint64(vsize) * satsPerVByte
}
