package wallet

const (
	// input base size: outpoint (36) + scriptsig len (1) + sequence (4)
	inBaseSize = 41
	// witness of a P2WPKH input: items count (1) + sig with len and
	// sighash flag (73) + compressed pubkey with len (34)
	p2wpkhWitnessSize = 108
	// output base size: value (8) + script len (1)
	outBaseSize = 9
	// script size of a P2WPKH output, used when the real script is unknown
	p2wpkhScriptSize = 22
)

// EstimateTxSize makes a conservative estimation of the virtual size of a
// transaction spending the given number of P2WPKH inputs to the given output
// scripts. Pass a nil/empty script for outputs whose script is not known yet,
// they are accounted as P2WPKH.
func EstimateTxSize(numInputs int, outputScripts [][]byte) int {
	baseSize := 8 + // version + locktime
		varIntSerializeSize(uint64(numInputs)) +
		varIntSerializeSize(uint64(len(outputScripts))) +
		numInputs*inBaseSize

	for _, script := range outputScripts {
		scriptSize := len(script)
		if scriptSize == 0 {
			scriptSize = p2wpkhScriptSize
		}
		baseSize += outBaseSize + scriptSize
	}

	// segwit marker + flag weigh 1 unit each
	witnessSize := 2 + numInputs*p2wpkhWitnessSize

	weight := baseSize*4 + witnessSize
	vsize := (weight + 3) / 4

	return vsize
}

// EstimateFeeAmount returns the fee in satoshis for a transaction of the
// given shape at the given fee rate expressed in sats per virtual byte.
func EstimateFeeAmount(
	numInputs int, outputScripts [][]byte, satsPerVByte uint64,
) uint64 {
	return uint64(EstimateTxSize(numInputs, outputScripts)) * satsPerVByte
}
