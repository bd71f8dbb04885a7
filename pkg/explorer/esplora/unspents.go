package esplora

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/wire"

	"github.com/bitcli/bitcli/pkg/explorer"
)

type status struct {
	Confirmed   bool `json:"confirmed"`
	BlockHeight int  `json:"block_height"`
}

type utxoResponse struct {
	TxID   string `json:"txid"`
	VOut   uint32 `json:"vout"`
	Value  uint64 `json:"value"`
	Status status `json:"status"`
}

func (e *esplora) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	url := fmt.Sprintf("%s/address/%s/utxo", e.apiURL, addr)
	httpStatus, resp, err := e.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}
	if httpStatus != http.StatusOK {
		return nil, fmt.Errorf("error on retrieving utxos: %s", resp)
	}

	var outs []utxoResponse
	if err := json.Unmarshal([]byte(resp), &outs); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}

	unspents := make([]explorer.Utxo, 0, len(outs))
	for _, out := range outs {
		script, err := e.getPrevoutScript(ctx, out.TxID, out.VOut)
		if err != nil {
			return nil, fmt.Errorf("error on retrieving utxos: %w", err)
		}

		unspents = append(unspents, explorer.NewWitnessUtxo(
			out.TxID, out.VOut, out.Value,
			script, addr,
			out.Status.Confirmed, out.Status.BlockHeight,
		))
	}

	return unspents, nil
}

// getPrevoutScript fetches the raw transaction owning the utxo to extract
// the script that locks it.
func (e *esplora) getPrevoutScript(
	ctx context.Context, txid string, vout uint32,
) ([]byte, error) {
	txHex, err := e.getTransactionHex(ctx, txid)
	if err != nil {
		return nil, err
	}

	rawTx, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, err
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(rawTx)); err != nil {
		return nil, err
	}
	if int(vout) >= len(tx.TxOut) {
		return nil, fmt.Errorf("vout %d out of range for tx %s", vout, txid)
	}

	return tx.TxOut[vout].PkScript, nil
}

func (e *esplora) getTransactionHex(
	ctx context.Context, txid string,
) (string, error) {
	url := fmt.Sprintf("%s/tx/%s/hex", e.apiURL, txid)
	httpStatus, resp, err := e.get(ctx, url)
	if err != nil {
		return "", err
	}
	if httpStatus != http.StatusOK {
		return "", fmt.Errorf("%s", resp)
	}

	return resp, nil
}
