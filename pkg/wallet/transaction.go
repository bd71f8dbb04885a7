package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txrules"

	"github.com/bitcli/bitcli/pkg/explorer"
)

// CreateTxOpts is the struct given to CreateTx method
type CreateTxOpts struct {
	Unspents      []explorer.Utxo
	OutputAddress string
	OutputAmount  uint64
	ChangeScript  []byte
	SatsPerVByte  uint64
	Network       *chaincfg.Params
}

func (o CreateTxOpts) validate() error {
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}
	if o.OutputAmount == 0 {
		return ErrZeroOutputAmount
	}
	if o.SatsPerVByte == 0 {
		return ErrZeroFeeRate
	}
	if len(o.ChangeScript) <= 0 {
		return ErrInvalidChangeAddress
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	addr, err := btcutil.DecodeAddress(o.OutputAddress, o.Network)
	if err != nil {
		return ErrInvalidOutputAddress
	}
	if !addr.IsForNet(o.Network) {
		return ErrInvalidOutputAddress
	}
	return nil
}

// CreateTxResult holds the unsigned transaction returned by CreateTx along
// with the fee it pays and the change amount, if any, that goes back to the
// wallet.
type CreateTxResult struct {
	UnsignedTx   *wire.MsgTx
	FeeAmount    uint64
	ChangeAmount uint64
}

// CreateTx builds an unsigned transaction spending the provided unspents to
// the output address. The fee is the estimated virtual size at the given
// rate. A change output locked to ChangeScript is added only when the excess
// is more than the dust threshold for such output, otherwise the excess is
// left to the fee. It is up to the caller to provide unspents whose total
// value covers amount plus fee (see explorer.SelectUnspents).
func (w *Wallet) CreateTx(opts CreateTxOpts) (*CreateTxResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	addr, _ := btcutil.DecodeAddress(opts.OutputAddress, opts.Network)
	outScript, err := payToAddrScript(addr)
	if err != nil {
		return nil, err
	}

	var totalIn uint64
	tx := wire.NewMsgTx(wire.TxVersion)
	for _, u := range opts.Unspents {
		hash, err := chainhash.NewHashFromStr(u.Hash())
		if err != nil {
			return nil, err
		}
		txIn := wire.NewTxIn(wire.NewOutPoint(hash, u.Index()), nil, nil)
		// opt in to RBF
		txIn.Sequence = wire.MaxTxInSequenceNum - 2
		tx.AddTxIn(txIn)
		totalIn += u.Value()
	}

	tx.AddTxOut(wire.NewTxOut(int64(opts.OutputAmount), outScript))

	// estimate the fee as if the change output is there, so that adding it
	// never makes the transaction underpay the declared rate.
	feeAmount := EstimateFeeAmount(
		len(opts.Unspents),
		[][]byte{outScript, opts.ChangeScript},
		opts.SatsPerVByte,
	)
	if totalIn < opts.OutputAmount+feeAmount {
		return nil, explorer.ErrInsufficientFunds
	}

	changeAmount := totalIn - opts.OutputAmount - feeAmount
	if changeAmount > 0 {
		isDust := txrules.IsDustAmount(
			btcutil.Amount(changeAmount),
			len(opts.ChangeScript),
			txrules.DefaultRelayFeePerKb,
		)
		if isDust {
			feeAmount += changeAmount
			changeAmount = 0
		} else {
			tx.AddTxOut(wire.NewTxOut(int64(changeAmount), opts.ChangeScript))
		}
	}

	return &CreateTxResult{
		UnsignedTx:   tx,
		FeeAmount:    feeAmount,
		ChangeAmount: changeAmount,
	}, nil
}
