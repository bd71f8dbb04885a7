package wallet

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitcli/bitcli/pkg/explorer"
)

// SignTransactionOpts is the struct given to SignTransaction method
type SignTransactionOpts struct {
	UnsignedTx             *wire.MsgTx
	Unspents               []explorer.Utxo
	DerivationPathByScript map[string]string
}

func (o SignTransactionOpts) validate() error {
	if o.UnsignedTx == nil {
		return ErrNullUnsignedTx
	}
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}
	if len(o.DerivationPathByScript) <= 0 {
		return ErrEmptyDerivationPaths
	}

	for script, path := range o.DerivationPathByScript {
		derivationPath, err := ParseDerivationPath(path)
		if err != nil {
			return fmt.Errorf(
				"invalid derivation path '%s' for script '%s': %v",
				path, script, err,
			)
		}
		if err := checkDerivationPath(derivationPath); err != nil {
			return fmt.Errorf(
				"invalid derivation path '%s' for script '%s': %v",
				path, script, err,
			)
		}
	}

	for i, in := range o.UnsignedTx.TxIn {
		u := findUnspent(o.Unspents, in.PreviousOutPoint)
		if u == nil {
			return fmt.Errorf(
				"unspent not found in list for input %d with outpoint '%s'",
				i, in.PreviousOutPoint,
			)
		}
		if _, ok := o.DerivationPathByScript[hex.EncodeToString(u.Script())]; !ok {
			return ErrMissingDerivationPath
		}
	}

	return nil
}

// SignTransactionResult holds the serialized signed transaction returned by
// SignTransaction and its txid.
type SignTransactionResult struct {
	TxHex string
	TxID  string
}

// SignTransaction signs all inputs of the given transaction using the keys
// derived with the help of the map script:derivation_path. Each signature
// commits to the BIP143 digest of its input and uses a deterministic
// (RFC6979) nonce. Signing is all or nothing: an error on any input leaves
// the draft unusable rather than partially signed.
func (w *Wallet) SignTransaction(opts SignTransactionOpts) (*SignTransactionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	// work on a copy so that a failure on any input does not leave the
	// caller with a half signed draft.
	tx := opts.UnsignedTx.Copy()

	prevOuts := make(map[wire.OutPoint]*wire.TxOut)
	for _, u := range opts.Unspents {
		hash, err := chainhash.NewHashFromStr(u.Hash())
		if err != nil {
			return nil, err
		}
		prevOuts[*wire.NewOutPoint(hash, u.Index())] = wire.NewTxOut(
			int64(u.Value()), u.Script(),
		)
	}
	fetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	for i, in := range tx.TxIn {
		prevOut := prevOuts[in.PreviousOutPoint]
		path := opts.DerivationPathByScript[hex.EncodeToString(prevOut.PkScript)]

		if err := w.signInput(tx, sigHashes, i, prevOut, path); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}

	return &SignTransactionResult{
		TxHex: hex.EncodeToString(buf.Bytes()),
		TxID:  tx.TxHash().String(),
	}, nil
}

func (w *Wallet) signInput(
	tx *wire.MsgTx,
	sigHashes *txscript.TxSigHashes,
	inIndex int,
	prevOut *wire.TxOut,
	derivationPath string,
) error {
	privateKey, _, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: derivationPath,
	})
	if err != nil {
		return err
	}

	witness, err := txscript.WitnessSignature(
		tx, sigHashes, inIndex, prevOut.Value, prevOut.PkScript,
		txscript.SigHashAll, privateKey, true,
	)
	if err != nil {
		return err
	}

	tx.TxIn[inIndex].Witness = witness
	return nil
}

func findUnspent(unspents []explorer.Utxo, outpoint wire.OutPoint) explorer.Utxo {
	for _, u := range unspents {
		if u.Hash() == outpoint.Hash.String() && u.Index() == outpoint.Index {
			return u
		}
	}
	return nil
}
