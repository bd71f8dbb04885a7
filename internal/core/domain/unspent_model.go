package domain

import (
	"github.com/google/uuid"
)

// UnspentKey represents the ID of an Unspent, composed by its txid and vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

// Unspent is the data structure representing a Bitcoin UTXO owned by one of
// the wallet's addresses, with some other information like whether it is
// spent/unspent, confirmed/unconfirmed or locked by an in-flight send.
type Unspent struct {
	TxID               string
	VOut               uint32
	Value              uint64
	ScriptPubKey       []byte
	Address            string
	Confirmed          bool
	ConfirmationHeight int
	Spent              bool
	Locked             bool
	LockedBy           *uuid.UUID
}

// Key returns the unique key of the unspent.
func (u *Unspent) Key() UnspentKey {
	return UnspentKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// Lock marks the unspent as reserved by the send identified by id.
func (u *Unspent) Lock(id *uuid.UUID) {
	u.Locked = true
	u.LockedBy = id
}

// Unlock releases the unspent.
func (u *Unspent) Unlock() {
	u.Locked = false
	u.LockedBy = nil
}

// IsLocked returns whether the unspent is reserved by an in-flight send.
func (u *Unspent) IsLocked() bool {
	return u.Locked
}
