package explorer

type status struct {
	Confirmed   bool `json:"confirmed"`
	BlockHeight int  `json:"block_height"`
}

type witnessUtxo struct {
	UHash    string `json:"txid"`
	UIndex   uint32 `json:"vout"`
	UValue   uint64 `json:"value"`
	UStatus  status `json:"status"`
	UScript  []byte
	UAddress string
}

// NewWitnessUtxo returns a new Utxo for the given outpoint, locked to the
// given script and address.
func NewWitnessUtxo(
	hash string, index uint32,
	value uint64,
	script []byte, address string,
	confirmed bool, blockHeight int,
) Utxo {
	return witnessUtxo{
		UHash:    hash,
		UIndex:   index,
		UValue:   value,
		UScript:  script,
		UAddress: address,
		UStatus:  status{Confirmed: confirmed, BlockHeight: blockHeight},
	}
}

func (wu witnessUtxo) Hash() string {
	return wu.UHash
}

func (wu witnessUtxo) Index() uint32 {
	return wu.UIndex
}

func (wu witnessUtxo) Value() uint64 {
	return wu.UValue
}

func (wu witnessUtxo) Script() []byte {
	return wu.UScript
}

func (wu witnessUtxo) Address() string {
	return wu.UAddress
}

func (wu witnessUtxo) IsConfirmed() bool {
	return wu.UStatus.Confirmed
}

func (wu witnessUtxo) ConfirmationHeight() int {
	return wu.UStatus.BlockHeight
}
