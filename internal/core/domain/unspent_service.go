package domain

// Balance holds the confirmed and unconfirmed amounts, in satoshis, of a set
// of unspents. Amounts are tracked separately and never mixed.
type Balance struct {
	Confirmed   uint64
	Unconfirmed uint64
}

// Total returns the sum of confirmed and unconfirmed amounts.
func (b Balance) Total() uint64 {
	return b.Confirmed + b.Unconfirmed
}

// CountBalance returns the balance of the given unspents, skipping those
// already spent.
func CountBalance(unspents []Unspent) Balance {
	balance := Balance{}
	for _, u := range unspents {
		if u.Spent {
			continue
		}
		if u.Confirmed {
			balance.Confirmed += u.Value
		} else {
			balance.Unconfirmed += u.Value
		}
	}
	return balance
}

// DetectReorg compares the freshly fetched unspents of an address against
// the locally known ones and returns whether a reorg happened: a previously
// confirmed unspent disappeared, or its confirmation height decreased.
func DetectReorg(known, fetched []Unspent) bool {
	fetchedByKey := make(map[UnspentKey]Unspent, len(fetched))
	for _, u := range fetched {
		fetchedByKey[u.Key()] = u
	}

	for _, old := range known {
		if !old.Confirmed || old.Spent {
			continue
		}
		fresh, ok := fetchedByKey[old.Key()]
		if !ok {
			return true
		}
		if fresh.Confirmed && fresh.ConfirmationHeight < old.ConfirmationHeight {
			return true
		}
		if !fresh.Confirmed {
			return true
		}
	}
	return false
}
