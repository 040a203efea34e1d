package memory

import (
	"context"

	"petverse/internal/app/ports"
)

type Wallet struct {
	store *Store
}

func NewWallet(store *Store) Wallet {
	return Wallet{store: store}
}

func (w Wallet) Spend(_ context.Context, ownerID string, amount int, _ string) error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	balance := w.store.balances[ownerID]
	if balance < amount {
		return ports.ErrInsufficientFunds
	}
	w.store.balances[ownerID] = balance - amount
	return nil
}
