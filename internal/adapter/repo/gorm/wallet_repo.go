package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petverse/internal/app/ports"
)

type walletRow struct {
	OwnerID   string `gorm:"primaryKey"`
	Coins     int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (walletRow) TableName() string { return "wallets" }

type ledgerRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID   string `gorm:"index;not null"`
	Amount    int    `gorm:"not null"`
	Reason    string
	CreatedAt time.Time
}

func (ledgerRow) TableName() string { return "wallet_ledger" }

type Wallet struct {
	db *gorm.DB
}

func NewWallet(db *gorm.DB) Wallet {
	return Wallet{db: db}
}

// Spend debits atomically. The guarded UPDATE is the balance check: zero
// rows affected means the owner cannot cover the amount.
func (w Wallet) Spend(ctx context.Context, ownerID string, amount int, reason string) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&walletRow{}).
			Where("owner_id = ? AND coins >= ?", ownerID, amount).
			Updates(map[string]any{"coins": gorm.Expr("coins - ?", amount), "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrInsufficientFunds
		}
		return tx.Create(&ledgerRow{OwnerID: ownerID, Amount: -amount, Reason: reason}).Error
	})
}

// Deposit credits the owner, creating the wallet row on first use.
func (w Wallet) Deposit(ctx context.Context, ownerID string, amount int, reason string) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&walletRow{}).
			Where("owner_id = ?", ownerID).
			Updates(map[string]any{"coins": gorm.Expr("coins + ?", amount), "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&walletRow{OwnerID: ownerID, Coins: amount}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&ledgerRow{OwnerID: ownerID, Amount: amount, Reason: reason}).Error
	})
}
