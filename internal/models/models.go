package models

import (
	"time"
)

const (
	TypeIncome  = "I"
	TypeOutcome = "O"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

type Account struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_accounts_user_name" json:"name"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:idx_accounts_user_name" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"-"`
}

type Transfer struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      Money     `gorm:"type:numeric(15,2);not null" json:"amount" swaggertype:"string" example:"100.00"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	AccOriID    uint64    `gorm:"column:acc_ori_id;not null" json:"acc_ori_id"`
	AccDestID   uint64    `gorm:"column:acc_dest_id;not null" json:"acc_dest_id"`
	User        *User     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	AccOri      *Account  `gorm:"foreignKey:AccOriID;constraint:OnDelete:RESTRICT" json:"-"`
	AccDest     *Account  `gorm:"foreignKey:AccDestID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// Transaction is a ledger entry. Entries generated by a transfer carry its id
// in TransferID.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Amount      Money     `gorm:"type:numeric(15,2);not null" json:"amount" swaggertype:"string" example:"100.00"`
	Type        string    `gorm:"size:1;not null" json:"type"`
	AccID       uint64    `gorm:"column:acc_id;not null;index" json:"acc_id"`
	TransferID  *uint64   `gorm:"index" json:"transfer_id"`
	Acc         *Account  `gorm:"foreignKey:AccID;constraint:OnDelete:RESTRICT" json:"-"`
	Transfer    *Transfer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// Balance is the sum of an account's transaction amounts.
type Balance struct {
	AccID uint64 `gorm:"column:acc_id" json:"id"`
	Name  string `gorm:"column:name" json:"name"`
	Sum   Money  `gorm:"column:sum" json:"sum" swaggertype:"string" example:"-100.00"`
}
