package models

import "time"

type Wallet struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Balance          int       `json:"balance"`
	TotalEarnings    int       `json:"total_earnings"`
	TotalWithdrawals int       `json:"total_withdrawals"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type WalletTransaction struct {
	ID            int64     `json:"id"`
	WalletID      int64     `json:"wallet_id"`
	Type          string    `json:"type"`
	Amount        int       `json:"amount"`
	Description   *string   `json:"description"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	BalanceAfter  int       `json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}

type Payment struct {
	ID            int64      `json:"id"`
	JobID         int64      `json:"job_id"`
	PayerID       int64      `json:"payer_id"`
	PayeeID       int64      `json:"payee_id"`
	Amount        int        `json:"amount"`
	Status        string     `json:"status"`
	PaymentMethod *string    `json:"payment_method"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
}
