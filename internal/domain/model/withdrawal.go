package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// WithdrawalsCollection holds affiliate payout requests.
const WithdrawalsCollection = "withdrawals"

const (
	WithdrawalFieldUserID               = "userId"
	WithdrawalFieldStatus               = "status"
	WithdrawalFieldAmount               = "amount"
	WithdrawalFieldMethod               = "method"
	WithdrawalFieldCreatedAt            = "createdAt"
	WithdrawalFieldProcessedAt          = "processedAt"
	WithdrawalFieldProcessedBy          = "processedBy"
	WithdrawalFieldTransactionReference = "transactionReference"
)

// WithdrawalStatus is a payout request state. Admin review uses
// pending/approved/rejected, payment processing uses pending/completed/failed/refunded.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalFailed    WithdrawalStatus = "failed"
	WithdrawalRefunded  WithdrawalStatus = "refunded"
)

// Valid reports whether s is a known status.
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalPending, WithdrawalApproved, WithdrawalRejected,
		WithdrawalCompleted, WithdrawalFailed, WithdrawalRefunded:
		return true
	}
	return false
}

// Withdrawal represents an affiliate payout request.
type Withdrawal struct {
	ID                   bson.ObjectID    `bson:"_id,omitempty"`
	UserID               bson.ObjectID    `bson:"userId"`
	Status               WithdrawalStatus `bson:"status"`
	Amount               float64          `bson:"amount"`
	Method               string           `bson:"method"`
	CreatedAt            time.Time        `bson:"createdAt"`
	ProcessedAt          *time.Time       `bson:"processedAt,omitempty"`
	ProcessedBy          *bson.ObjectID   `bson:"processedBy,omitempty"`
	TransactionReference string           `bson:"transactionReference,omitempty"`
}
