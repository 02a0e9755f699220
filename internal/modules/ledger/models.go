package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment is one repayment against an entry, appended in application order.
type Payment struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Payments []Payment

// Entry is a debt owed to a lender. OriginalAmount is fixed at creation;
// RemainingAmount only decreases, with a floor of zero.
type Entry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string          `gorm:"size:100;not null;index" json:"userId"`
	Name            string          `gorm:"size:200;not null" json:"name"`
	Gateway         string          `gorm:"size:100" json:"gateway"`
	EntryDate       string          `gorm:"size:10" json:"date"`
	OriginalAmount  decimal.Decimal `gorm:"type:numeric(14,2)" json:"originalAmount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"remainingAmount"`
	Payments        datatypes.JSON  `gorm:"type:jsonb" json:"payments"`
	DateAdded       time.Time       `gorm:"index" json:"dateAdded"`
}

func (Entry) TableName() string { return "money_tracker_entries" }

// PaymentList decodes the stored payment history.
func (e *Entry) PaymentList() (Payments, error) {
	if len(e.Payments) == 0 {
		return Payments{}, nil
	}
	var list Payments
	if err := json.Unmarshal(e.Payments, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func marshalPayments(list Payments) datatypes.JSON {
	if list == nil {
		list = Payments{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}

type CreateRequest struct {
	UserID  string          `json:"userId"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
	Gateway string          `json:"gateway"`
}

type PaymentRequest struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}
