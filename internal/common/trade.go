package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is an immutable record of one execution between a resting maker
// and an incoming aggressor, identified by buyer/seller order id.
type Trade struct {
	ID        string
	BuyerID   string
	SellerID  string
	Price     decimal.Decimal
	Volume    int64
	Timestamp time.Time
	TakerSide Side
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade(id=%s buyer=%s seller=%s price=%s vol=%d taker=%s ts=%s)",
		t.ID, t.BuyerID, t.SellerID, t.Price, t.Volume, t.TakerSide,
		t.Timestamp.Format(time.RFC3339Nano),
	)
}

// AuditRecord is an append-only entry noting a volume change on a resting
// order: a full removal (cancel/supersede) is recorded as delta == -1; a
// decrease records the new remaining volume.
type AuditRecord struct {
	ID          string
	Timestamp   time.Time
	VolumeDelta int64
}

const AuditFullRemoval int64 = -1
