package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillType selects which totals policy a bill follows
type BillType int

const (
	BillTypeCustomer BillType = 0
	BillTypeFarmer   BillType = 1
)

func (t BillType) String() string {
	switch t {
	case BillTypeCustomer:
		return "Customer"
	case BillTypeFarmer:
		return "Farmer"
	}
	return fmt.Sprintf("BillType(%d)", int(t))
}

// IsValid reports whether t is a known bill type
func (t BillType) IsValid() bool {
	return t == BillTypeCustomer || t == BillTypeFarmer
}

// LedgerType returns the party type a bill of this type is raised against
func (t BillType) LedgerType() LedgerType {
	if t == BillTypeFarmer {
		return LedgerTypeFarmer
	}
	return LedgerTypeCustomer
}

func (t BillType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *BillType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = BillType(i)
		return nil
	}
	parsed, err := ParseBillType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseBillType accepts the names used by the bill screens
func ParseBillType(s string) (BillType, error) {
	switch s {
	case "Customer", "customer", "0":
		return BillTypeCustomer, nil
	case "Farmer", "farmer", "1":
		return BillTypeFarmer, nil
	}
	return BillTypeCustomer, fmt.Errorf("unknown bill type %q", s)
}

func (t BillType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *BillType) Scan(value interface{}) error {
	if value == nil {
		*t = BillTypeCustomer
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = BillType(v)
	case int32:
		*t = BillType(v)
	case int:
		*t = BillType(v)
	}
	return nil
}
