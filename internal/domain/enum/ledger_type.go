package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LedgerType is the kind of party an account ledger belongs to
type LedgerType int

const (
	LedgerTypeCustomer LedgerType = 0
	LedgerTypeFarmer   LedgerType = 1
)

func (t LedgerType) String() string {
	switch t {
	case LedgerTypeCustomer:
		return "Customer"
	case LedgerTypeFarmer:
		return "Farmer"
	}
	return fmt.Sprintf("LedgerType(%d)", int(t))
}

func (t LedgerType) IsValid() bool {
	return t == LedgerTypeCustomer || t == LedgerTypeFarmer
}

func (t LedgerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LedgerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = LedgerType(i)
		return nil
	}
	parsed, err := ParseLedgerType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseLedgerType accepts a ledger type name or its numeric value
func ParseLedgerType(s string) (LedgerType, error) {
	switch s {
	case "Customer", "customer", "0":
		return LedgerTypeCustomer, nil
	case "Farmer", "farmer", "1":
		return LedgerTypeFarmer, nil
	}
	return LedgerTypeCustomer, fmt.Errorf("unknown ledger type %q", s)
}

func (t LedgerType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *LedgerType) Scan(value interface{}) error {
	if value == nil {
		*t = LedgerTypeCustomer
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = LedgerType(v)
	case int32:
		*t = LedgerType(v)
	case int:
		*t = LedgerType(v)
	}
	return nil
}
