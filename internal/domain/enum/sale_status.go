package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the status of a register sale
type SaleStatus int

const (
	SaleStatusPending SaleStatus = 0
	SaleStatusSettled SaleStatus = 1
)

func (s SaleStatus) String() string {
	return [...]string{"Pending", "Settled"}[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = SaleStatusPending
	case "Settled":
		*s = SaleStatusSettled
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
