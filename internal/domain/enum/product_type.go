package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductType distinguishes stocked products from services
type ProductType int

const (
	ProductTypeProduct ProductType = 0
	ProductTypeService ProductType = 1
)

func (t ProductType) String() string {
	return [...]string{"PRODUCT", "SERVICE"}[t]
}

func (t ProductType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ProductType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ProductType(i)
		return nil
	}
	switch str {
	case "PRODUCT":
		*t = ProductTypeProduct
	case "SERVICE":
		*t = ProductTypeService
	}
	return nil
}

func (t ProductType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ProductType) Scan(value interface{}) error {
	if value == nil {
		*t = ProductTypeProduct
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ProductType(v)
	case int:
		*t = ProductType(v)
	}
	return nil
}
