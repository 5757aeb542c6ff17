package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod int

const (
	PaymentMethodCash       PaymentMethod = 0
	PaymentMethodCreditCard PaymentMethod = 1
	PaymentMethodDebitCard  PaymentMethod = 2
	PaymentMethodPix        PaymentMethod = 3
	PaymentMethodTransfer   PaymentMethod = 4
)

func (m PaymentMethod) String() string {
	return [...]string{"CASH", "CREDIT_CARD", "DEBIT_CARD", "PIX", "TRANSFER"}[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "CASH":
		*m = PaymentMethodCash
	case "CREDIT_CARD":
		*m = PaymentMethodCreditCard
	case "DEBIT_CARD":
		*m = PaymentMethodDebitCard
	case "PIX":
		*m = PaymentMethodPix
	case "TRANSFER":
		*m = PaymentMethodTransfer
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
