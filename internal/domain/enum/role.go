package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents a user role in the store
type Role int

const (
	RoleAdmin       Role = 0
	RoleManager     Role = 1
	RoleCashier     Role = 2
	RoleStockKeeper Role = 3
	RoleAuditor     Role = 4
)

func (r Role) String() string {
	return [...]string{"ADMIN", "MANAGER", "CASHIER", "STOCK_KEEPER", "AUDITOR"}[r]
}

// ParseRole maps a role name to its Role value, defaulting to CASHIER
func ParseRole(s string) Role {
	switch s {
	case "ADMIN":
		return RoleAdmin
	case "MANAGER":
		return RoleManager
	case "CASHIER":
		return RoleCashier
	case "STOCK_KEEPER":
		return RoleStockKeeper
	case "AUDITOR":
		return RoleAuditor
	}
	return RoleCashier
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	*r = ParseRole(str)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCashier
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case int:
		*r = Role(v)
	}
	return nil
}
