package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus int

const (
	QuoteStatusDraft     QuoteStatus = 0
	QuoteStatusSent      QuoteStatus = 1
	QuoteStatusAccepted  QuoteStatus = 2
	QuoteStatusRejected  QuoteStatus = 3
	QuoteStatusConverted QuoteStatus = 4
)

// quoteTransitions is the allowed transition table. REJECTED and CONVERTED
// are terminal; conversion is legal from any non-terminal status.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:    {QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusConverted},
	QuoteStatusSent:     {QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusConverted},
	QuoteStatusAccepted: {QuoteStatusConverted},
}

// CanTransitionTo reports whether moving from s to target is allowed
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s
func (s QuoteStatus) IsTerminal() bool {
	return len(quoteTransitions[s]) == 0
}

func (s QuoteStatus) String() string {
	return [...]string{"DRAFT", "SENT", "ACCEPTED", "REJECTED", "CONVERTED"}[s]
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "DRAFT":
		*s = QuoteStatusDraft
	case "SENT":
		*s = QuoteStatusSent
	case "ACCEPTED":
		*s = QuoteStatusAccepted
	case "REJECTED":
		*s = QuoteStatusRejected
	case "CONVERTED":
		*s = QuoteStatusConverted
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
