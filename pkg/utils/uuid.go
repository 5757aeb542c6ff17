package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReceiptNo generates a unique receipt number for a sale
func GenerateReceiptNo() string {
	return "VND-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateQuoteReference generates a unique reference for a quote
func GenerateQuoteReference() string {
	return "ORC-" + strings.ToUpper(uuid.New().String()[:8])
}

// ShortID returns the short display suffix of an entity ID, as printed
// on receipts ("Venda #A1B2C3D4")
func ShortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
