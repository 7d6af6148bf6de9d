package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paysponge/spongewallet-go/models"
)

// validateAmount requires a positive decimal string such as "0.1" or "100".
func validateAmount(field, amount string) error {
	if amount == "" {
		return models.Invalid("%s is required", field)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Invalid("%s must be a decimal number, got %q", field, amount)
	}
	if !d.IsPositive() {
		return models.Invalid("%s must be greater than zero, got %q", field, amount)
	}
	return nil
}

func validateUUID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return models.Invalid("%s must be a UUID, got %q", field, value)
	}
	return nil
}

func validateChain(chain models.Chain) error {
	if !chain.Valid() {
		return models.Invalid("unknown chain: %s", chain)
	}
	return nil
}
