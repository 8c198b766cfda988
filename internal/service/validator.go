package service

import (
	"fmt"

	"github.com/alghadeer/ledger/internal/entity"
)

func ValidateCreateClientParams(p CreateClientParams) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", entity.ErrIncorrectRequestBody)
	}

	return nil
}

func ValidateCreateReceiptParams(p CreateReceiptParams) error {
	if p.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", entity.ErrIncorrectRequestBody)
	}

	return validateReceiptFields(p.Date, p.Driver, p.Car, p.City)
}

func ValidateUpdateReceiptParams(p UpdateReceiptParams) error {
	return validateReceiptFields(p.Date, p.Driver, p.Car, p.City)
}

func validateReceiptFields(date, driver, car, city string) error {
	if date == "" || driver == "" || car == "" || city == "" {
		return fmt.Errorf("%w: date, driver, car and city are required", entity.ErrIncorrectRequestBody)
	}

	return nil
}

func ValidateCreatePaymentParams(p CreatePaymentParams) error {
	if p.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", entity.ErrIncorrectRequestBody)
	}

	if p.Date == "" {
		return fmt.Errorf("%w: date is required", entity.ErrIncorrectRequestBody)
	}

	return nil
}

func ValidateUpdatePaymentParams(p UpdatePaymentParams) error {
	if p.Date == "" {
		return fmt.Errorf("%w: date is required", entity.ErrIncorrectRequestBody)
	}

	return nil
}
