package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Numeric tags (gt, lte...) compare decimals through their float value.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateInput checks the `validate` tags of a request struct and turns the first
// failure into an apperrors.ErrValidation.
func validateInput(req any) error {
	err := inputValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", apperrors.ErrValidation, fe.Field(), fe.Param())
		case "required", "required_with":
			return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, fe.Field())
		case "max":
			return fmt.Errorf("%w: %s is too long", apperrors.ErrValidation, fe.Field())
		default:
			return fmt.Errorf("%w: %s is invalid", apperrors.ErrValidation, fe.Field())
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

// validateAmount rejects non-positive amounts and amounts finer than a cent.
func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than 0", apperrors.ErrValidation, field)
	}
	if !amount.Equal(amount.Round(domain.MoneyScale)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", apperrors.ErrValidation, field, domain.MoneyScale)
	}
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s is too large", apperrors.ErrValidation, field)
	}
	return nil
}

// maxAmount is the largest value a NUMERIC(14,2) column holds.
var maxAmount = decimal.RequireFromString("999999999999.99")

// validateTender checks the fields shared by every payment request.
func validateTender(memberID string, amount decimal.Decimal, method domain.PaymentMethod, proof string) error {
	if strings.TrimSpace(memberID) == "" {
		return fmt.Errorf("%w: memberID is required", apperrors.ErrValidation)
	}
	if err := validateAmount("amount", amount); err != nil {
		return err
	}
	if !method.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	if method.RequiresProof() && strings.TrimSpace(proof) == "" {
		return fmt.Errorf("%w: a proof of transfer is required for bank transfers", apperrors.ErrValidation)
	}
	return nil
}
