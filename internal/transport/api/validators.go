package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage превращает ошибку биндинга в сообщение для клиента,
// называя конкретные пропущенные поля, когда валидатор их знает.
func bindingErrorMessage(bindErr error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(bindErr, &validationErrs) {
		return "invalid request body"
	}

	var fields = make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == "required" {
			fields = append(fields, jsonFieldName(fieldErr.Field()))
		}
	}
	if len(fields) == 0 {
		return "invalid request body"
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", "))
}

// jsonFieldName восстанавливает json имя поля из имени структурного поля запроса.
func jsonFieldName(structField string) string {
	switch structField {
	case "OrderID":
		return "razorpay_order_id"
	case "PaymentID":
		return "razorpay_payment_id"
	case "Signature":
		return "razorpay_signature"
	case "Amount":
		return "amount"
	case "Currency":
		return "currency"
	default:
		return strings.ToLower(structField)
	}
}
