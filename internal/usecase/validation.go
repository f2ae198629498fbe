package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

func validatePayment(method model.PaymentMethod, info *model.PaymentInfo) error {
	if !method.Valid() {
		return domainErrors.ErrInvalidPaymentMethod
	}
	if method != model.PaymentMethodOnline {
		return nil
	}
	if info == nil || strings.TrimSpace(info.PaymentID) == "" {
		return domainErrors.ErrMissingPaymentDetails
	}
	return nil
}

// NormalizeStatus trims status text; any non-empty value is accepted.
func NormalizeStatus(status string) (model.OrderStatus, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", domainErrors.ErrInvalidStatus
	}
	return model.OrderStatus(status), nil
}
