package webhook

import "errors"

var (
	ErrEventNotFound      = errors.New("webhook event not found")
	ErrDuplicateDelivery  = errors.New("webhook delivery already received")
	ErrPayloadTooLarge    = errors.New("webhook payload too large")
	ErrMalformedPayload   = errors.New("malformed webhook payload")
	ErrUnknownProvider    = errors.New("unknown webhook provider")
	ErrVerificationFailed = errors.New("webhook verification failed")
)
