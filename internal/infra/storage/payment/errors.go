package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")
	ErrAlreadyPaid     = errors.New("payment.repository: reservation already paid")
	ErrBuildQuery      = errors.New("payment.repository: failed to build query")
	ErrExecQuery       = errors.New("payment.repository: failed to execute query")
	ErrScanRow         = errors.New("payment.repository: failed to scan row")
)
