package payroll

import "errors"

var (
	ErrNotFound      = errors.New("payroll record not found")
	ErrUnknownStatus = errors.New("unknown payroll status")
	ErrSuperseded    = errors.New("payroll fetch superseded by a newer request")
)
