package domain

import "errors"

// Sentinel errors used for control flow inside the engine and stores.
// The HTTP layer maps these onto apperror codes; internally they are
// matched with errors.Is.
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrVersionConflict   = errors.New("wallet version conflict")
	ErrUnknownCategory   = errors.New("unknown service category")
	ErrWalletNotActive   = errors.New("wallet is not active")
)
