package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by engine operations. Validation runs before any
// mutation; once validation passes the mutation completes without a rollback
// path. Callers match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrNotAssigned         = errors.New("not assigned")
	ErrAlreadyActed        = errors.New("already acted")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSchedule     = errors.New("invalid schedule")
)

// BalanceError reports a redemption the kid cannot afford. It unwraps to
// ErrInsufficientBalance so errors.Is keeps working; handlers pull the
// figures out with errors.As to build the structured response.
type BalanceError struct {
	Reward    string
	Kid       string
	Available float64
	Required  float64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("reward %q costs %.1f, kid %q has %.1f: %s",
		e.Reward, e.Required, e.Kid, e.Available, ErrInsufficientBalance)
}

func (e *BalanceError) Unwrap() error { return ErrInsufficientBalance }

// Short is how many points the kid is missing.
func (e *BalanceError) Short() float64 { return e.Required - e.Available }
