package collector

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindSymbolNotFound Kind = "SYMBOL_NOT_FOUND"
	KindNetwork        Kind = "NETWORK"
	KindRateLimited    Kind = "RATE_LIMITED"
	KindProvider       Kind = "PROVIDER"
	KindInvalidRange   Kind = "INVALID_RANGE"
)

var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNetwork        = errors.New("network error")
	ErrRateLimited    = errors.New("rate limited")
	ErrProvider       = errors.New("provider error")
	ErrInvalidRange   = errors.New("invalid date range")
)

var kindSentinels = map[Kind]error{
	KindSymbolNotFound: ErrSymbolNotFound,
	KindNetwork:        ErrNetwork,
	KindRateLimited:    ErrRateLimited,
	KindProvider:       ErrProvider,
	KindInvalidRange:   ErrInvalidRange,
}

// FetchError is returned by every Fetcher. It matches the sentinel of its Kind with errors.Is
// and unwraps to the underlying cause.
type FetchError struct {
	Kind   Kind
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.Symbol, kindSentinels[e.Kind])
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Symbol, kindSentinels[e.Kind], e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Retryable reports whether another attempt could succeed.
func (e *FetchError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindRateLimited
}

func newFetchError(kind Kind, symbol string, err error) *FetchError {
	return &FetchError{Kind: kind, Symbol: symbol, Err: err}
}
