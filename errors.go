package ringlog

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the ringlog package.
var (
	// ErrInvalidConfiguration is returned when the slot size or capacity is not positive.
	ErrInvalidConfiguration = ewrap.New("invalid configuration")

	// ErrAllocationFailed is returned when the backing allocator cannot satisfy the pool request.
	ErrAllocationFailed = ewrap.New("pool allocation failed")

	// ErrNotInitialized is returned when a package-level operation is used before Init or after CleanUp.
	ErrNotInitialized = ewrap.New("logging core is not initialized")

	// ErrAlreadyInitialized is returned when Init is called twice without an intervening CleanUp.
	ErrAlreadyInitialized = ewrap.New("logging core is already initialized")

	// ErrCoreClosed is returned when operating on a Core after Close.
	ErrCoreClosed = ewrap.New("logging core is closed")
)
