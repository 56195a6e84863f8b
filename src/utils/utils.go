package utils

import (
	"fmt"
	"reflect"

	"git.handmade.network/hmn/pngview/src/oops"
)

// Returns the provided value, or a default value if the input was zero.
func OrDefault[T comparable](v T, def T) T {
	var zero T
	if v == zero {
		return def
	} else {
		return v
	}
}

func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func IntClamp(min, t, max int) int {
	return IntMax(min, IntMin(t, max))
}

// Takes an error and panics if it is non-nil. Helps avoid `if err != nil`
// in scripts and tests. Use sparingly.
func Must(err error) {
	if !errIsNil(err) {
		panic(err)
	}
}

func Must1[T1 any](v1 T1, err error) T1 {
	Must(err)
	return v1
}

// Concrete error types wrapped in the error interface dodge a plain nil
// check, hence the reflection.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

/*
Recover a panic and convert it to a returned error. Call it like so:

	func MyFunc() (err error) {
		defer utils.RecoverPanicAsError(&err)
	}

If an error was already present, it stays on the chain so that errors.Is
still matches it, but the panicked error's message takes the lead.
*/
func RecoverPanicAsError(err *error) {
	if r := recover(); r != nil {
		var recoveredErr error
		if rerr, ok := r.(error); ok {
			recoveredErr = rerr
		} else {
			recoveredErr = fmt.Errorf("panic with value: %v", r)
		}
		if *err != nil {
			recoveredErr = fmt.Errorf("%v (while handling error: %w)", recoveredErr, *err)
		}
		*err = oops.New(recoveredErr, "panic recovered as error")
	}
}
