// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero values built with a struct literal can be
// told apart from values produced by their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set by a constructor and checked by the owner's Validate method.
//
// Example:
//
//	type Weight struct {
//	    grams int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewWeight(grams int) (Weight, error) {
//	    if grams < 0 {
//	        return Weight{}, errs.NewValueIsOutOfRangeError("grams", grams, 0, math.MaxInt)
//	    }
//	    return Weight{grams: grams, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (w Weight) Validate() error {
//	    return w.guard.Validate(ErrWeightIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
