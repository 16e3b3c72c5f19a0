package common

import "errors"

// AsError is errors.As without the need of declaring the target upfront.
func AsError[T error](err error) (T, bool) {
	var target T
	return target, errors.As(err, &target)
}
