package cats

import "errors"

// ErrUnknownCategory is returned when a rule or category definition
// references a category name that is not (or no longer) in the store.
var ErrUnknownCategory = errors.New("unknown category")
