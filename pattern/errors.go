package pattern

import "errors"

// ErrFormat is returned for malformed pattern-field text: unbalanced
// brackets, mixed-bracket overlap, or reserved "{...}" subset syntax.
var ErrFormat = errors.New("malformed pattern")
