// Package errs holds the error classes shared by the setup packages.
package errs

import "errors"

// ErrConfiguration is the class of every setup failure: a bad coordinate,
// layout name or shape, key, output note range or config value. It is fatal
// at startup. Package sentinels wrap it so callers can sort with errors.Is.
var ErrConfiguration = errors.New("configuration error")
