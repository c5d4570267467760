// Package errors holds the shared diagnostic-rendering helper the CLI
// uses to print lexical, parse, and runtime errors uniformly. Those
// errors embed an "@(line:column)" coordinate via their own Error()
// strings (see token.Coordinate.String), except the parser's
// UnexpectedEndOfFile and LikelyLogicalError, which carry none.
package errors

import (
	"fmt"
	"io"
)

// Report writes one line per error to w.
func Report(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintln(w, err.Error())
	}
}
