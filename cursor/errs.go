package cursor

import (
	"errors"
	"fmt"
)

var ErrTruncated = errors.New("truncated input")

// TruncatedError reports a read past the end of the buffer.
type TruncatedError struct {
	Off  int
	Need int
	Have int
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncated
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s at offset %#x: need %d bytes, have %d", ErrTruncated.Error(), e.Off, e.Need, e.Have)
}
