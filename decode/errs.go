package decode

import (
	"errors"
	"fmt"

	"github.com/signadot/gbf/cursor"
)

var (
	ErrHeader       = errors.New("header mismatch")
	ErrVersion      = errors.New("unsupported version")
	ErrTruncated    = cursor.ErrTruncated
	ErrUnterminated = errors.New("unterminated node")
	ErrRedefined    = errors.New("node redefined")
	ErrDepth        = errors.New("nesting too deep")
	ErrTooManyNodes = errors.New("too many nodes")
	ErrTooLarge     = errors.New("input too large")
)

// HeaderError reports magic bytes other than "GBF". Found holds what was
// there, which may be shorter than the magic.
type HeaderError struct {
	Found []byte
}

func (e *HeaderError) Unwrap() error {
	return ErrHeader
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: expected %q, found %q (% x)", ErrHeader.Error(), Magic, e.Found, e.Found)
}

type VersionError struct {
	Version uint32
}

func (e *VersionError) Unwrap() error {
	return ErrVersion
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s %d (supported: %d)", ErrVersion.Error(), e.Version, Version)
}

// NodeError locates a structural problem in a node encoding.
type NodeError struct {
	Off    int
	WireID uint32
	Byte   byte
	Err    error
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func (e *NodeError) Error() string {
	switch e.Err {
	case ErrUnterminated:
		return fmt.Sprintf("%s: node %d ends with byte %#02x at offset %#x", e.Err.Error(), e.WireID, e.Byte, e.Off)
	case ErrRedefined:
		return fmt.Sprintf("%s: node %d completed twice, second time at offset %#x", e.Err.Error(), e.WireID, e.Off)
	}
	return fmt.Sprintf("%s: node %d at offset %#x", e.Err.Error(), e.WireID, e.Off)
}
