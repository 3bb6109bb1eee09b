// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNonCanonicalVarInt is the underlying error returned (wrapped inside a
// MessageError) when a variable length integer was encoded using more bytes
// than the minimal form for its value. Non-minimal encodings are rejected
// everywhere since ids derived from serialized bytes are only stable when
// every value has exactly one encoding.
var ErrNonCanonicalVarInt = errors.New("non-canonical varint")

// MessageError describes an issue with a message.
// An example of some potential issues are messages from the wrong fedchain
// network, invalid messages, data which does not conform to the expected
// format, etc.
//
// This provides a mechanism for the caller to type assert the error to
// differentiate between general io errors such as io.EOF and issues that
// resulted from malformed messages.
type MessageError struct {
	Func        string // Function name
	Description string // Human readable description of the issue
	Err         error  // Underlying error, possibly nil
}

// Error satisfies the error interface and prints human-readable errors.
func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%v: %v", e.Func, e.Description)
	}
	return e.Description
}

// Unwrap returns the underlying error, for use with errors.Is and errors.As.
func (e *MessageError) Unwrap() error {
	return e.Err
}

// messageError creates an error for the given function and description.
func messageError(f string, desc string) *MessageError {
	return &MessageError{Func: f, Description: desc}
}

// nonCanonicalVarIntError creates a MessageError wrapping
// ErrNonCanonicalVarInt for a varint that used a wider encoding than its
// value requires.
func nonCanonicalVarIntError(f string, rv, min uint64, typ string) *MessageError {
	desc := fmt.Sprintf("non-canonical varint %x - discriminant %s must "+
		"encode a value greater than %x", rv, typ, min)
	return &MessageError{Func: f, Description: desc, Err: ErrNonCanonicalVarInt}
}
