// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = (1024 * 1024 * 32) // 32MB

// Commands used in fedchain message headers which describe the message type.
const (
	CmdTx    = "tx"
	CmdBlock = "block"
)

// Message is an interface that describes a fedchain consensus message. A type
// that implements Message has complete control over the representation of its
// data and may therefore contain additional or fewer fields than those which
// are used directly in the protocol encoded message.
//
// Network framing (message headers, checksums, peer handshakes) is the
// concern of an external transport collaborator; this package only defines
// the payload encodings themselves.
type Message interface {
	BtcDecode(io.Reader, uint32) error
	BtcEncode(io.Writer, uint32) error
	Command() string
	MaxPayloadLength(uint32) uint32
}
