/*
Package wire implements the fedchain consensus serialization format and the
core data model built on it: transactions, block headers and blocks, plus the
federation proof that takes the place of proof-of-work.

# Consensus format

Every structure serializes to a single canonical byte sequence: fixed-width
integers are little-endian, variable-length fields are prefixed with a
compact-size varint, and varints are required to be minimal (a value encoded
with more bytes than necessary is rejected with a MessageError wrapping
ErrNonCanonicalVarInt). Decoding is total and bounds-checked; truncated input
surfaces as a wrapped io error, never a panic or a partially-filled value.
Because the encoding is injective, transaction and block ids - the double
sha256 of the serialized bytes - are stable identifiers.

# Errors

Errors returned by this package are either the raw underlying error (io
errors with attached stack traces) or a *MessageError describing a malformed
message. Use errors.As to distinguish protocol violations from io failures.
*/
package wire
