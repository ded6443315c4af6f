// Copyright (c) 2024 Neomantra Corp

package idat

import (
	"encoding/binary"
	"io"
	"unicode/utf8"
)

///////////////////////////////////////////////////////////////////////////////
// Fixed-width little-endian integer primitives.
//
// Every reader consumes exactly n bytes via io.ReadFull and turns a short
// read into ErrIO; every writer emits exactly n bytes.

func readUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ioErrorf("reading uint8: %s", err)
	}
	return b[0], nil
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ioErrorf("reading uint16: %s", err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ioErrorf("reading uint32: %s", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ioErrorf("reading uint64: %s", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func writeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// readChars reads exactly n bytes and decodes them as UTF-8, with no
// trimming — used for the fixed-length 4-byte magic, never for
// null-terminated or length-prefixed fields.
func readChars(r io.Reader, n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", ioErrorf("reading %d-byte char block: %s", n, err)
	}
	return string(b), nil
}

func writeChars(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

///////////////////////////////////////////////////////////////////////////////
// Variable-length string codec: a 7-bit continuation length prefix,
// followed by that many raw UTF-8 bytes.

// readVarLen decodes the 7-bit continuation length prefix: bytes are
// consumed until one is read with its high bit clear. The shortest
// representation is assumed but not enforced on read (the wire format never
// rejects a non-minimal encoding; writeVarLen only ever emits the minimal
// one).
func readVarLen(r io.Reader) (uint32, error) {
	var length uint32
	var shift uint
	for {
		if shift > 28 {
			// a 5th continuation byte can't happen for a uint32 length
			return 0, formatErrorf("string length overflow")
		}
		b, err := readUint8(r)
		if err != nil {
			return 0, err
		}
		length |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return length, nil
}

// writeVarLen encodes n using 7-bit continuation, high bit set on every
// byte but the last, which is the shortest possible representation.
func writeVarLen(w io.Writer, n uint32) error {
	for {
		b := byte(n & 0x7F)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		if err := writeUint8(w, b); err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// varLenSize returns the number of bytes writeVarLen would emit for n,
// without doing any I/O.
func varLenSize(n uint32) int {
	size := 1
	for n >= 0x80 {
		n >>= 7
		size++
	}
	return size
}

// readString decodes a length-prefixed UTF-8 string: a varint byte count
// followed by that many bytes.
func readString(r io.Reader) (string, error) {
	n, err := readVarLen(r)
	if err != nil {
		return "", err
	}
	if n > maxStringBytes {
		return "", formatErrorf("string length %d exceeds implementation ceiling %d", n, maxStringBytes)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", ioErrorf("reading %d-byte string body: %s", n, err)
	}
	if !utf8.Valid(b) {
		return "", formatErrorf("%d-byte string body is not valid UTF-8", n)
	}
	return string(b), nil
}

// writeString encodes s as its varint length prefix followed by its bytes.
func writeString(w io.Writer, s string) error {
	if err := writeVarLen(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// EncodedStringLength returns len(encode(s)): the number of bytes writeString
// would emit for s. The Writer must use this — not len(s) alone — when
// computing section sizes for the table of contents.
func EncodedStringLength(s string) int {
	return varLenSize(uint32(len(s))) + len(s)
}

// maxStringBytes bounds a single string body to guard against a corrupt or
// hostile length prefix driving an enormous allocation.
const maxStringBytes = 1 << 28
