// Copyright (c) 2024 Neomantra Corp

package idat

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("varint codec", func() {
	DescribeTable("encodes and decodes the documented examples",
		func(value uint32, wire []byte) {
			var buf bytes.Buffer
			Expect(writeVarLen(&buf, value)).To(Succeed())
			Expect(buf.Bytes()).To(Equal(wire))

			decoded, err := readVarLen(bytes.NewReader(wire))
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(value))
		},
		Entry("5 fits in one byte", uint32(5), []byte{0x05}),
		Entry("133 needs a continuation byte", uint32(133), []byte{0x85, 0x01}),
		Entry("128 needs a continuation byte", uint32(128), []byte{0x80, 0x01}),
		Entry("0 encodes as a single zero byte", uint32(0), []byte{0x00}),
	)

	It("rejects an unterminated continuation sequence", func() {
		wire := bytes.Repeat([]byte{0x80}, 6)
		_, err := readVarLen(bytes.NewReader(wire))
		Expect(err).To(MatchError(ErrFormat))
	})

	It("always emits the shortest encoding", func() {
		Expect(varLenSize(127)).To(Equal(1))
		Expect(varLenSize(128)).To(Equal(2))
		Expect(varLenSize(16383)).To(Equal(2))
		Expect(varLenSize(16384)).To(Equal(3))
	})
})

var _ = Describe("string codec", func() {
	It("encodes HELLO as a length byte followed by its bytes", func() {
		var buf bytes.Buffer
		Expect(writeString(&buf, "HELLO")).To(Succeed())
		Expect(buf.Bytes()).To(Equal([]byte{0x05, 'H', 'E', 'L', 'L', 'O'}))
	})

	It("round-trips an empty string", func() {
		var buf bytes.Buffer
		Expect(writeString(&buf, "")).To(Succeed())
		decoded, err := readString(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(""))
	})

	It("round-trips a UTF-8 string", func() {
		var buf bytes.Buffer
		s := "R01C01 – café"
		Expect(writeString(&buf, s)).To(Succeed())
		decoded, err := readString(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(s))
	})

	It("reports EncodedStringLength matching what writeString emits", func() {
		var buf bytes.Buffer
		s := "a sample id"
		Expect(writeString(&buf, s)).To(Succeed())
		Expect(EncodedStringLength(s)).To(Equal(buf.Len()))
	})

	It("rejects a string whose declared length exceeds the implementation ceiling", func() {
		var lenBuf bytes.Buffer
		Expect(writeVarLen(&lenBuf, maxStringBytes+1)).To(Succeed())
		_, err := readString(bytes.NewReader(lenBuf.Bytes()))
		Expect(err).To(MatchError(ErrFormat))
	})
})

var _ = Describe("fixed-width integer primitives", func() {
	It("round-trips uint16 little-endian", func() {
		var buf bytes.Buffer
		Expect(writeUint16(&buf, 0x0102)).To(Succeed())
		Expect(buf.Bytes()).To(Equal([]byte{0x02, 0x01}))
		v, err := readUint16(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint16(0x0102)))
	})

	It("round-trips uint64 little-endian", func() {
		var buf bytes.Buffer
		Expect(writeUint64(&buf, 3)).To(Succeed())
		v, err := readUint64(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint64(3)))
	})

	It("turns a short read into an IOError", func() {
		_, err := readUint32(bytes.NewReader([]byte{0x01, 0x02}))
		Expect(err).To(MatchError(ErrIO))
	})
})
