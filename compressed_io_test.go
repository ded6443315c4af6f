// Copyright (c) 2024 Neomantra Corp

package idat_test

import (
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yhoogstrate/idat-tools"
)

var _ = Describe("compressed I/O", func() {
	DescribeTable("round-trips content through MakeCompressedWriter/OpenSeekableSource",
		func(suffix string) {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "sample"+suffix)

			writer, closeWriter, err := idat.MakeCompressedWriter(path)
			Expect(err).NotTo(HaveOccurred())
			_, err = io.WriteString(writer, "hello idat")
			Expect(err).NotTo(HaveOccurred())
			closeWriter()

			src, err := idat.OpenSeekableSource(path)
			Expect(err).NotTo(HaveOccurred())
			if f, ok := src.(*os.File); ok {
				defer f.Close()
			}
			content, err := io.ReadAll(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("hello idat"))
		},
		Entry("uncompressed", ""),
		Entry("gzip", ".gz"),
		Entry("zstd", ".zst"),
	)
})
