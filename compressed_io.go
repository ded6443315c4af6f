// Copyright (c) 2025 Neomantra Corp
// Reader/Writer Compression helpers
//
// Adapted from Neomantra's Gist, simplified and retargeted at IDAT files,
// which are occasionally distributed gzip- or zstd-compressed:
//
// https://gist.github.com/neomantra/691a6028cdf2ac3fc6ec97d00e8ea802
//

package idat

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

///////////////////////////////////////////////////////////////////////////////

// Returns an io.Writer for the given filename, or os.Stdout if filename is
// "-". Also returns a closing function to defer and any error. If the
// filename ends in ".zst"/".zstd" the writer zstd-compresses; if it ends
// in ".gz" it gzip-compresses.
func MakeCompressedWriter(filename string) (io.Writer, func(), error) {
	var writer io.Writer
	var closer io.Closer
	fileCloser := func() {
		if closer != nil {
			closer.Close()
		}
	}
	if filename != "-" {
		file, err := os.Create(filename)
		if err != nil {
			return nil, nil, ioErrorf("creating %s: %s", filename, err)
		}
		writer, closer = file, file
	} else {
		writer, closer = os.Stdout, nil
	}

	switch {
	case strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd"):
		zstdWriter, err := zstd.NewWriter(writer)
		if err != nil {
			fileCloser()
			return nil, nil, ioErrorf("creating zstd writer: %s", err)
		}
		return zstdWriter, func() { zstdWriter.Close(); fileCloser() }, nil
	case strings.HasSuffix(filename, ".gz"):
		gzWriter := gzip.NewWriter(writer)
		return gzWriter, func() { gzWriter.Close(); fileCloser() }, nil
	default:
		return writer, fileCloser, nil
	}
}

///////////////////////////////////////////////////////////////////////////////

// OpenSeekableSource opens filename and returns an io.ReadSeeker positioned
// at its start, transparently decompressing ".zst"/".zstd" and ".gz"
// suffixed files. The Reader's table-of-contents walk seeks to arbitrary
// section offsets, which a compression stream cannot do in place — so a
// compressed source is fully decompressed into memory first and handed
// back as a bytes.Reader, while an uncompressed source is opened directly
// (no copy). filename "-" reads all of stdin into memory as-is; stdin is
// never decompressed.
func OpenSeekableSource(filename string) (io.ReadSeeker, error) {
	compressed := strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd") || strings.HasSuffix(filename, ".gz")
	if filename != "-" && !compressed {
		file, err := os.Open(filename)
		if err != nil {
			return nil, ioErrorf("opening %s: %s", filename, err)
		}
		return file, nil
	}

	var raw io.ReadCloser
	if filename == "-" {
		raw = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(filename)
		if err != nil {
			return nil, ioErrorf("opening %s: %s", filename, err)
		}
		raw = file
	}
	defer raw.Close()

	var decompressed io.Reader = raw
	switch {
	case strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd"):
		zstdReader, err := zstd.NewReader(raw)
		if err != nil {
			return nil, ioErrorf("creating zstd reader: %s", err)
		}
		defer zstdReader.Close()
		decompressed = zstdReader
	case strings.HasSuffix(filename, ".gz"):
		gzReader, err := gzip.NewReader(raw)
		if err != nil {
			return nil, ioErrorf("creating gzip reader: %s", err)
		}
		defer gzReader.Close()
		decompressed = gzReader
	}

	buf, err := io.ReadAll(decompressed)
	if err != nil {
		return nil, ioErrorf("decompressing %s: %s", filename, err)
	}
	return bytes.NewReader(buf), nil
}
