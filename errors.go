// Copyright (c) 2024 Neomantra Corp

package idat

import "fmt"

// Error kind sentinels. Every error this package raises itself wraps exactly
// one of these, so callers can branch with errors.Is without parsing strings.
// An error returned by the destination io.Writer while WriteModel emits bytes
// is passed back as that io.Writer reported it and wraps none of these.
var (
	// ErrFormat marks a malformed file: bad magic, unsupported version,
	// unknown section code, a corrupt varint length, or invalid UTF-8.
	ErrFormat = fmt.Errorf("idat: format error")
	// ErrInvariant marks data that parsed cleanly but violates a documented
	// cross-field or per-field invariant.
	ErrInvariant = fmt.Errorf("idat: invariant violation")
	// ErrIO marks a short read against the underlying stream, or a failure
	// to open, create, seek, close or rename a file.
	ErrIO = fmt.Errorf("idat: io error")
	// ErrUsage marks a caller error: an out-of-range mixer fraction, or
	// incompatible reference/admixture models.
	ErrUsage = fmt.Errorf("idat: usage error")
)

func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

func invariantErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

func ioErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIO, fmt.Sprintf(format, args...))
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func unexpectedBytesError(got int, want int) error {
	return ioErrorf("expected %d bytes, got %d", want, got)
}

func unknownSectionCodeError(code uint16) error {
	return formatErrorf("unknown section code %d", code)
}
