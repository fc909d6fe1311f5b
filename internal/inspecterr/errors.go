// Package inspecterr defines the inspector's error kinds as sentinel
// values so callers can use errors.Is regardless of the contextual
// wrapping (offset, offending field) applied at the point of failure.
package inspecterr

import "github.com/pkg/errors"

var (
	// IOError: file absent, unreadable, or truncated at the I/O layer.
	IOError = errors.New("io-error")
	// BadHeader: the file's leading 4 bytes are not "PAR1".
	BadHeader = errors.New("bad-header")
	// BadFooter: the file's trailing 4 bytes are not "PAR1".
	BadFooter = errors.New("bad-footer")
	// DecodeError: malformed compact-protocol stream.
	DecodeError = errors.New("decode-error")
	// BadArgument: programmer error, e.g. JSONEncode called with a nil slice.
	BadArgument = errors.New("bad-argument")
	// UnsupportedVersion: a reporting-layer request needs a file layout
	// this file doesn't have (e.g. page index absent).
	UnsupportedVersion = errors.New("unsupported-version")
)

// Wrap annotates err with a sentinel kind and a message, preserving
// errors.Is(result, kind) for the caller.
func Wrap(kind error, format string, args ...interface{}) error {
	return errors.Wrapf(kind, format, args...)
}
