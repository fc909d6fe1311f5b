package report

import (
	"github.com/pkg/errors"

	"github.com/parquet-forensics/inspector/internal/inspecterr"
)

// DefaultInlineBinaryLimit is the longest raw byte value JSONEncode will
// embed inline before switching to a truncated preview, when the caller
// doesn't override it (inlineLimit <= 0). Matches
// config.DefaultConfig().TruncateBinaryBytes.
const DefaultInlineBinaryLimit = 32

// JSONEncode renders raw bytes as a tagged JSON-ready map: the full
// value inline when it's at most inlineLimit bytes (DefaultInlineBinaryLimit
// if inlineLimit <= 0), or a truncated preview plus the true length when
// it's longer. A nil slice is a bad-argument error — json_encode exists
// specifically to sanitize binary payloads, not to be a generic encoder.
func JSONEncode(raw []byte, inlineLimit int) (map[string]any, error) {
	if raw == nil {
		return nil, errors.Wrap(inspecterr.BadArgument, "json_encode requires a non-nil []byte")
	}
	if inlineLimit <= 0 {
		inlineLimit = DefaultInlineBinaryLimit
	}

	out := map[string]any{
		"type":   "binary",
		"length": len(raw),
	}
	if len(raw) <= inlineLimit {
		out["value"] = bytesToInts(raw)
	} else {
		out["value_truncated"] = bytesToInts(raw[:inlineLimit])
	}
	return out, nil
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
