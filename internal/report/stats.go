package report

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/parquet-forensics/inspector/internal/parquetformat"
)

// DecodedStat is the immutable result of decoding a raw min/max byte
// string against a (physical type, logical type) pair. Aggregation folds
// these with plain comparisons and re-encodes once at the end, rather
// than decoding and re-encoding in a loop.
type DecodedStat struct {
	// Kind is "int", "decimal", "float", "bool", or "bytes" (passthrough).
	// "decimal" carries the same unscaled Int as "int" plus Scale, so a
	// decimal value compares and re-encodes exactly like a plain integer
	// and only needs its own Kind for display (exact scaled rendering).
	Kind  string
	Int   int64
	Scale int32
	Float float64
	Bool  bool
	Bytes []byte
}

// DecodeStat interprets raw according to the column's physical type and,
// for decimals, its logical annotation. isDecimal is true when the
// column's logical/converted type is DECIMAL, in which case scale gives
// its declared fractional digit count.
func DecodeStat(raw []byte, physical parquetformat.Type, isDecimal bool, scale int32) DecodedStat {
	switch physical {
	case parquetformat.Int32, parquetformat.Int64:
		if isDecimal {
			return DecodedStat{Kind: "decimal", Int: decodeLittleEndianSigned(raw), Scale: scale}
		}
		return DecodedStat{Kind: "int", Int: decodeLittleEndianSigned(raw)}

	case parquetformat.FixedLenByteArray:
		if isDecimal {
			return DecodedStat{Kind: "decimal", Int: decodeBigEndianSigned(raw), Scale: scale}
		}
		return DecodedStat{Kind: "bytes", Bytes: raw}

	case parquetformat.Float:
		if len(raw) == 4 {
			bits := binary.LittleEndian.Uint32(raw)
			return DecodedStat{Kind: "float", Float: float64(math.Float32frombits(bits))}
		}
		return DecodedStat{Kind: "bytes", Bytes: raw}

	case parquetformat.Double:
		if len(raw) == 8 {
			bits := binary.LittleEndian.Uint64(raw)
			return DecodedStat{Kind: "float", Float: math.Float64frombits(bits)}
		}
		return DecodedStat{Kind: "bytes", Bytes: raw}

	case parquetformat.Boolean:
		if len(raw) >= 1 {
			return DecodedStat{Kind: "bool", Bool: raw[0] != 0}
		}
		return DecodedStat{Kind: "bytes", Bytes: raw}

	default:
		return DecodedStat{Kind: "bytes", Bytes: raw}
	}
}

// EncodeStat is the exact inverse of DecodeStat for int/float/bool
// kinds; "bytes" kind passes its payload through unchanged.
func EncodeStat(stat DecodedStat, physical parquetformat.Type, isDecimal bool) []byte {
	switch stat.Kind {
	case "int", "decimal":
		if physical == parquetformat.FixedLenByteArray {
			return encodeBigEndianSignedMinimal(stat.Int)
		}
		width := 4
		if physical == parquetformat.Int64 {
			width = 8
		}
		return encodeLittleEndianSigned(stat.Int, width)

	case "float":
		if physical == parquetformat.Float {
			out := make([]byte, 4)
			binary.LittleEndian.PutUint32(out, math.Float32bits(float32(stat.Float)))
			return out
		}
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, math.Float64bits(stat.Float))
		return out

	case "bool":
		if stat.Bool {
			return []byte{1}
		}
		return []byte{0}

	default:
		return stat.Bytes
	}
}

func decodeLittleEndianSigned(raw []byte) int64 {
	if len(raw) == 0 || len(raw) > 8 {
		return 0
	}
	var u uint64
	for i := len(raw) - 1; i >= 0; i-- {
		u = u<<8 | uint64(raw[i])
	}
	bits := uint(len(raw)) * 8
	return signExtend(u, bits)
}

func encodeLittleEndianSigned(v int64, width int) []byte {
	out := make([]byte, width)
	u := uint64(v)
	for i := 0; i < width; i++ {
		out[i] = byte(u)
		u >>= 8
	}
	return out
}

func decodeBigEndianSigned(raw []byte) int64 {
	if len(raw) == 0 {
		return 0
	}
	if len(raw) > 8 {
		// Wider than int64 can hold exactly; fall back to big.Int for
		// correctness of the sign bit, saturating into int64 range.
		bi := new(big.Int).SetBytes(raw)
		if raw[0]&0x80 != 0 {
			full := new(big.Int).Lsh(big.NewInt(1), uint(len(raw))*8)
			bi.Sub(bi, full)
		}
		if !bi.IsInt64() {
			if bi.Sign() < 0 {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		return bi.Int64()
	}
	var u uint64
	for _, b := range raw {
		u = u<<8 | uint64(b)
	}
	bits := uint(len(raw)) * 8
	return signExtend(u, bits)
}

// encodeBigEndianSignedMinimal encodes v as a big-endian two's-complement
// integer using the minimum byte length that fits the signed value:
// ceil((bit_length + 1) / 8), minimum 1.
func encodeBigEndianSignedMinimal(v int64) []byte {
	n := minimalSignedByteLength(v)
	out := make([]byte, n)
	u := uint64(v)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}
	return out
}

func minimalSignedByteLength(v int64) int {
	var bitLen int
	if v >= 0 {
		bitLen = bits64(uint64(v))
	} else {
		bitLen = bits64(uint64(^v))
	}
	n := (bitLen + 1 + 7) / 8
	if n < 1 {
		n = 1
	}
	return n
}

func bits64(u uint64) int {
	n := 0
	for u != 0 {
		n++
		u >>= 1
	}
	return n
}

func signExtend(u uint64, bits uint) int64 {
	if bits == 64 {
		return int64(u)
	}
	signBit := uint64(1) << (bits - 1)
	if u&signBit != 0 {
		u |= ^uint64(0) << bits
	}
	return int64(u)
}

// FormatStatsValue renders a decoded stat for display: a still-bytes
// STRING-logical value is decoded as UTF-8 (replacing
// invalid sequences) and truncated to truncateChars (256 when
// truncateChars <= 0); a still-bytes non-string value is hex-encoded
// with the same truncation; anything else is stringified directly.
func FormatStatsValue(stat DecodedStat, isString bool, truncateChars int) string {
	if truncateChars <= 0 {
		truncateChars = 256
	}
	switch stat.Kind {
	case "bytes":
		if isString {
			return truncateWithSuffix(strings.ToValidUTF8(string(stat.Bytes), string(utf8.RuneError)), truncateChars)
		}
		return truncateWithSuffix(fmt.Sprintf("%x", stat.Bytes), truncateChars)
	case "int":
		return fmt.Sprintf("%d", stat.Int)
	case "decimal":
		return formatDecimal(stat.Int, stat.Scale)
	case "float":
		return fmt.Sprintf("%g", stat.Float)
	case "bool":
		return fmt.Sprintf("%t", stat.Bool)
	default:
		return ""
	}
}

// formatDecimal renders unscaled as an exact decimal string, i.e.
// unscaled * 10^(-scale), matching the value's declared precision
// without going through a floating-point intermediate.
func formatDecimal(unscaled int64, scale int32) string {
	if scale <= 0 {
		return fmt.Sprintf("%d", unscaled)
	}
	neg := unscaled < 0
	u := unscaled
	if neg {
		u = -u
	}
	digits := fmt.Sprintf("%d", u)
	for len(digits) <= int(scale) {
		digits = "0" + digits
	}
	intPart := digits[:len(digits)-int(scale)]
	fracPart := digits[len(digits)-int(scale):]
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s", sign, intPart, fracPart)
}

func truncateWithSuffix(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	more := len(runes) - limit
	return fmt.Sprintf("%s… (%d more characters)", string(runes[:limit]), more)
}
