// Package report derives the lossy, human/JSON-facing projections from a
// Segment tree: the footer's JSON rendering, the summary table, the
// per-column page listing, and the statistics codec.
package report

import "github.com/parquet-forensics/inspector/internal/segment"

// ToJSON converts a Segment into the JSON projection used for human
// output (the Go name for the original's segment_to_json):
//   - struct segments become a map from child name to recursive projection
//     (last write wins on a duplicate child name, intentionally not deduped
//     or renamed)
//   - list/set segments become an ordered slice of recursive projections
//   - map segments alternate children as key/value pairs
//   - a segment with an enum annotation resolves to its symbolic name (or,
//     for a list of enum values, that list of names)
//   - a raw []byte value (a binary, non-text field) is routed through
//     JSONEncode rather than handed to encoding/json directly, which
//     would otherwise silently base64 it
//   - everything else surfaces its raw value
//
// inlineLimit is JSONEncode's inline-vs-truncated threshold
// (DefaultInlineBinaryLimit if inlineLimit <= 0); it's a parameter
// rather than a package constant so callers can thread through
// config.Config.TruncateBinaryBytes.
func ToJSON(seg *segment.Segment, inlineLimit int) any {
	if seg == nil {
		return nil
	}
	if seg.Metadata != nil && seg.Metadata.EnumName != nil {
		return seg.Metadata.EnumName
	}

	if seg.Metadata == nil {
		return seg.Value
	}

	switch seg.Metadata.Type {
	case "struct":
		children, _ := seg.Value.([]segment.Segment)
		out := make(map[string]any, len(children))
		for i := range children {
			out[children[i].Name] = ToJSON(&children[i], inlineLimit)
		}
		return out

	case "list", "set":
		children, _ := seg.Value.([]segment.Segment)
		out := make([]any, len(children))
		for i := range children {
			out[i] = ToJSON(&children[i], inlineLimit)
		}
		return out

	case "map":
		children, _ := seg.Value.([]segment.Segment)
		out := make(map[string]any, len(children)/2)
		for i := 0; i+1 < len(children); i += 2 {
			key := ToJSON(&children[i], inlineLimit)
			keyStr, _ := key.(string)
			out[keyStr] = ToJSON(&children[i+1], inlineLimit)
		}
		return out

	default:
		if raw, ok := seg.Value.([]byte); ok {
			if raw == nil {
				raw = []byte{}
			}
			encoded, _ := JSONEncode(raw, inlineLimit)
			return encoded
		}
		return seg.Value
	}
}
