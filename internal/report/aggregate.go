package report

import (
	"strings"

	"github.com/parquet-forensics/inspector/internal/parquetformat"
)

// physicalTypeByName reverses parquetformat.Type.String() for the
// handful of physical types the statistics codec cares about; footer
// JSON carries the enum's symbolic name (via Node.EnumName), not its
// underlying int32.
var physicalTypeByName = map[string]parquetformat.Type{
	"BOOLEAN":               parquetformat.Boolean,
	"INT32":                 parquetformat.Int32,
	"INT64":                 parquetformat.Int64,
	"INT96":                 parquetformat.Int96,
	"FLOAT":                 parquetformat.Float,
	"DOUBLE":                parquetformat.Double,
	"BYTE_ARRAY":            parquetformat.ByteArray,
	"FIXED_LEN_BYTE_ARRAY":  parquetformat.FixedLenByteArray,
}

// AggregatedColumn is one schema column's totals across every row group,
// consumed by HTML reporting.
type AggregatedColumn struct {
	PathInSchema          []string
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	Encodings             []string
	Codecs                []string
	// PageEncodingCounts sums occurrences keyed by "pageType|encoding".
	PageEncodingCounts map[string]int64
	NullCount          int64
	MinValue           []byte
	MaxValue           []byte
	// MinValueDisplay/MaxValueDisplay are MinValue/MaxValue run through
	// FormatStatsValue: UTF-8 text for a string-logical column, hex
	// otherwise, both truncated to the caller's truncateChars. Empty
	// when the column never carried a decodable statistic.
	MinValueDisplay string
	MaxValueDisplay string
	IsMinValueExact bool
	IsMaxValueExact bool

	decodedMin, decodedMax *DecodedStat
	physical               parquetformat.Type
	isDecimal              bool
	scale                  int32
	isString               bool
	exactnessInitialized   bool
}

// AggregateColumns groups every column chunk across footerJSON's row
// groups by path_in_schema, accumulating sizes, union-ing encodings and
// codecs, folding statistics in decoded space, and finally re-encoding
// min/max back to the physical representation exactly once per column
// (not once per row group), per the "immutable DecodedStat, fold,
// re-encode once" design. pages is the output of Pages, used to recover
// each page's (type, encoding) pair for the per-page-type/encoding
// counts footer metadata alone doesn't carry. truncateChars bounds
// MinValueDisplay/MaxValueDisplay (FormatStatsValue's own default when
// <= 0).
func AggregateColumns(footerJSON map[string]any, pages []map[string]any, truncateChars int) []AggregatedColumn {
	order := []string{}
	byPath := map[string]*AggregatedColumn{}
	schemaIndex := buildSchemaIndex(footerJSON["schema"])

	rowGroups, _ := footerJSON["row_groups"].([]any)
	for _, rgAny := range rowGroups {
		rg, ok := rgAny.(map[string]any)
		if !ok {
			continue
		}
		columns, _ := rg["columns"].([]any)
		for _, colAny := range columns {
			col, ok := colAny.(map[string]any)
			if !ok {
				continue
			}
			meta, ok := col["meta_data"].(map[string]any)
			if !ok {
				continue
			}
			path := stringSlice(meta["path_in_schema"])
			key := strings.Join(path, "\x00")

			agg, exists := byPath[key]
			if !exists {
				agg = &AggregatedColumn{PathInSchema: path, PageEncodingCounts: map[string]int64{}}
				agg.physical = physicalTypeByName[stringValue(meta["type"])]
				leaf := schemaIndex[key]
				agg.isDecimal = leaf.convertedType == "DECIMAL"
				agg.scale = leaf.scale
				agg.isString = leaf.convertedType == "UTF8" || leaf.logicalType == "STRING"
				byPath[key] = agg
				order = append(order, key)
			}

			mergeColumnChunk(agg, meta)
		}
	}

	for _, p := range pages {
		mergePageEncodingCounts(byPath, p)
	}

	result := make([]AggregatedColumn, 0, len(order))
	for _, key := range order {
		agg := byPath[key]
		reencodeStats(agg, truncateChars)
		result = append(result, *agg)
	}
	return result
}

func mergeColumnChunk(agg *AggregatedColumn, meta map[string]any) {
	agg.NumValues += asInt64(meta["num_values"])
	agg.TotalUncompressedSize += asInt64(meta["total_uncompressed_size"])
	agg.TotalCompressedSize += asInt64(meta["total_compressed_size"])
	agg.Encodings = unionStrings(agg.Encodings, stringSlice(meta["encodings"]))
	if codec := stringValue(meta["codec"]); codec != "" {
		agg.Codecs = unionStrings(agg.Codecs, []string{codec})
	}

	stats, ok := meta["statistics"].(map[string]any)
	if !ok {
		return
	}
	agg.NullCount += asInt64(stats["null_count"])

	if minRaw, ok := stats["min_value"].([]byte); ok {
		candidate := DecodeStat(minRaw, agg.physical, agg.isDecimal, agg.scale)
		if agg.decodedMin == nil || statLess(candidate, *agg.decodedMin) {
			agg.decodedMin = &candidate
		}
	}
	if maxRaw, ok := stats["max_value"].([]byte); ok {
		candidate := DecodeStat(maxRaw, agg.physical, agg.isDecimal, agg.scale)
		if agg.decodedMax == nil || statLess(*agg.decodedMax, candidate) {
			agg.decodedMax = &candidate
		}
	}

	minExact, hasMinExact := stats["is_min_value_exact"].(bool)
	maxExact, hasMaxExact := stats["is_max_value_exact"].(bool)
	if !agg.exactnessInitialized {
		agg.IsMinValueExact = !hasMinExact || minExact
		agg.IsMaxValueExact = !hasMaxExact || maxExact
		agg.exactnessInitialized = true
		return
	}
	if hasMinExact {
		agg.IsMinValueExact = agg.IsMinValueExact && minExact
	}
	if hasMaxExact {
		agg.IsMaxValueExact = agg.IsMaxValueExact && maxExact
	}
}

func reencodeStats(agg *AggregatedColumn, truncateChars int) {
	if agg.decodedMin != nil {
		agg.MinValue = EncodeStat(*agg.decodedMin, agg.physical, agg.isDecimal)
		agg.MinValueDisplay = FormatStatsValue(*agg.decodedMin, agg.isString, truncateChars)
	}
	if agg.decodedMax != nil {
		agg.MaxValue = EncodeStat(*agg.decodedMax, agg.physical, agg.isDecimal)
		agg.MaxValueDisplay = FormatStatsValue(*agg.decodedMax, agg.isString, truncateChars)
	}
}

// statLess compares two decoded stats of the same Kind in decoded space.
func statLess(a, b DecodedStat) bool {
	switch a.Kind {
	case "int", "decimal":
		return a.Int < b.Int
	case "float":
		return a.Float < b.Float
	case "bool":
		return !a.Bool && b.Bool
	default:
		return string(a.Bytes) < string(b.Bytes)
	}
}

func mergePageEncodingCounts(byPath map[string]*AggregatedColumn, page map[string]any) {
	pathAny, _ := page["column"].([]string)
	key := strings.Join(pathAny, "\x00")
	agg, ok := byPath[key]
	if !ok {
		return
	}
	rowGroups, _ := page["row_groups"].([]map[string]any)
	for _, rg := range rowGroups {
		countPage(agg, "dictionary_page", rg["dictionary_page"])
		if dataPages, ok := rg["data_pages"].([]any); ok {
			for _, dp := range dataPages {
				countPage(agg, "data_page", dp)
			}
		}
	}
}

func countPage(agg *AggregatedColumn, pageType string, pageAny any) {
	page, ok := pageAny.(map[string]any)
	if !ok {
		return
	}
	encoding := findEncoding(page)
	if encoding == "" {
		return
	}
	agg.PageEncodingCounts[pageType+"|"+encoding]++
}

// findEncoding looks in both the v1 and v2 data-page-header shapes, and
// the dictionary-page-header shape, for an "encoding" field.
func findEncoding(page map[string]any) string {
	for _, key := range []string{"data_page_header", "data_page_header_v2", "dictionary_page_header"} {
		if header, ok := page[key].(map[string]any); ok {
			if enc := stringValue(header["encoding"]); enc != "" {
				return enc
			}
		}
	}
	return ""
}

func unionStrings(existing, incoming []string) []string {
	seen := map[string]bool{}
	for _, s := range existing {
		seen[s] = true
	}
	out := append([]string{}, existing...)
	for _, s := range incoming {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, e := range vals {
			out = append(out, stringValue(e))
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// schemaInfo is what a leaf SchemaElement contributes to aggregation:
// the decimal/string annotations ColumnMetaData itself doesn't carry.
type schemaInfo struct {
	convertedType string
	logicalType   string
	scale         int32
}

// buildSchemaIndex flattens the footer's pre-order SchemaElement list
// back into a path_in_schema-keyed map, the same reconstruction a real
// reader performs using each element's num_children to find where one
// subtree ends and the next sibling begins. The list's first element is
// the synthetic root (usually named "schema") and isn't part of any
// column's path.
func buildSchemaIndex(schemaAny any) map[string]schemaInfo {
	idx := map[string]schemaInfo{}
	schema, _ := schemaAny.([]any)
	if len(schema) == 0 {
		return idx
	}
	pos := 1 // skip the synthetic root

	var walk func(path []string)
	walk = func(path []string) {
		if pos >= len(schema) {
			return
		}
		elem, _ := schema[pos].(map[string]any)
		pos++
		name := stringValue(elem["name"])
		childPath := append(append([]string{}, path...), name)
		numChildren := int(asInt64(elem["num_children"]))

		if numChildren == 0 {
			key := strings.Join(childPath, "\x00")
			logical := ""
			if lt, ok := elem["logicalType"].(map[string]any); ok {
				for k := range lt {
					logical = k
					break
				}
			}
			idx[key] = schemaInfo{
				convertedType: stringValue(elem["converted_type"]),
				logicalType:   logical,
				scale:         int32(asInt64(elem["scale"])),
			}
			return
		}
		for i := 0; i < numChildren; i++ {
			walk(childPath)
		}
	}

	root, _ := schema[0].(map[string]any)
	numRootChildren := int(asInt64(root["num_children"]))
	for i := 0; i < numRootChildren; i++ {
		walk(nil)
	}
	return idx
}
