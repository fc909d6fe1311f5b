package report

import "github.com/parquet-forensics/inspector/internal/segment"

// Summary computes the flat count/size mapping combining the footer's
// JSON projection (for row/row-group/column counts and per-chunk sizes)
// with the segment list (for page counts and byte sizes that only exist
// as segments, like page_header_size).
func Summary(footerJSON map[string]any, segments []segment.Segment) map[string]any {
	summary := map[string]any{
		"num_rows":        asInt64(footerJSON["num_rows"]),
		"num_row_groups":  0,
		"num_columns":     0,
		"num_pages":       0,
		"num_data_pages":  0,
		"num_v1_data_pages": 0,
		"num_v2_data_pages": 0,
		"num_dict_pages":  0,
	}

	rowGroups, _ := footerJSON["row_groups"].([]any)
	summary["num_row_groups"] = len(rowGroups)

	if len(rowGroups) > 0 {
		if rg, ok := rowGroups[0].(map[string]any); ok {
			if columns, ok := rg["columns"].([]any); ok {
				summary["num_columns"] = len(columns)
			}
		}
	}

	var uncompressedData, compressedData int64
	var columnIndexSize, offsetIndexSize, bloomFilterSize int64
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
			if meta, ok := col["meta_data"].(map[string]any); ok {
				uncompressedData += asInt64(meta["total_uncompressed_size"])
				compressedData += asInt64(meta["total_compressed_size"])
				bloomFilterSize += firstNonZero(col["bloom_filter_length"], meta["bloom_filter_length"])
			}
			columnIndexSize += asInt64(col["column_index_length"])
			offsetIndexSize += asInt64(col["offset_index_length"])
		}
	}
	summary["uncompressed_page_data_size"] = uncompressedData
	summary["compressed_page_data_size"] = compressedData
	summary["uncompressed_page_size"] = uncompressedData
	summary["compressed_page_size"] = compressedData
	summary["column_index_size"] = columnIndexSize
	summary["offset_index_size"] = offsetIndexSize
	summary["bloom_filter_size"] = bloomFilterSize

	var pageHeaderSize int64
	var numPages, numData, numV1, numV2, numDict int
	var fileSize int64
	var footerSize int64

	for i := range segments {
		s := &segments[i]
		fileSize += s.Length
		switch s.Name {
		case segment.NameFooter:
			footerSize = s.Length
		case segment.NamePageHeader:
			pageHeaderSize += s.Length
			numPages++
			switch classifyPage(s) {
			case pageKindDictionary:
				numDict++
			case pageKindDataV1:
				numData++
				numV1++
			case pageKindDataV2:
				numData++
				numV2++
			}
		}
	}

	summary["page_header_size"] = pageHeaderSize
	summary["num_pages"] = numPages
	summary["num_data_pages"] = numData
	summary["num_v1_data_pages"] = numV1
	summary["num_v2_data_pages"] = numV2
	summary["num_dict_pages"] = numDict
	summary["footer_size"] = footerSize
	summary["file_size"] = fileSize

	return summary
}

type pageKind int

const (
	pageKindUnknown pageKind = iota
	pageKindDataV1
	pageKindDataV2
	pageKindDictionary
)

// classifyPage inspects a page_header segment's children to decide
// whether it's a v1 data page, a v2 data page, or a dictionary page,
// matching the structural test for which header union field is present
// rather than trusting the declared type alone.
func classifyPage(seg *segment.Segment) pageKind {
	children, _ := seg.Value.([]segment.Segment)
	for i := range children {
		switch children[i].Name {
		case "data_page_header":
			return pageKindDataV1
		case "data_page_header_v2":
			return pageKindDataV2
		case "dictionary_page_header":
			return pageKindDictionary
		}
	}
	return pageKindUnknown
}

// firstNonZero prefers a column-level field over a same-named field
// nested under meta_data, since bloom_filter_length is occasionally
// surfaced flattened onto the column entry by callers building a footer
// JSON mapping by hand rather than from a real decode.
func firstNonZero(values ...any) int64 {
	for _, v := range values {
		if n := asInt64(v); n != 0 {
			return n
		}
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
