package report

import "github.com/parquet-forensics/inspector/internal/segment"

// Pages builds the per-column page listing: one entry per column (in
// columnOrder), each row-group entry carrying
// whichever of dictionary_page/data_pages/column_index/offset_index/
// bloom_filter the walker recorded, every value the JSON projection of
// the corresponding segment augmented with its absolute "$offset".
//
// inlineLimit is forwarded to ToJSON for every page projection (see
// ToJSON's doc comment).
func Pages(segments []segment.Segment, offsets segment.ColumnOffsetMap, columnOrder []string, schemaPath func(key string) []string, inlineLimit int) []map[string]any {
	byOffset := indexByOffset(segments)

	result := make([]map[string]any, 0, len(columnOrder))
	for _, key := range columnOrder {
		rowGroups := offsets[key]
		entry := map[string]any{
			"column":     schemaPath(key),
			"row_groups": buildRowGroups(rowGroups, byOffset, inlineLimit),
		}
		result = append(result, entry)
	}
	return result
}

func buildRowGroups(rowGroups []segment.ColumnOffsets, byOffset map[int64]*segment.Segment, inlineLimit int) []map[string]any {
	out := make([]map[string]any, 0, len(rowGroups))
	for _, rg := range rowGroups {
		entry := map[string]any{}
		if rg.DictionaryPage != nil {
			entry["dictionary_page"] = projectionWithOffset(byOffset, *rg.DictionaryPage, inlineLimit)
		}
		if len(rg.DataPages) > 0 {
			pages := make([]any, len(rg.DataPages))
			for i, off := range rg.DataPages {
				pages[i] = projectionWithOffset(byOffset, off, inlineLimit)
			}
			entry["data_pages"] = pages
		}
		if rg.ColumnIndex != nil {
			entry["column_index"] = projectionWithOffset(byOffset, *rg.ColumnIndex, inlineLimit)
		}
		if rg.OffsetIndex != nil {
			entry["offset_index"] = projectionWithOffset(byOffset, *rg.OffsetIndex, inlineLimit)
		}
		if rg.BloomFilter != nil {
			entry["bloom_filter"] = projectionWithOffset(byOffset, *rg.BloomFilter, inlineLimit)
		}
		out = append(out, entry)
	}
	return out
}

func projectionWithOffset(byOffset map[int64]*segment.Segment, offset int64, inlineLimit int) map[string]any {
	seg, ok := byOffset[offset]
	if !ok {
		return map[string]any{"$offset": offset}
	}
	projection, _ := ToJSON(seg, inlineLimit).(map[string]any)
	if projection == nil {
		projection = map[string]any{}
	}
	projection["$offset"] = offset
	return projection
}

// indexByOffset finds the page_header / column_index / offset_index /
// bloom_filter segment starting at each recorded offset. Dictionary and
// data pages are recorded under their page_header's own segment, which
// is why walker.walkColumnChunk records the header's own offset, not the
// payload's.
func indexByOffset(segments []segment.Segment) map[int64]*segment.Segment {
	index := make(map[int64]*segment.Segment, len(segments))
	for i := range segments {
		index[segments[i].Offset] = &segments[i]
	}
	return index
}
