package parquetformat

// FieldSpec is one entry of a struct's field table: the schema-level name
// for a Thrift field id, plus enough type information for the decoder to
// recurse into child structs, annotate enums, and distinguish text from
// raw binary payloads.
type FieldSpec struct {
	ID int16
	// Name is the schema field name, surfaced as Segment/Node.Name.
	Name string
	// Struct names the child struct descriptor when this field's value is
	// itself a struct (and, for list/set fields, when each element is).
	Struct string
	// EnumType names the enum (see enumLookup) this scalar field encodes,
	// or that each element of a list/set field encodes.
	EnumType string
	// AsText marks a string/binary field (or list/set element) as text
	// rather than raw bytes.
	AsText bool
}

// StructDescriptor is the per-struct field table keyed by Thrift field id.
type StructDescriptor struct {
	Name   string
	Fields map[int16]FieldSpec
}

func desc(name string, fields ...FieldSpec) *StructDescriptor {
	m := make(map[int16]FieldSpec, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return &StructDescriptor{Name: name, Fields: m}
}

// Descriptors holds every struct used by the footer, page headers, and
// auxiliary indexes, keyed by schema name: static and code-generated in
// spirit, hand-maintained here because the real parquet-format.thrift
// compiler output doesn't carry the per-field wire-range bookkeeping this
// decoder needs.
var Descriptors = map[string]*StructDescriptor{
	"FileMetaData": desc("FileMetaData",
		FieldSpec{ID: 1, Name: "version"},
		FieldSpec{ID: 2, Name: "schema", Struct: "SchemaElement"},
		FieldSpec{ID: 3, Name: "num_rows"},
		FieldSpec{ID: 4, Name: "row_groups", Struct: "RowGroup"},
		FieldSpec{ID: 5, Name: "key_value_metadata", Struct: "KeyValue"},
		FieldSpec{ID: 6, Name: "created_by", AsText: true},
		FieldSpec{ID: 7, Name: "column_orders", Struct: "ColumnOrder"},
		FieldSpec{ID: 8, Name: "encryption_algorithm", Struct: "EncryptionAlgorithm"},
		FieldSpec{ID: 9, Name: "footer_signing_key_metadata"},
	),
	"SchemaElement": desc("SchemaElement",
		FieldSpec{ID: 1, Name: "type", EnumType: "Type"},
		FieldSpec{ID: 2, Name: "type_length"},
		FieldSpec{ID: 3, Name: "repetition_type", EnumType: "FieldRepetitionType"},
		FieldSpec{ID: 4, Name: "name", AsText: true},
		FieldSpec{ID: 5, Name: "num_children"},
		FieldSpec{ID: 6, Name: "converted_type", EnumType: "ConvertedType"},
		FieldSpec{ID: 7, Name: "scale"},
		FieldSpec{ID: 8, Name: "precision"},
		FieldSpec{ID: 9, Name: "field_id"},
		FieldSpec{ID: 10, Name: "logicalType", Struct: "LogicalType"},
	),
	"RowGroup": desc("RowGroup",
		FieldSpec{ID: 1, Name: "columns", Struct: "ColumnChunk"},
		FieldSpec{ID: 2, Name: "total_byte_size"},
		FieldSpec{ID: 3, Name: "num_rows"},
		FieldSpec{ID: 4, Name: "sorting_columns", Struct: "SortingColumn"},
		FieldSpec{ID: 5, Name: "file_offset"},
		FieldSpec{ID: 6, Name: "total_compressed_size"},
		FieldSpec{ID: 7, Name: "ordinal"},
	),
	"SortingColumn": desc("SortingColumn",
		FieldSpec{ID: 1, Name: "column_idx"},
		FieldSpec{ID: 2, Name: "descending"},
		FieldSpec{ID: 3, Name: "nulls_first"},
	),
	"ColumnChunk": desc("ColumnChunk",
		FieldSpec{ID: 1, Name: "file_path", AsText: true},
		FieldSpec{ID: 2, Name: "file_offset"},
		FieldSpec{ID: 3, Name: "meta_data", Struct: "ColumnMetaData"},
		FieldSpec{ID: 4, Name: "offset_index_offset"},
		FieldSpec{ID: 5, Name: "offset_index_length"},
		FieldSpec{ID: 6, Name: "column_index_offset"},
		FieldSpec{ID: 7, Name: "column_index_length"},
		FieldSpec{ID: 8, Name: "crypto_metadata", Struct: "ColumnCryptoMetaData"},
		FieldSpec{ID: 9, Name: "encrypted_column_metadata"},
	),
	"ColumnMetaData": desc("ColumnMetaData",
		FieldSpec{ID: 1, Name: "type", EnumType: "Type"},
		FieldSpec{ID: 2, Name: "encodings", EnumType: "Encoding"},
		FieldSpec{ID: 3, Name: "path_in_schema", AsText: true},
		FieldSpec{ID: 4, Name: "codec", EnumType: "CompressionCodec"},
		FieldSpec{ID: 5, Name: "num_values"},
		FieldSpec{ID: 6, Name: "total_uncompressed_size"},
		FieldSpec{ID: 7, Name: "total_compressed_size"},
		FieldSpec{ID: 8, Name: "key_value_metadata", Struct: "KeyValue"},
		FieldSpec{ID: 9, Name: "data_page_offset"},
		FieldSpec{ID: 10, Name: "index_page_offset"},
		FieldSpec{ID: 11, Name: "dictionary_page_offset"},
		FieldSpec{ID: 12, Name: "statistics", Struct: "Statistics"},
		FieldSpec{ID: 13, Name: "encoding_stats", Struct: "PageEncodingStats"},
		FieldSpec{ID: 14, Name: "bloom_filter_offset"},
		FieldSpec{ID: 15, Name: "bloom_filter_length"},
		FieldSpec{ID: 16, Name: "size_statistics", Struct: "SizeStatistics"},
	),
	"KeyValue": desc("KeyValue",
		FieldSpec{ID: 1, Name: "key", AsText: true},
		FieldSpec{ID: 2, Name: "value", AsText: true},
	),
	"PageEncodingStats": desc("PageEncodingStats",
		FieldSpec{ID: 1, Name: "page_type", EnumType: "PageType"},
		FieldSpec{ID: 2, Name: "encoding", EnumType: "Encoding"},
		FieldSpec{ID: 3, Name: "count"},
	),
	"SizeStatistics": desc("SizeStatistics",
		FieldSpec{ID: 1, Name: "unencoded_byte_array_data_bytes"},
		FieldSpec{ID: 2, Name: "repetition_level_histogram"},
		FieldSpec{ID: 3, Name: "definition_level_histogram"},
	),
	"Statistics": desc("Statistics",
		FieldSpec{ID: 1, Name: "max"},
		FieldSpec{ID: 2, Name: "min"},
		FieldSpec{ID: 3, Name: "null_count"},
		FieldSpec{ID: 4, Name: "distinct_count"},
		FieldSpec{ID: 5, Name: "max_value"},
		FieldSpec{ID: 6, Name: "min_value"},
		FieldSpec{ID: 7, Name: "is_max_value_exact"},
		FieldSpec{ID: 8, Name: "is_min_value_exact"},
	),
	"PageHeader": desc("PageHeader",
		FieldSpec{ID: 1, Name: "type", EnumType: "PageType"},
		FieldSpec{ID: 2, Name: "uncompressed_page_size"},
		FieldSpec{ID: 3, Name: "compressed_page_size"},
		FieldSpec{ID: 4, Name: "crc"},
		FieldSpec{ID: 5, Name: "data_page_header", Struct: "DataPageHeader"},
		FieldSpec{ID: 6, Name: "index_page_header", Struct: "IndexPageHeader"},
		FieldSpec{ID: 7, Name: "dictionary_page_header", Struct: "DictionaryPageHeader"},
		FieldSpec{ID: 8, Name: "data_page_header_v2", Struct: "DataPageHeaderV2"},
	),
	"DataPageHeader": desc("DataPageHeader",
		FieldSpec{ID: 1, Name: "num_values"},
		FieldSpec{ID: 2, Name: "encoding", EnumType: "Encoding"},
		FieldSpec{ID: 3, Name: "definition_level_encoding", EnumType: "Encoding"},
		FieldSpec{ID: 4, Name: "repetition_level_encoding", EnumType: "Encoding"},
		FieldSpec{ID: 5, Name: "statistics", Struct: "Statistics"},
	),
	"DataPageHeaderV2": desc("DataPageHeaderV2",
		FieldSpec{ID: 1, Name: "num_values"},
		FieldSpec{ID: 2, Name: "num_nulls"},
		FieldSpec{ID: 3, Name: "num_rows"},
		FieldSpec{ID: 4, Name: "encoding", EnumType: "Encoding"},
		FieldSpec{ID: 5, Name: "definition_levels_byte_length"},
		FieldSpec{ID: 6, Name: "repetition_levels_byte_length"},
		FieldSpec{ID: 7, Name: "is_compressed"},
		FieldSpec{ID: 8, Name: "statistics", Struct: "Statistics"},
	),
	"DictionaryPageHeader": desc("DictionaryPageHeader",
		FieldSpec{ID: 1, Name: "num_values"},
		FieldSpec{ID: 2, Name: "encoding", EnumType: "Encoding"},
		FieldSpec{ID: 3, Name: "is_sorted"},
	),
	"IndexPageHeader": desc("IndexPageHeader"),
	"ColumnIndex": desc("ColumnIndex",
		FieldSpec{ID: 1, Name: "null_pages"},
		FieldSpec{ID: 2, Name: "min_values"},
		FieldSpec{ID: 3, Name: "max_values"},
		FieldSpec{ID: 4, Name: "boundary_order", EnumType: "BoundaryOrder"},
		FieldSpec{ID: 5, Name: "null_counts"},
		FieldSpec{ID: 6, Name: "repetition_level_histograms"},
		FieldSpec{ID: 7, Name: "definition_level_histograms"},
	),
	"OffsetIndex": desc("OffsetIndex",
		FieldSpec{ID: 1, Name: "page_locations", Struct: "PageLocation"},
		FieldSpec{ID: 2, Name: "unencoded_byte_array_data_bytes"},
	),
	"PageLocation": desc("PageLocation",
		FieldSpec{ID: 1, Name: "offset"},
		FieldSpec{ID: 2, Name: "compressed_page_size"},
		FieldSpec{ID: 3, Name: "first_row_index"},
	),
	"BloomFilterHeader": desc("BloomFilterHeader",
		FieldSpec{ID: 1, Name: "num_bytes"},
		FieldSpec{ID: 2, Name: "algorithm", Struct: "BloomFilterAlgorithm"},
		FieldSpec{ID: 3, Name: "hash", Struct: "BloomFilterHash"},
		FieldSpec{ID: 4, Name: "compression", Struct: "BloomFilterCompression"},
	),
	"BloomFilterAlgorithm": desc("BloomFilterAlgorithm",
		FieldSpec{ID: 1, Name: "BLOCK", Struct: "SplitBlockAlgorithm"},
	),
	"SplitBlockAlgorithm": desc("SplitBlockAlgorithm"),
	"BloomFilterHash": desc("BloomFilterHash",
		FieldSpec{ID: 1, Name: "XXHASH", Struct: "XxHash"},
	),
	"XxHash": desc("XxHash"),
	"BloomFilterCompression": desc("BloomFilterCompression",
		FieldSpec{ID: 1, Name: "UNCOMPRESSED", Struct: "Uncompressed"},
	),
	"Uncompressed": desc("Uncompressed"),
	"ColumnOrder": desc("ColumnOrder",
		FieldSpec{ID: 1, Name: "TYPE_ORDER", Struct: "TypeDefinedOrder"},
	),
	"TypeDefinedOrder": desc("TypeDefinedOrder"),
	// LogicalType is a union of which only the STRING member is named, so
	// that statistics display can recognise text columns. Its other
	// members, and the EncryptionAlgorithm and ColumnCryptoMetaData unions,
	// are not interpreted (encrypted files are out of scope); their fields
	// still get visited and recorded as "unknown_<id>" by the decoder,
	// preserving byte-offset coverage without needing a full field table.
	"LogicalType": desc("LogicalType",
		FieldSpec{ID: 1, Name: "STRING", Struct: "StringType"},
	),
	"StringType":           desc("StringType"),
	"EncryptionAlgorithm":  desc("EncryptionAlgorithm"),
	"ColumnCryptoMetaData": desc("ColumnCryptoMetaData"),
}
