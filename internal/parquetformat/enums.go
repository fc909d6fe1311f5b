// Package parquetformat describes the Thrift structures used by the
// on-disk columnar table format's footer, page headers, and auxiliary
// indexes. It is hand-written as plain data tables (a per-struct field
// table plus enum name tables, no generated accessor types) rather than
// produced by the thrift compiler, since the decoder in
// internal/compactproto needs per-field metadata (schema name, child
// struct name, enum name, text-vs-binary) that generated ttypes.go
// files don't expose directly.
package parquetformat

// Type is the physical type of a leaf schema column.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

var typeNames = map[Type]string{
	Boolean:           "BOOLEAN",
	Int32:             "INT32",
	Int64:             "INT64",
	Int96:             "INT96",
	Float:             "FLOAT",
	Double:            "DOUBLE",
	ByteArray:         "BYTE_ARRAY",
	FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN_TYPE"
}

// ConvertedType is the deprecated logical-type annotation; SchemaElement
// may carry it alongside (or instead of) LogicalType.
type ConvertedType int32

const (
	UTF8            ConvertedType = 0
	MapConverted    ConvertedType = 1
	MapKeyValue     ConvertedType = 2
	ListConverted   ConvertedType = 3
	Enum            ConvertedType = 4
	Decimal         ConvertedType = 5
	Date            ConvertedType = 6
	TimeMillis      ConvertedType = 7
	TimeMicros      ConvertedType = 8
	TimestampMillis ConvertedType = 9
	TimestampMicros ConvertedType = 10
	Uint8           ConvertedType = 11
	Uint16          ConvertedType = 12
	Uint32          ConvertedType = 13
	Uint64          ConvertedType = 14
	Int8            ConvertedType = 15
	Int16           ConvertedType = 16
	Int32Converted  ConvertedType = 17
	Int64Converted  ConvertedType = 18
	JSON            ConvertedType = 19
	BSON            ConvertedType = 20
	Interval        ConvertedType = 21
)

var convertedTypeNames = map[ConvertedType]string{
	UTF8: "UTF8", MapConverted: "MAP", MapKeyValue: "MAP_KEY_VALUE",
	ListConverted: "LIST", Enum: "ENUM", Decimal: "DECIMAL", Date: "DATE",
	TimeMillis: "TIME_MILLIS", TimeMicros: "TIME_MICROS",
	TimestampMillis: "TIMESTAMP_MILLIS", TimestampMicros: "TIMESTAMP_MICROS",
	Uint8: "UINT_8", Uint16: "UINT_16", Uint32: "UINT_32", Uint64: "UINT_64",
	Int8: "INT_8", Int16: "INT_16", Int32Converted: "INT_32", Int64Converted: "INT_64",
	JSON: "JSON", BSON: "BSON", Interval: "INTERVAL",
}

func (c ConvertedType) String() string {
	if name, ok := convertedTypeNames[c]; ok {
		return name
	}
	return "UNKNOWN_CONVERTED_TYPE"
}

// FieldRepetitionType controls whether a schema element is required,
// optional, or repeated.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

var repetitionNames = map[FieldRepetitionType]string{
	Required: "REQUIRED", Optional: "OPTIONAL", Repeated: "REPEATED",
}

func (r FieldRepetitionType) String() string {
	if name, ok := repetitionNames[r]; ok {
		return name
	}
	return "UNKNOWN_REPETITION"
}

// Encoding names the physical value encoding of a page.
type Encoding int32

const (
	Plain                Encoding = 0
	GroupVarInt          Encoding = 1 // deprecated
	PlainDictionary      Encoding = 2
	RLE                  Encoding = 3
	BitPacked            Encoding = 4 // deprecated
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
	ByteStreamSplit      Encoding = 9
)

var encodingNames = map[Encoding]string{
	Plain: "PLAIN", GroupVarInt: "GROUP_VAR_INT", PlainDictionary: "PLAIN_DICTIONARY",
	RLE: "RLE", BitPacked: "BIT_PACKED", DeltaBinaryPacked: "DELTA_BINARY_PACKED",
	DeltaLengthByteArray: "DELTA_LENGTH_BYTE_ARRAY", DeltaByteArray: "DELTA_BYTE_ARRAY",
	RLEDictionary: "RLE_DICTIONARY", ByteStreamSplit: "BYTE_STREAM_SPLIT",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "UNKNOWN_ENCODING"
}

// CompressionCodec names the page-payload compressor. Decoding the
// payload itself is out of scope; only the codec's declared name is
// surfaced.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	LZO          CompressionCodec = 3
	Brotli       CompressionCodec = 4
	LZ4          CompressionCodec = 5
	Zstd         CompressionCodec = 6
	LZ4Raw       CompressionCodec = 7
)

var codecNames = map[CompressionCodec]string{
	Uncompressed: "UNCOMPRESSED", Snappy: "SNAPPY", Gzip: "GZIP", LZO: "LZO",
	Brotli: "BROTLI", LZ4: "LZ4", Zstd: "ZSTD", LZ4Raw: "LZ4_RAW",
}

func (c CompressionCodec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return "UNKNOWN_CODEC"
}

// PageType discriminates the header union carried by a PageHeader.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

var pageTypeNames = map[PageType]string{
	DataPage: "DATA_PAGE", IndexPage: "INDEX_PAGE",
	DictionaryPage: "DICTIONARY_PAGE", DataPageV2: "DATA_PAGE_V2",
}

func (p PageType) String() string {
	if name, ok := pageTypeNames[p]; ok {
		return name
	}
	return "UNKNOWN_PAGE_TYPE"
}

// BoundaryOrder describes whether a column index's min/max values are
// sorted ascending, descending, or not at all.
type BoundaryOrder int32

const (
	Unordered  BoundaryOrder = 0
	Ascending  BoundaryOrder = 1
	Descending BoundaryOrder = 2
)

var boundaryOrderNames = map[BoundaryOrder]string{
	Unordered: "UNORDERED", Ascending: "ASCENDING", Descending: "DESCENDING",
}

func (b BoundaryOrder) String() string {
	if name, ok := boundaryOrderNames[b]; ok {
		return name
	}
	return "UNKNOWN_BOUNDARY_ORDER"
}

// enumLookup maps an enum's schema name (as referenced by FieldSpec.EnumType)
// to the int32 -> symbolic-name table the decoder consults when annotating
// Node.EnumName.
var enumLookup = map[string]map[int32]string{
	"Type":                intKeyed(typeNames),
	"ConvertedType":       intKeyedC(convertedTypeNames),
	"FieldRepetitionType": intKeyedR(repetitionNames),
	"Encoding":            intKeyedE(encodingNames),
	"CompressionCodec":    intKeyedCC(codecNames),
	"PageType":            intKeyedP(pageTypeNames),
	"BoundaryOrder":       intKeyedB(boundaryOrderNames),
}

func intKeyed(m map[Type]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedC(m map[ConvertedType]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedR(m map[FieldRepetitionType]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedE(m map[Encoding]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedCC(m map[CompressionCodec]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedP(m map[PageType]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

func intKeyedB(m map[BoundaryOrder]string) map[int32]string {
	out := make(map[int32]string, len(m))
	for k, v := range m {
		out[int32(k)] = v
	}
	return out
}

// EnumName returns the symbolic name for value within the named enum, and
// whether the enum and value are known.
func EnumName(enumType string, value int64) (string, bool) {
	table, ok := enumLookup[enumType]
	if !ok {
		return "", false
	}
	name, ok := table[int32(value)]
	return name, ok
}
