package compactproto

import "github.com/apache/thrift/lib/go/thrift"

// Node.Type strings, one per github.com/apache/thrift/lib/go/thrift.TType
// value this decoder can produce (the original Python implementation
// imported thrift.protocol.TProtocol.TType for exactly this purpose).
// nodeTypeNames below maps each thrift.TType to the lowercase spelling
// used here instead of thrift.TType.String()'s upper-case names, so the
// JSON/report output this package feeds keeps its existing vocabulary.
const (
	TypeBool   = "bool"
	TypeByte   = "byte"
	TypeI16    = "i16"
	TypeI32    = "i32"
	TypeI64    = "i64"
	TypeDouble = "double"
	TypeString = "string" // binary payload; AsText distinguishes text display
	TypeStruct = "struct"
	TypeList   = "list"
	TypeSet    = "set"
	TypeMap    = "map"
)

var nodeTypeNames = map[thrift.TType]string{
	thrift.BOOL:   TypeBool,
	thrift.BYTE:   TypeByte,
	thrift.I16:    TypeI16,
	thrift.I32:    TypeI32,
	thrift.I64:    TypeI64,
	thrift.DOUBLE: TypeDouble,
	thrift.STRING: TypeString,
	thrift.STRUCT: TypeStruct,
	thrift.LIST:   TypeList,
	thrift.SET:    TypeSet,
	thrift.MAP:    TypeMap,
}

// Node is the single offset-annotated tree the decoder builds: one node
// per scalar, struct, list/set/map, or element thereof. It plays double
// duty as both a value tree and an offset tree — segment.FromNode and
// report.ToJSON each derive their own flattened view from the same
// Node, rather than keeping two trees in sync.
type Node struct {
	Name string
	Type string
	// TypeClass names the struct descriptor when Type == TypeStruct.
	TypeClass string
	// EnumType/EnumName are set when a parent struct field is annotated
	// as carrying a named enumeration. EnumName is a string for a scalar
	// field, or []string for a list of enum values.
	EnumType string
	EnumName any

	RangeFrom int64
	RangeTo   int64

	// Value holds the decoded payload: a scalar (bool/int64/float64),
	// []byte for binary, string for AsText fields, or []*Node (ordered)
	// for struct/list/set/map children.
	Value any
}

// AppendChild appends child as the next ordered child of n (n must be a
// struct/list/set/map node). The decoder also appends a child whose
// decode failed part-way, so the partial tree stays inspectable.
func (n *Node) AppendChild(child *Node) {
	children, _ := n.Value.([]*Node)
	n.Value = append(children, child)
}

// Children returns n's ordered children, or nil if n is not a
// struct/list/set/map node.
func (n *Node) Children() []*Node {
	children, _ := n.Value.([]*Node)
	return children
}
