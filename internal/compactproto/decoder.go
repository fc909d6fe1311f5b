package compactproto

import (
	"fmt"
	"math"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"

	"github.com/parquet-forensics/inspector/internal/inspecterr"
	"github.com/parquet-forensics/inspector/internal/parquetformat"
)

// Compact-protocol wire type nibbles, per the Thrift compact protocol
// specification. These are distinct from (and translated into) the
// Type* name constants in node.go.
const (
	wireStop         = 0x00
	wireBooleanTrue  = 0x01
	wireBooleanFalse = 0x02
	wireByte         = 0x03
	wireI16          = 0x04
	wireI32          = 0x05
	wireI64          = 0x06
	wireDouble       = 0x07
	wireBinary       = 0x08
	wireList         = 0x09
	wireSet          = 0x0a
	wireMap          = 0x0b
	wireStruct       = 0x0c
)

// wireToTType maps each compact-protocol wire nibble to the
// apache/thrift TType it represents, so Node.Type names are ultimately
// sourced from that package's enumeration (see nodeTypeNames in node.go)
// rather than a second, parallel vocabulary invented for this decoder.
var wireToTType = map[byte]thrift.TType{
	wireBooleanTrue: thrift.BOOL, wireBooleanFalse: thrift.BOOL,
	wireByte: thrift.BYTE, wireI16: thrift.I16, wireI32: thrift.I32, wireI64: thrift.I64,
	wireDouble: thrift.DOUBLE, wireBinary: thrift.STRING,
	wireList: thrift.LIST, wireSet: thrift.SET, wireMap: thrift.MAP, wireStruct: thrift.STRUCT,
}

func wireTypeName(wireType byte) string {
	return nodeTypeNames[wireToTType[wireType]]
}

// Decoder decodes the Thrift compact protocol against parquetformat's
// descriptor tables, building a Node tree whose every scalar and every
// sub-struct/list/map carries the exact [from, to) byte range it
// consumed. Field values are attributed starting just after their field
// header (the 1-2 header bytes belong to the enclosing struct's
// unattributed "gaps", not to the field's own value range), so struct
// children may have internal gaps without disturbing containment.
//
// Recursion is depth-first left-to-right and the cursor never seeks
// backwards during a single Decode call; each recursive decode* method
// both reads from Reader and returns the Node it built. The call stack
// is the cursor, and each returned Node is handed directly to its caller
// rather than mutated through shared instance state.
type Decoder struct {
	r *Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r *Reader) *Decoder {
	return &Decoder{r: r}
}

// DecodeRootStruct decodes one instance of the named struct descriptor
// starting at the reader's current position, returning the root Node.
// On a decode error mid-stream, the partially built Node is still
// returned alongside the error so callers can inspect progress.
func (d *Decoder) DecodeRootStruct(name, structName string) (*Node, error) {
	from := d.r.Tell()
	node := &Node{Name: name, Type: TypeStruct, TypeClass: structName, RangeFrom: from}
	err := d.decodeStructFields(node, structName)
	node.RangeTo = d.r.Tell()
	return node, err
}

func (d *Decoder) decodeStructFields(node *Node, structName string) error {
	descriptor := parquetformat.Descriptors[structName]
	var lastFieldID int16
	for {
		headerByte, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		if headerByte == wireStop {
			return nil
		}

		typeNibble := headerByte & 0x0f
		deltaNibble := (headerByte >> 4) & 0x0f

		var fieldID int16
		if deltaNibble == 0 {
			id, err := d.r.readZigzagVarint()
			if err != nil {
				return err
			}
			fieldID = int16(id)
		} else {
			fieldID = lastFieldID + int16(deltaNibble)
		}
		lastFieldID = fieldID

		var spec parquetformat.FieldSpec
		var known bool
		if descriptor != nil {
			spec, known = descriptor.Fields[fieldID]
		}
		name := spec.Name
		if !known {
			name = fmt.Sprintf("unknown_%d", fieldID)
		}

		child, err := d.decodeFieldValue(name, typeNibble, spec)
		node.AppendChild(child)
		if err != nil {
			return err
		}
	}
}

// decodeFieldValue decodes one struct field's value, given the wire type
// nibble taken from its field header (or, for list/set/map elements, the
// element type nibble) and the schema spec describing it (zero value if
// unknown).
func (d *Decoder) decodeFieldValue(name string, wireType byte, spec parquetformat.FieldSpec) (*Node, error) {
	from := d.r.Tell()

	switch wireType {
	case wireBooleanTrue, wireBooleanFalse:
		node := &Node{Name: name, Type: TypeBool, RangeFrom: from, RangeTo: from, Value: wireType == wireBooleanTrue}
		d.annotateEnum(node, spec, boolToInt(wireType == wireBooleanTrue))
		return node, nil

	case wireBool:
		b, err := d.r.ReadByte()
		node := &Node{Name: name, Type: TypeBool, RangeFrom: from, RangeTo: d.r.Tell(), Value: b == 1}
		return node, err

	case wireByte:
		b, err := d.r.ReadByte()
		node := &Node{Name: name, Type: TypeByte, RangeFrom: from, RangeTo: d.r.Tell(), Value: int64(int8(b))}
		d.annotateEnum(node, spec, node.Value.(int64))
		return node, err

	case wireI16, wireI32, wireI64:
		v, err := d.r.readZigzagVarint()
		node := &Node{Name: name, Type: wireTypeName(wireType), RangeFrom: from, RangeTo: d.r.Tell(), Value: v}
		d.annotateEnum(node, spec, v)
		return node, err

	case wireDouble:
		raw, err := d.r.Read(8)
		if err != nil {
			return &Node{Name: name, Type: TypeDouble, RangeFrom: from, RangeTo: d.r.Tell()}, err
		}
		bits := beUint64(raw)
		node := &Node{Name: name, Type: TypeDouble, RangeFrom: from, RangeTo: d.r.Tell(), Value: math.Float64frombits(bits)}
		return node, nil

	case wireBinary:
		return d.decodeBinary(name, spec, from)

	case wireStruct:
		return d.decodeStruct(name, spec, from)

	case wireList, wireSet:
		return d.decodeListOrSet(name, spec, wireType, from)

	case wireMap:
		return d.decodeMap(name, from)

	default:
		return &Node{Name: name, RangeFrom: from, RangeTo: from}, errors.Wrapf(inspecterr.DecodeError, "unknown wire type 0x%x for field %q at offset %d", wireType, name, from)
	}
}

func (d *Decoder) decodeBinary(name string, spec parquetformat.FieldSpec, from int64) (*Node, error) {
	length, err := d.r.readVarint()
	if err != nil {
		return &Node{Name: name, Type: TypeString, RangeFrom: from, RangeTo: d.r.Tell()}, err
	}
	raw, err := d.r.Read(int(length))
	node := &Node{Name: name, Type: TypeString, RangeFrom: from, RangeTo: d.r.Tell()}
	if spec.AsText {
		node.Value = string(raw)
	} else {
		node.Value = raw
	}
	return node, err
}

func (d *Decoder) decodeStruct(name string, spec parquetformat.FieldSpec, from int64) (*Node, error) {
	node := &Node{Name: name, Type: TypeStruct, TypeClass: spec.Struct, RangeFrom: from}
	err := d.decodeStructFields(node, spec.Struct)
	node.RangeTo = d.r.Tell()
	return node, err
}

// decodeListOrSet decodes a LIST or SET header (one byte, or one byte
// plus a trailing size varint when the count doesn't fit in 4 bits)
// followed by count elements, each emitted as its own child Node
// (scalar elements included), so that the full range of the list is
// reconstructible from its children's ranges.
func (d *Decoder) decodeListOrSet(name string, spec parquetformat.FieldSpec, wireType byte, from int64) (*Node, error) {
	nodeType := TypeList
	if wireType == wireSet {
		nodeType = TypeSet
	}
	node := &Node{Name: name, Type: nodeType, TypeClass: spec.Struct, RangeFrom: from}

	header, err := d.r.ReadByte()
	if err != nil {
		node.RangeTo = d.r.Tell()
		return node, err
	}
	sizeNibble := (header >> 4) & 0x0f
	elemWireType := header & 0x0f

	var count uint64
	if sizeNibble == 0x0f {
		count, err = d.r.readVarint()
		if err != nil {
			node.RangeTo = d.r.Tell()
			return node, err
		}
	} else {
		count = uint64(sizeNibble)
	}

	elemSpec := parquetformat.FieldSpec{Struct: spec.Struct, EnumType: spec.EnumType, AsText: spec.AsText}
	var enumNames []string
	hasEnum := spec.EnumType != ""

	for i := uint64(0); i < count; i++ {
		elemName := "element"
		child, err := d.decodeFieldValue(elemName, resolveElemWireType(elemWireType), elemSpec)
		node.AppendChild(child)
		if hasEnum {
			if name, ok := child.EnumName.(string); ok {
				enumNames = append(enumNames, name)
			}
		}
		if err != nil {
			node.RangeTo = d.r.Tell()
			return node, err
		}
	}
	if hasEnum {
		node.EnumType = spec.EnumType
		node.EnumName = enumNames
	}
	node.RangeTo = d.r.Tell()
	return node, nil
}

// resolveElemWireType normalizes a list/set/map boolean element type
// code to the scalar-bool wire nibble decodeFieldValue expects: unlike
// struct fields, list/map booleans are never packed into the header and
// always cost one content byte, decoded the same way as wireBooleanTrue
// but requiring an explicit read.
func resolveElemWireType(nibble byte) byte {
	if nibble == wireBooleanTrue {
		return wireBool
	}
	return nibble
}

const wireBool = 0xf1 // sentinel distinguishing "read one byte as bool" from the packed struct-field form

func (d *Decoder) decodeMap(name string, from int64) (*Node, error) {
	node := &Node{Name: name, Type: TypeMap, RangeFrom: from}

	count, err := d.r.readVarint()
	if err != nil {
		node.RangeTo = d.r.Tell()
		return node, err
	}
	if count == 0 {
		node.RangeTo = d.r.Tell()
		return node, nil
	}

	typesByte, err := d.r.ReadByte()
	if err != nil {
		node.RangeTo = d.r.Tell()
		return node, err
	}
	keyWireType := (typesByte >> 4) & 0x0f
	valWireType := typesByte & 0x0f

	for i := uint64(0); i < count; i++ {
		keyNode, err := d.decodeFieldValue("key", resolveElemWireType(keyWireType), parquetformat.FieldSpec{})
		node.AppendChild(keyNode)
		if err != nil {
			node.RangeTo = d.r.Tell()
			return node, err
		}
		valNode, err := d.decodeFieldValue("value", resolveElemWireType(valWireType), parquetformat.FieldSpec{})
		node.AppendChild(valNode)
		if err != nil {
			node.RangeTo = d.r.Tell()
			return node, err
		}
	}
	node.RangeTo = d.r.Tell()
	return node, nil
}

func (d *Decoder) annotateEnum(node *Node, spec parquetformat.FieldSpec, value int64) {
	if spec.EnumType == "" {
		return
	}
	node.EnumType = spec.EnumType
	if name, ok := parquetformat.EnumName(spec.EnumType, value); ok {
		node.EnumName = name
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func beUint64(b []byte) uint64 {
	// Page-header doubles don't occur in the structures this inspector
	// decodes, but the compact protocol spec defines DOUBLE as 8
	// little-endian bytes; decode accordingly for completeness.
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
