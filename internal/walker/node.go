package walker

import "github.com/parquet-forensics/inspector/internal/compactproto"

// child returns the first direct child of n named name, or nil.
func child(n *compactproto.Node, name string) *compactproto.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// childInt64 reads an integer-valued child field, returning ok=false if
// the field is absent (optional footer fields are simply never emitted
// by the decoder when the writer didn't set them).
func childInt64(n *compactproto.Node, name string) (int64, bool) {
	c := child(n, name)
	if c == nil {
		return 0, false
	}
	v, ok := c.Value.(int64)
	return v, ok
}

// childString reads a text-valued child field.
func childString(n *compactproto.Node, name string) (string, bool) {
	c := child(n, name)
	if c == nil {
		return "", false
	}
	v, ok := c.Value.(string)
	return v, ok
}

// childEnumName reads the symbolic enum name annotated on a child field.
func childEnumName(n *compactproto.Node, name string) (string, bool) {
	c := child(n, name)
	if c == nil {
		return "", false
	}
	v, ok := c.EnumName.(string)
	return v, ok
}

// pathInSchema reads a ColumnMetaData node's path_in_schema list<string>
// field into an ordered []string schema path.
func pathInSchema(meta *compactproto.Node) []string {
	list := child(meta, "path_in_schema")
	if list == nil {
		return nil
	}
	elems := list.Children()
	path := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := e.Value.(string); ok {
			path = append(path, s)
		}
	}
	return path
}
