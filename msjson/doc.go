/*
Package msjson reads and writes JSON through an explicit value tree.
In contrast to encoding/json the package is centered around a mutable
Value model: text parses into a tree of Null/Bool/Number/String/Array/Object
nodes, the tree can be inspected and edited through typed accessors and
builder operations, and serializes back to compact JSON with object keys in
insertion order.

The parser is a bounds- and depth-checked recursive descent over a fully
materialized byte slice. Two documented relaxations of RFC 8259 are
supported: optional // and /* *\/ comments (off by default) and lenient
pass-through of unknown backslash escapes (\q decodes to q; \uXXXX is not
decoded).

Value implements json.Marshaler and json.Unmarshaler.
*/
package msjson
