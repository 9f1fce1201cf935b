package yamlwire

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"structcodec/codec"
	"structcodec/wire"
)

var (
	ErrUnexpectedEnd = errors.New("yamlwire: unexpected end of collection")
	ErrAliasDepth    = errors.New("yamlwire: alias chain too deep")
)

const maxAliasChain = 64

// Reader is a wire.Source over a parsed YAML document.
type Reader struct {
	*cursor
}

var (
	_ wire.Source       = (*Reader)(nil)
	_ wire.ArraySource  = seqCursor{}
	_ wire.ObjectSource = mapCursor{}
	_ wire.Positioner   = (*Reader)(nil)
)

// NewReader parses data as a single YAML document.
func NewReader(data []byte) (*Reader, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return NewNodeReader(&doc), nil
}

// NewNodeReader reads from an already parsed node. Document nodes are
// unwrapped.
func NewNodeReader(n *yaml.Node) *Reader {
	var nodes []*yaml.Node

	switch {
	case n == nil || n.Kind == 0:
	case n.Kind == yaml.DocumentNode:
		nodes = n.Content
	default:
		nodes = []*yaml.Node{n}
	}

	return &Reader{&cursor{nodes: nodes}}
}

// Finish checks that the document value was read completely.
func (r *Reader) Finish() error {
	if r.pos >= len(r.nodes) {
		return nil
	}

	return &codec.DecodeError{
		Kind:     codec.ErrTrailingData,
		Position: r.Position(),
		Msg:      "unexpected content after document value",
	}
}

// cursor walks the children of one node. For mappings the children
// alternate between keys and values.
type cursor struct {
	nodes []*yaml.Node
	pos   int
	last  *yaml.Node
}

func (c *cursor) Parser() wire.Parser {
	return Parser{}
}

// Position reports the location of the next node, or of the last one read
// when the collection is exhausted.
func (c *cursor) Position() string {
	n := c.last
	if c.pos < len(c.nodes) {
		n = c.nodes[c.pos]
	}

	if n == nil {
		return "start of document"
	}

	return fmt.Sprintf("line %d, column %d", n.Line, n.Column)
}

func (c *cursor) peek() (*yaml.Node, error) {
	if c.pos >= len(c.nodes) {
		return nil, ErrUnexpectedEnd
	}

	n := c.nodes[c.pos]
	for i := 0; n.Kind == yaml.AliasNode; i++ {
		if i == maxAliasChain || n.Alias == nil {
			return nil, fmt.Errorf("%w at line %d", ErrAliasDepth, n.Line)
		}

		n = n.Alias
	}

	return n, nil
}

func (c *cursor) consume(n *yaml.Node) {
	c.last = n
	c.pos++
}

func (c *cursor) ReadScalar(kind wire.TokenKind) (wire.Token, bool, error) {
	n, err := c.peek()
	if err != nil {
		return "", false, err
	}

	if n.Kind != yaml.ScalarNode || !accepts(kind, n.ShortTag()) {
		return "", false, nil
	}

	c.consume(n)

	return wire.Token(n.Value), true, nil
}

func accepts(kind wire.TokenKind, tag string) bool {
	switch kind {
	case wire.TokenNull:
		return tag == "!!null"
	case wire.TokenBool:
		return tag == "!!bool"
	case wire.TokenInt:
		return tag == "!!int"
	case wire.TokenFloat:
		return tag == "!!float" || tag == "!!int"
	case wire.TokenString:
		return tag == "!!str" || tag == "!!timestamp"
	default:
		return false
	}
}

func (c *cursor) BeginArray() (wire.ArraySource, bool, error) {
	n, err := c.peek()
	if err != nil || n.Kind != yaml.SequenceNode {
		return nil, false, err
	}

	c.consume(n)

	return seqCursor{&cursor{nodes: n.Content, last: n}}, true, nil
}

func (c *cursor) BeginObject() (wire.ObjectSource, bool, error) {
	n, err := c.peek()
	if err != nil || n.Kind != yaml.MappingNode {
		return nil, false, err
	}

	c.consume(n)

	return mapCursor{&cursor{nodes: n.Content, last: n}}, true, nil
}

func (c *cursor) readEnd() (bool, error) {
	return c.pos >= len(c.nodes), nil
}

type seqCursor struct {
	*cursor
}

func (s seqCursor) ReadEnd() (bool, error) {
	return s.readEnd()
}

type mapCursor struct {
	*cursor
}

func (m mapCursor) ReadEnd() (bool, error) {
	return m.readEnd()
}

// ReadKey accepts any scalar as a key; `1: x` has the key "1".
func (m mapCursor) ReadKey() (wire.Token, bool, error) {
	n, err := m.peek()
	if err != nil {
		return "", false, err
	}

	if n.Kind != yaml.ScalarNode {
		return "", false, nil
	}

	m.consume(n)

	return wire.Token(n.Value), true, nil
}
