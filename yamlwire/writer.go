package yamlwire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"structcodec/wire"
)

var (
	ErrInvalidOptions = errors.New("yamlwire: invalid options")
	ErrClosedScope    = errors.New("yamlwire: write to closed scope")
	ErrMisplacedValue = errors.New("yamlwire: value or key out of place")
	ErrEmptyDocument  = errors.New("yamlwire: empty document")
)

// Options controls rendering.
type Options struct {
	// Indent is the number of spaces per nesting level; zero keeps the
	// yaml.v3 default.
	Indent int
}

func DefaultOptions() Options {
	return Options{Indent: 2}
}

// Writer is a wire.Sink collecting one YAML document.
type Writer struct {
	opts Options
	doc  *yaml.Node
	root scope
}

var (
	_ wire.Sink       = (*Writer)(nil)
	_ wire.ArraySink  = (*scope)(nil)
	_ wire.ObjectSink = (*scope)(nil)
)

func NewWriter(opts Options) (*Writer, error) {
	if opts.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", ErrInvalidOptions, opts.Indent)
	}

	w := &Writer{opts: opts, doc: &yaml.Node{Kind: yaml.DocumentNode}}
	w.root = scope{node: w.doc}

	return w, nil
}

// Node returns the document assembled so far.
func (w *Writer) Node() *yaml.Node {
	return w.doc
}

// Encode renders the document to out.
func (w *Writer) Encode(out io.Writer) error {
	if len(w.doc.Content) == 0 {
		return ErrEmptyDocument
	}

	enc := yaml.NewEncoder(out)
	if w.opts.Indent > 0 {
		enc.SetIndent(w.opts.Indent)
	}

	if err := enc.Encode(w.doc); err != nil {
		return err
	}

	return enc.Close()
}

// Bytes renders the document.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (w *Writer) WriteNull() error                     { return w.root.WriteNull() }
func (w *Writer) WriteBool(v bool) error               { return w.root.WriteBool(v) }
func (w *Writer) WriteInt(v int64) error               { return w.root.WriteInt(v) }
func (w *Writer) WriteUint(v uint64) error             { return w.root.WriteUint(v) }
func (w *Writer) WriteFloat(v float64, bits int) error { return w.root.WriteFloat(v, bits) }
func (w *Writer) WriteString(v string) error           { return w.root.WriteString(v) }
func (w *Writer) BeginArray() (wire.ArraySink, error)  { return w.root.BeginArray() }

func (w *Writer) BeginObject() (wire.ObjectSink, error) {
	return w.root.BeginObject()
}

// scope appends children to a document, sequence or mapping node.
type scope struct {
	node   *yaml.Node
	keyed  bool
	closed bool
}

func (s *scope) add(n *yaml.Node) error {
	if s.closed {
		return ErrClosedScope
	}

	switch s.node.Kind {
	case yaml.DocumentNode:
		if len(s.node.Content) > 0 {
			return fmt.Errorf("%w: document already holds a value", ErrMisplacedValue)
		}
	case yaml.MappingNode:
		if !s.keyed {
			return fmt.Errorf("%w: mapping value without key", ErrMisplacedValue)
		}

		s.keyed = false
	}

	s.node.Content = append(s.node.Content, n)

	return nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (s *scope) WriteNull() error {
	return s.add(scalar("!!null", "null"))
}

func (s *scope) WriteBool(v bool) error {
	return s.add(scalar("!!bool", strconv.FormatBool(v)))
}

func (s *scope) WriteInt(v int64) error {
	return s.add(scalar("!!int", strconv.FormatInt(v, 10)))
}

func (s *scope) WriteUint(v uint64) error {
	return s.add(scalar("!!int", strconv.FormatUint(v, 10)))
}

func (s *scope) WriteFloat(v float64, bits int) error {
	return s.add(scalar("!!float", formatFloat(v, bits)))
}

func (s *scope) WriteString(v string) error {
	return s.add(scalar("!!str", v))
}

func (s *scope) BeginArray() (wire.ArraySink, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if err := s.add(n); err != nil {
		return nil, err
	}

	return &scope{node: n}, nil
}

func (s *scope) BeginObject() (wire.ObjectSink, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if err := s.add(n); err != nil {
		return nil, err
	}

	return &scope{node: n}, nil
}

func (s *scope) WriteKey(name string) error {
	if s.closed {
		return ErrClosedScope
	}

	if s.node.Kind != yaml.MappingNode || s.keyed {
		return fmt.Errorf("%w: key %q", ErrMisplacedValue, name)
	}

	s.node.Content = append(s.node.Content, scalar("!!str", name))
	s.keyed = true

	return nil
}

func (s *scope) End() error {
	if s.closed || s.node.Kind == yaml.DocumentNode {
		return ErrClosedScope
	}

	if s.keyed {
		return fmt.Errorf("%w: mapping closed after a key", ErrMisplacedValue)
	}

	s.closed = true

	return nil
}
