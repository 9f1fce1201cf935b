package node

//go:generate go tool stringer -type=ShapeEnum -output=shape_string.go

// ShapeEnum classifies a type for traversal purposes.
type ShapeEnum int

const (
	ShapeUnknown ShapeEnum = iota
	ShapeScalar
	ShapeOptional
	ShapeSequence
	ShapeTuple
	ShapeMap
	ShapeRecord
	ShapeUnion

	// ShapeTotal is a constant that represents the total number of shapes defined
	ShapeTotal = int(iota)
)

// IsComposite reports whether values of the shape open an array or object scope.
func (s ShapeEnum) IsComposite() bool {
	switch s {
	default:
		return false
	case ShapeSequence, ShapeTuple, ShapeMap, ShapeRecord, ShapeUnion:
		return true
	}
}
