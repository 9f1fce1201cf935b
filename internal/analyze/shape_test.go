package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structcodec/node"
	"structcodec/primitive"
)

func TestClassify(t *testing.T) {
	pkg := check(t, shapesSrc)

	str := types.Typ[types.String]
	f64 := types.Typ[types.Float64]

	tests := []struct {
		name  string
		typ   types.Type
		shape node.ShapeEnum
	}{
		{"basic", f64, node.ShapeScalar},
		{"named basic", lookup(t, pkg, "Status"), node.ShapeScalar},
		{"pointer", types.NewPointer(f64), node.ShapeOptional},
		{"slice", types.NewSlice(lookup(t, pkg, "Point")), node.ShapeSequence},
		{"array", types.NewArray(str, 2), node.ShapeTuple},
		{"map", types.NewMap(str, types.NewSlice(f64)), node.ShapeMap},
		{"map named key", types.NewMap(lookup(t, pkg, "Status"), f64), node.ShapeMap},
		{"record", lookup(t, pkg, "Point"), node.ShapeRecord},
		{"union", lookup(t, pkg, "Shape"), node.ShapeUnion},
		{"recursive", lookup(t, pkg, "List"), node.ShapeSequence},
		{"alias", lookup(t, pkg, "Alias"), node.ShapeRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := Classify(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, shape)
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	f64 := types.Typ[types.Float64]

	tests := []struct {
		name string
		typ  types.Type
		msg  string
	}{
		{"complex", types.Typ[types.Complex128], "unsupported type: complex128"},
		{"double pointer", types.NewPointer(types.NewPointer(f64)), "unsupported type: **float64 has no unambiguous null"},
		{"int key", types.NewMap(types.Typ[types.Int], f64), "unsupported type: map[int]float64 has a non-string key"},
		{"chan element", types.NewSlice(types.NewChan(types.SendRecv, f64)), "element of []chan float64: unsupported type: chan float64"},
		{"empty interface", types.NewInterfaceType(nil, nil), "unsupported type: interface{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := Classify(tt.typ)
			assert.Equal(t, node.ShapeUnknown, shape)
			require.ErrorIs(t, err, ErrUnsupportedType)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestScalarKind(t *testing.T) {
	assert.Equal(t, primitive.KindInt8, ScalarKind(types.Typ[types.Int8]))
	assert.Equal(t, primitive.KindUint64, ScalarKind(types.Typ[types.Uint64]))
	assert.Equal(t, primitive.KindString, ScalarKind(check(t, shapesSrc).Scope().Lookup("Status").Type()))
	assert.Zero(t, ScalarKind(types.Typ[types.Uintptr]))
	assert.Zero(t, ScalarKind(types.NewSlice(types.Typ[types.Int])))
}
