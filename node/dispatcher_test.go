package node_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"structcodec/node"
	"structcodec/primitive"
)

type color string

type point struct {
	X, Y int
}

type pair struct {
	node.TupleLayout
	Name string
	Tags []string
}

type shape interface{ area() float64 }

func ExampleDispatch() {
	fmt.Println(node.Dispatch(reflect.TypeOf(42)))
	fmt.Println(node.Dispatch(reflect.TypeOf([]string{})))
	fmt.Println(node.Dispatch(reflect.TypeOf([2]int{})))
	fmt.Println(node.Dispatch(reflect.TypeOf(point{})))
	fmt.Println(node.Dispatch(reflect.TypeOf(pair{})))
	// Output:
	// ShapeScalar
	// ShapeSequence
	// ShapeTuple
	// ShapeRecord
	// ShapeTuple
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
		want node.ShapeEnum
	}{
		{"nil", nil, node.ShapeUnknown},
		{"int", reflect.TypeFor[int](), node.ShapeScalar},
		{"named string", reflect.TypeFor[color](), node.ShapeScalar},
		{"null", reflect.TypeFor[primitive.Null](), node.ShapeScalar},
		{"pointer", reflect.TypeFor[*point](), node.ShapeOptional},
		{"double pointer", reflect.TypeFor[**point](), node.ShapeUnknown},
		{"slice", reflect.TypeFor[[]point](), node.ShapeSequence},
		{"array", reflect.TypeFor[[3]byte](), node.ShapeTuple},
		{"tuple struct", reflect.TypeFor[pair](), node.ShapeTuple},
		{"string map", reflect.TypeFor[map[color]int](), node.ShapeMap},
		{"int map", reflect.TypeFor[map[int]int](), node.ShapeUnknown},
		{"struct", reflect.TypeFor[point](), node.ShapeRecord},
		{"empty struct", reflect.TypeFor[struct{}](), node.ShapeRecord},
		{"interface", reflect.TypeFor[shape](), node.ShapeUnion},
		{"chan", reflect.TypeFor[chan int](), node.ShapeUnknown},
		{"func", reflect.TypeFor[func()](), node.ShapeUnknown},
		{"complex", reflect.TypeFor[complex128](), node.ShapeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, node.Dispatch(tt.typ))
		})
	}
}

func TestShapeEnum_IsComposite(t *testing.T) {
	t.Parallel()

	assert.False(t, node.ShapeScalar.IsComposite())
	assert.False(t, node.ShapeOptional.IsComposite())
	assert.True(t, node.ShapeRecord.IsComposite())
	assert.True(t, node.ShapeUnion.IsComposite())
	assert.Equal(t, "ShapeEnum(99)", node.ShapeEnum(99).String())
}
