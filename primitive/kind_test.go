package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"structcodec/primitive"
	"structcodec/wire"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(primitive.Null{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindInt
	// KindString
	// KindInt64
	// KindNull
	// KindEnum(0)
}

func TestKindEnum_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind primitive.KindEnum
		want wire.TokenKind
	}{
		{primitive.KindNull, wire.TokenNull},
		{primitive.KindBool, wire.TokenBool},
		{primitive.KindInt8, wire.TokenInt},
		{primitive.KindUint64, wire.TokenInt},
		{primitive.KindFloat32, wire.TokenFloat},
		{primitive.KindString, wire.TokenString},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Token())
		})
	}
}

func TestKindEnum_Bits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, primitive.KindInt8.Bits())
	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, 32, primitive.KindFloat32.Bits())
	assert.Equal(t, 64, primitive.KindInt64.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}

func TestKindEnum_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindInt.IsSigned())
	assert.True(t, primitive.KindUint.IsUnsigned())
	assert.True(t, primitive.KindFloat64.IsFloat())
	assert.False(t, primitive.KindFloat64.IsInteger())
	assert.False(t, primitive.KindBool.IsNumber())
	assert.False(t, primitive.KindNull.IsNumber())
}

func TestFromReflectType_NonScalars(t *testing.T) {
	t.Parallel()

	assert.Zero(t, primitive.FromReflectType(nil))
	assert.Zero(t, primitive.FromReflectType(reflect.TypeOf([]int{})))
	assert.Zero(t, primitive.FromReflectType(reflect.TypeOf(map[string]int{})))
	assert.Zero(t, primitive.FromReflectType(reflect.TypeOf(new(int))))
	assert.Zero(t, primitive.FromReflectType(reflect.TypeOf(complex64(0))))
}
