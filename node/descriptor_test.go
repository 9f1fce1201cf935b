package node_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structcodec/node"
)

type audit struct {
	CreatedBy string `codec:"created_by"`
	Revision  int
}

type document struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `codec:"title" json:"ignored"`
	Secret   string `codec:"-"`
	internal int
	audit
	Nested audit `codec:"nested"`
}

func TestRecordFields(t *testing.T) {
	t.Parallel()

	fields, err := node.RecordFields(reflect.TypeFor[document]())
	require.NoError(t, err)

	var names []string
	for i, f := range fields {
		names = append(names, f.Name)
		assert.Equal(t, i, f.Index)
		assert.False(t, f.NeedsAddr)
	}

	assert.Equal(t, []string{"id", "title", "created_by", "Revision", "nested"}, names)

	doc := document{ID: 7, Title: "t", audit: audit{CreatedBy: "ann", Revision: 3}}
	v := reflect.ValueOf(&doc).Elem()

	assert.Equal(t, int64(7), fields[0].Slot(v).Int())
	assert.Equal(t, "ann", fields[2].Slot(v).String())

	fields[3].Slot(v).SetInt(4)
	assert.Equal(t, 4, doc.Revision)
}

type credentials struct {
	Secret int
}

type Inner struct {
	A int
}

type wrapped struct {
	credentials `json:"-"`
	Inner       `json:"inner"`
	audit       `json:",omitempty"`
	Z           int
}

func TestRecordFields_EmbeddedTags(t *testing.T) {
	t.Parallel()

	fields, err := node.RecordFields(reflect.TypeFor[wrapped]())
	require.NoError(t, err)

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"inner", "created_by", "Revision", "Z"}, names)
	assert.Equal(t, reflect.TypeFor[Inner](), fields[0].Type)

	w := wrapped{credentials: credentials{Secret: 7}, Inner: Inner{A: 1}}
	v := reflect.ValueOf(&w).Elem()
	assert.Equal(t, int64(1), fields[0].Slot(v).Field(0).Int())
}

func TestTagName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag    reflect.StructTag
		name   string
		skip   bool
		tagged bool
	}{
		{``, "", false, false},
		{`json:",omitempty"`, "", false, false},
		{`json:"n"`, "n", false, true},
		{`codec:"c" json:"n"`, "c", false, true},
		{`codec:",omitempty" json:"n"`, "n", false, true},
		{`json:"-"`, "", true, true},
		{`json:"-,"`, "-", false, true},
		{`codec:"-" json:"n"`, "", true, true},
	}

	for _, tt := range tests {
		name, skip, tagged := node.TagName(tt.tag)
		assert.Equal(t, tt.name, name, tt.tag)
		assert.Equal(t, tt.skip, skip, tt.tag)
		assert.Equal(t, tt.tagged, tagged, tt.tag)
	}
}

func TestRecordFields_Errors(t *testing.T) {
	t.Parallel()

	_, err := node.RecordFields(reflect.TypeFor[int]())
	require.ErrorIs(t, err, node.ErrNotAStruct)

	type clash struct {
		A int `codec:"x"`
		B int `json:"x"`
	}

	_, err = node.RecordFields(reflect.TypeFor[clash]())
	require.ErrorIs(t, err, node.ErrDuplicateField)
}

func TestTupleSlots(t *testing.T) {
	t.Parallel()

	t.Run("array", func(t *testing.T) {
		slots, err := node.TupleSlots(reflect.TypeFor[[3]string]())
		require.NoError(t, err)
		require.Len(t, slots, 3)

		arr := [3]string{"a", "b", "c"}
		v := reflect.ValueOf(&arr).Elem()
		assert.Equal(t, "2", slots[2].Name)
		assert.Equal(t, "c", slots[2].Slot(v).String())
	})

	t.Run("tuple struct", func(t *testing.T) {
		slots, err := node.TupleSlots(reflect.TypeFor[pair]())
		require.NoError(t, err)
		require.Len(t, slots, 2)

		assert.Equal(t, "Name", slots[0].Name)
		assert.Equal(t, 1, slots[1].Index)
		assert.Equal(t, reflect.TypeFor[[]string](), slots[1].Type)
	})

	t.Run("not a tuple", func(t *testing.T) {
		_, err := node.TupleSlots(reflect.TypeFor[point]())
		require.ErrorIs(t, err, node.ErrNotAnArray)
	})
}

func TestAlternativeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "point", node.AlternativeName(reflect.TypeFor[point]()))
	assert.Equal(t, "point", node.AlternativeName(reflect.TypeFor[*point]()))
}
