package gen

import (
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	m, _ := Build(analyzeSource(t, shapesSrc), nil)
	require.NotNil(t, m)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(m)
	require.NoError(t, err)

	assert.Equal(t, "shapes_codec.go", file.Filename)
	assert.Equal(t, `// Code generated by codecgen. DO NOT EDIT.

package shapes

import (
	"structcodec/codec"
)

func init() {
	codec.MustRegisterRecord[Circle](codec.Default,
		codec.Field("author", func(v *Circle) *string { return &v.Meta.Author }),
		codec.Field("center", func(v *Circle) *Point { return &v.Center }),
		codec.Field("r", func(v *Circle) *float64 { return &v.R }),
		codec.Field("tool", func(v *Circle) *Tool { return &v.Tool }),
	)
	codec.MustRegisterRecord[Meta](codec.Default,
		codec.Field("author", func(v *Meta) *string { return &v.Author }),
	)
	codec.MustRegisterRecord[Point](codec.Default,
		codec.Field("x", func(v *Point) *float64 { return &v.X }),
		codec.Field("y", func(v *Point) *float64 { return &v.Y }),
	)
	codec.MustRegisterRecord[Poly](codec.Default,
		codec.Field("points", func(v *Poly) *[]Point { return &v.Points }),
	)
	codec.MustRegisterUnion[Shape](codec.Default,
		codec.Alt[Circle]("Circle"),
		codec.Alt[*Poly]("Poly"),
	)
}
`, string(file.Content))
}

func TestGenerateRegistryAndFilename(t *testing.T) {
	m, _ := Build(analyzeSource(t, shapesSrc), parseConfig(t, "include: [Point]\nunions: []\n"))
	require.NotNil(t, m)

	file, err := NewGenerator(GeneratorConfig{Filename: "zz_codec.go", Registry: "Registry"}).Generate(m)
	require.NoError(t, err)

	assert.Equal(t, "zz_codec.go", file.Filename)
	assert.Contains(t, string(file.Content), "codec.MustRegisterRecord[Point](Registry,\n")
	assert.NotContains(t, string(file.Content), "MustRegisterUnion")
}

func TestGenerateImportAlias(t *testing.T) {
	src := "package shapes\n\nvar codec = 1\n\ntype Point struct{ X int }\n"

	m, _ := Build(analyzeSource(t, src), nil)
	require.NotNil(t, m)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(m)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "\tcodec1 \"structcodec/codec\"\n")
	assert.Contains(t, content, "codec1.MustRegisterRecord[Point](codec1.Default,\n")
	assert.Contains(t, content, "codec1.Field(\"X\", func(v *Point) *int { return &v.X }),\n")
}

func TestGenerateEmpty(t *testing.T) {
	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(nil)
	require.ErrorIs(t, err, ErrEmptyModel)

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(&Model{Package: "p"})
	require.ErrorIs(t, err, ErrEmptyModel)
}

func TestGenerateUnformatted(t *testing.T) {
	dir := t.TempDir()
	m := &Model{
		Package: "p",
		Records: []RecordModel{{
			Type:   "T",
			Fields: []FieldModel{{Name: "x", Selector: "X", Type: "int)"}},
		}},
	}

	file, err := NewGenerator(GeneratorConfig{OutputDir: dir}).Generate(m)
	require.ErrorContains(t, err, "formatting code")
	require.NotNil(t, file)

	sidecar, readErr := os.ReadFile(filepath.Join(dir, "p_codec.unformatted.go"))
	require.NoError(t, readErr)
	assert.Equal(t, file.Content, sidecar)
}

func TestImportSet(t *testing.T) {
	home := types.NewPackage("example.com/shapes", "shapes")
	home.Scope().Insert(types.NewTypeName(0, home, "Point", nil))

	timePkg := types.NewPackage("time", "time")
	otherTime := types.NewPackage("example.com/clock/time", "time")

	duration := types.NewNamed(types.NewTypeName(0, timePkg, "Duration", nil), types.Typ[types.Int64], nil)
	tick := types.NewNamed(types.NewTypeName(0, otherTime, "Tick", nil), types.Typ[types.Int], nil)
	local := types.NewNamed(types.NewTypeName(0, home, "Point", nil), types.NewStruct(nil, nil), nil)

	s := newImportSet(home)
	assert.Equal(t, "[]time.Duration", s.typeString(types.NewSlice(duration)))
	assert.Equal(t, "map[string]time1.Tick", s.typeString(types.NewMap(types.Typ[types.String], tick)))
	assert.Equal(t, "*Point", s.typeString(types.NewPointer(local)))
	assert.Equal(t, "time.Duration", s.typeString(duration))

	assert.Equal(t, []importSpec{
		{Alias: "time1", Path: "example.com/clock/time"},
		{Path: "time"},
	}, s.specs())
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	err := WriteFiles([]GeneratedFile{{Filename: "a_codec.go", Content: []byte("package a\n")}}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a_codec.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(data))
}
