package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

const shapesSrc = `package shapes

type Shape interface{ Area() float64 }

type Status string

type Point struct {
	X      float64 ` + "`json:\"x\"`" + `
	Y      float64 ` + "`codec:\"y\" json:\"why\"`" + `
	Z      float64 ` + "`json:\",omitempty\"`" + `
	hidden int
	Skip   bool ` + "`json:\"-\"`" + `
}

type Base struct {
	ID string ` + "`codec:\"id\"`" + `
}

type Circle struct {
	Base
	Radius float64
}

func (Circle) Area() float64 { return 0 }

type Labeled struct {
	Base ` + "`codec:\"base\"`" + `
	Text   string
	Status Status
}

type Poly struct {
	Points []Point
}

func (*Poly) Area() float64 { return 0 }

type Broken struct {
	Events chan int
	Lookup map[int]string
	Any    any
}

type Box[T any] struct{ V T }

type Alias = Point

type List []List
`

// check type-checks a single import-free source file.
func check(t *testing.T, src string) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "shapes.go", src, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/shapes", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	return pkg
}

func lookup(t *testing.T, pkg *types.Package, name string) types.Type {
	t.Helper()

	obj := pkg.Scope().Lookup(name)
	require.NotNil(t, obj, name)

	return obj.Type()
}

func reflectTag(s string) reflect.StructTag {
	return reflect.StructTag(s)
}
