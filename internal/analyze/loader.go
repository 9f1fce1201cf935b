package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"structcodec/node"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts their records and interfaces.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir string
	// Exclude lists type names that are neither records nor unions.
	Exclude []string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// LoadPackages loads the packages matching patterns (e.g.
// "./examples/geometry") and extracts one Package model per loaded package.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, a.processPackage(pkg))
	}

	return out, nil
}

// processPackage extracts records and interfaces from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	info := a.Extract(pkg.Types)
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	return info
}

// Extract builds the model of a type-checked package.
func (a *Analyzer) Extract(pkg *types.Package) *Package {
	info := &Package{
		Path:  pkg.Path(),
		Name:  pkg.Name(),
		Types: pkg,
	}

	var candidates []*types.Named

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() || slices.Contains(a.Exclude, name) {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		candidates = append(candidates, named)
	}

	for _, named := range candidates {
		switch u := named.Underlying().(type) {
		case *types.Struct:
			if IsTupleStruct(u) {
				continue
			}

			rec := a.analyzeRecord(named, u)
			info.Records = append(info.Records, rec)
			info.Problems = append(info.Problems, checkFields(rec)...)

		case *types.Interface:
			if u.Empty() {
				continue
			}

			info.Interfaces = append(info.Interfaces, implementers(named, u, candidates))
		}
	}

	return info
}

func (a *Analyzer) analyzeRecord(named *types.Named, st *types.Struct) *Record {
	rec := &Record{
		ID:    idOf(named.Obj()),
		Named: named,
	}

	collectFields(rec, st, nil)

	return rec
}

// collectFields appends the fields of st in declaration order, flattening
// embedded structs into the parent unless a tag names or skips them.
func collectFields(rec *Record, st *types.Struct, prefix []string) {
	for i := range st.NumFields() {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		path := append(slices.Clone(prefix), f.Name())

		if f.Embedded() {
			if named, ok := types.Unalias(f.Type()).(*types.Named); ok && idOf(named.Obj()) == tupleLayoutID {
				continue
			}

			if inner, ok := f.Type().Underlying().(*types.Struct); ok {
				if _, _, tagged := node.TagName(tag); !tagged {
					collectFields(rec, inner, path)
					continue
				}
			}
		}

		if !f.Exported() {
			rec.Skipped = append(rec.Skipped, Skipped{Path: strings.Join(path, "."), Reason: "unexported"})
			continue
		}

		name, ok := FieldName(tag, f.Name())
		if !ok {
			rec.Skipped = append(rec.Skipped, Skipped{Path: strings.Join(path, "."), Reason: `tagged "-"`})
			continue
		}

		rec.Fields = append(rec.Fields, Field{
			GoName: f.Name(),
			Name:   name,
			Path:   path,
			Type:   f.Type(),
			Tag:    tag,
		})
	}
}

// FieldName resolves the wire name of a struct field from its `codec` tag,
// then its `json` tag, then the Go name. The second result is false when the
// field is skipped with "-".
func FieldName(tag reflect.StructTag, goName string) (string, bool) {
	name, skip, tagged := node.TagName(tag)

	switch {
	case skip:
		return "", false
	case tagged:
		return name, true
	default:
		return goName, true
	}
}

func checkFields(rec *Record) []Problem {
	var problems []Problem

	for i := range rec.Fields {
		f := &rec.Fields[i]

		shape, err := Classify(f.Type)
		if err != nil {
			problems = append(problems, Problem{
				Record: rec.ID,
				Path:   NewTypePath(rec.ID.Name).Field(f.Selector()).String(),
				Err:    err,
			})
		}

		f.Shape = shape
	}

	return problems
}

func implementers(named *types.Named, iface *types.Interface, candidates []*types.Named) *Interface {
	out := &Interface{
		ID:    idOf(named.Obj()),
		Named: named,
	}

	for _, c := range candidates {
		if _, isIface := c.Underlying().(*types.Interface); isIface {
			continue
		}

		switch {
		case types.Implements(c, iface):
			out.Implementers = append(out.Implementers, Implementer{ID: idOf(c.Obj()), Named: c})
		case types.Implements(types.NewPointer(c), iface):
			out.Implementers = append(out.Implementers, Implementer{ID: idOf(c.Obj()), Named: c, Pointer: true})
		}
	}

	return out
}
