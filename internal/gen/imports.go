package gen

import (
	"cmp"
	"go/types"
	"slices"
)

// CodecPath is the import path of the registration API.
const CodecPath = "structcodec/codec"

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet names the packages referenced from generated code living in
// pkg. Package names that collide with a declaration of pkg or with another
// import get a numbered alias.
type importSet struct {
	pkg    *types.Package
	taken  map[string]struct{}
	byPath map[string]importSpec
}

func newImportSet(pkg *types.Package) *importSet {
	s := &importSet{
		pkg:    pkg,
		taken:  make(map[string]struct{}),
		byPath: make(map[string]importSpec),
	}

	if pkg != nil {
		for _, name := range pkg.Scope().Names() {
			s.taken[name] = struct{}{}
		}
	}

	return s
}

// name returns the identifier generated code uses for the package at path.
func (s *importSet) name(path, pkgName string) string {
	if spec, ok := s.byPath[path]; ok {
		if spec.Alias != "" {
			return spec.Alias
		}

		return pkgName
	}

	spec := importSpec{Path: path}
	ident := pkgName

	if _, clash := s.taken[pkgName]; clash {
		ident = NewStem(pkgName, s.taken).Next()
		spec.Alias = ident
	} else {
		s.taken[pkgName] = struct{}{}
	}

	s.byPath[path] = spec

	return ident
}

// qualify implements types.Qualifier.
func (s *importSet) qualify(other *types.Package) string {
	if s.pkg != nil && other.Path() == s.pkg.Path() {
		return ""
	}

	return s.name(other.Path(), other.Name())
}

// typeString renders t as it is spelled inside the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualify)
}

// specs returns the imports sorted by path.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int { return cmp.Compare(a.Path, b.Path) })

	return out
}
