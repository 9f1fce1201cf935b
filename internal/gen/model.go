package gen

import (
	"cmp"
	"fmt"
	"go/types"
	"slices"

	"structcodec/internal/analyze"
	"structcodec/internal/diagnostic"
	"structcodec/internal/mapping"
	"structcodec/node"
)

// Model is everything the registration template renders.
type Model struct {
	Package string // package clause name
	PkgPath string
	Records []RecordModel
	Unions  []UnionModel

	imports *importSet
}

// RecordModel is one codec.MustRegisterRecord call.
type RecordModel struct {
	Type   string
	Fields []FieldModel
}

// FieldModel is one codec.Field accessor.
type FieldModel struct {
	Name     string // wire name
	Selector string // Go selector relative to the record value
	Type     string // field type as spelled in the generated file
}

// UnionModel is one codec.MustRegisterUnion call.
type UnionModel struct {
	Interface    string
	Alternatives []AltModel
}

// AltModel is one codec.Alt entry.
type AltModel struct {
	Type string // "Circle" or "*Polygon"
	Name string
}

// Build combines the analyzed package with its configuration into the model
// to render. Diagnostics carry every validation finding; the model is nil
// when they contain errors.
func Build(pkg *analyze.Package, cfg *mapping.File) (*Model, *diagnostic.Diagnostics) {
	if cfg == nil {
		cfg = &mapping.File{Version: mapping.CurrentVersion}
	}

	diags := mapping.Validate(cfg, pkg)
	if diags.HasErrors() {
		return nil, diags
	}

	m := &Model{
		Package: pkg.Name,
		PkgPath: pkg.Path,
		imports: newImportSet(pkg.Types),
	}

	unions := buildUnions(m, pkg, cfg, diags)
	buildRecords(m, pkg, cfg, unions, diags)

	if diags.HasErrors() {
		return nil, diags
	}

	return m, diags
}

func excluded(cfg *mapping.File, name string) bool {
	return slices.Contains(cfg.Exclude, name)
}

func buildRecords(m *Model, pkg *analyze.Package, cfg *mapping.File, unions map[string]struct{}, diags *diagnostic.Diagnostics) {
	problems := make(map[analyze.TypeID][]analyze.Problem)
	for _, p := range pkg.Problems {
		problems[p.Record] = append(problems[p.Record], p)
	}

	for _, rec := range pkg.Records {
		name := rec.ID.Name
		if excluded(cfg, name) || (len(cfg.Include) > 0 && !slices.Contains(cfg.Include, name)) {
			continue
		}

		for _, p := range problems[rec.ID] {
			diags.AddError("unsupported_field", p.Err.Error(), name, p.Path)
		}

		for _, s := range rec.Skipped {
			diags.AddInfo("skipped_field", "field is "+s.Reason, name, analyze.NewTypePath(name).Field(s.Path).String())
		}

		m.Records = append(m.Records, buildRecord(m, pkg, cfg, rec, unions, diags))
	}
}

func buildRecord(
	m *Model,
	pkg *analyze.Package,
	cfg *mapping.File,
	rec *analyze.Record,
	unions map[string]struct{},
	diags *diagnostic.Diagnostics,
) RecordModel {
	name := rec.ID.Name
	out := RecordModel{Type: name}
	seen := make(map[string]string, len(rec.Fields))

	for i := range rec.Fields {
		f := &rec.Fields[i]
		sel := f.Selector()
		path := analyze.NewTypePath(name).Field(sel).String()

		wire := f.Name
		if renamed, ok := cfg.Rename(name, sel); ok {
			wire = renamed
		}

		if prev, dup := seen[wire]; dup {
			diags.AddError("duplicate_wire_name",
				fmt.Sprintf("wire name %q already used by %s", wire, prev), name, path)
		}

		seen[wire] = sel

		if f.Shape == node.ShapeUnion {
			checkUnionField(pkg, f, unions, name, path, diags)
		}

		out.Fields = append(out.Fields, FieldModel{
			Name:     wire,
			Selector: sel,
			Type:     m.imports.typeString(f.Type),
		})
	}

	return out
}

// checkUnionField warns about a field typed as a local interface that is not
// described as a union, since the engine cannot encode it without
// alternatives.
func checkUnionField(pkg *analyze.Package, f *analyze.Field, unions map[string]struct{}, rec, path string, diags *diagnostic.Diagnostics) {
	named, ok := types.Unalias(f.Type).(*types.Named)
	if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != pkg.Path {
		return
	}

	iface := pkg.Interface(named.Obj().Name())
	if iface == nil {
		return
	}

	if _, ok := unions[iface.ID.Name]; !ok {
		diags.AddWarning("unregistered_union",
			fmt.Sprintf("interface %s is not described as a union", iface.ID.Name), rec, path)
	}
}

func buildUnions(m *Model, pkg *analyze.Package, cfg *mapping.File, diags *diagnostic.Diagnostics) map[string]struct{} {
	described := make(map[string]struct{})

	if cfg.HasUnions() {
		for _, u := range cfg.Unions {
			iface := pkg.Interface(u.Interface)
			m.Unions = append(m.Unions, unionModel(iface, u.Alternatives))
			described[u.Interface] = struct{}{}
		}
	} else {
		for _, iface := range pkg.Interfaces {
			if len(iface.Implementers) == 0 || excluded(cfg, iface.ID.Name) {
				continue
			}

			diags.AddInfo("derived_union",
				fmt.Sprintf("described with all %d implementers", len(iface.Implementers)), iface.ID.Name, "")
			m.Unions = append(m.Unions, unionModel(iface, nil))
			described[iface.ID.Name] = struct{}{}
		}
	}

	slices.SortFunc(m.Unions, func(a, b UnionModel) int { return cmp.Compare(a.Interface, b.Interface) })

	return described
}

func unionModel(iface *analyze.Interface, alts []mapping.Alternative) UnionModel {
	out := UnionModel{Interface: iface.ID.Name}

	if len(alts) == 0 {
		for _, impl := range iface.Implementers {
			alts = append(alts, mapping.Alternative{Type: impl.ID.Name, Name: impl.ID.Name})
		}
	}

	for _, alt := range alts {
		impl, _ := iface.Implementer(alt.Type)

		typ := impl.ID.Name
		if impl.Pointer {
			typ = "*" + typ
		}

		out.Alternatives = append(out.Alternatives, AltModel{Type: typ, Name: alt.Name})
	}

	return out
}
