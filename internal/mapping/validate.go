package mapping

import (
	"fmt"
	"slices"

	"structcodec/internal/analyze"
	"structcodec/internal/diagnostic"
	"structcodec/internal/match"
)

const maxSuggestions = 2

// Validate checks a configuration against the analyzed package. Every type,
// interface and field it names must exist; union alternatives must implement
// their interface.
func Validate(f *File, pkg *analyze.Package) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("config_is_nil", "config file is nil", "", "")
		return res
	}

	if pkg == nil {
		res.AddError("package_is_nil", "package model is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported config version %q", f.Version), "", "", CurrentVersion)
	}

	names := pkg.TypeNames()
	for _, name := range slices.Concat(f.Include, f.Exclude) {
		if !slices.Contains(names, name) {
			res.AddError("unknown_type", fmt.Sprintf("type %q not found in %s", name, pkg.Path), name, "",
				match.Top(name, names, maxSuggestions)...)
		}
	}

	for _, name := range f.Include {
		if slices.Contains(f.Exclude, name) {
			res.AddError("include_excluded", fmt.Sprintf("type %q is both included and excluded", name), name, "")
		}
	}

	validateUnions(res, f, pkg)
	validateFields(res, f, pkg)

	return res
}

func validateUnions(res *diagnostic.Diagnostics, f *File, pkg *analyze.Package) {
	seen := make(map[string]struct{}, len(f.Unions))

	var ifaceNames []string
	for _, iface := range pkg.Interfaces {
		ifaceNames = append(ifaceNames, iface.ID.Name)
	}

	for i := range f.Unions {
		u := &f.Unions[i]

		if _, dup := seen[u.Interface]; dup {
			res.AddError("duplicate_union", fmt.Sprintf("interface %q configured twice", u.Interface), u.Interface, "")
			continue
		}

		seen[u.Interface] = struct{}{}

		iface := pkg.Interface(u.Interface)
		if iface == nil {
			res.AddError("unknown_interface", fmt.Sprintf("interface %q not found in %s", u.Interface, pkg.Path),
				u.Interface, "", match.Top(u.Interface, ifaceNames, maxSuggestions)...)

			continue
		}

		validateAlternatives(res, u, iface, pkg)
	}
}

func validateAlternatives(res *diagnostic.Diagnostics, u *Union, iface *analyze.Interface, pkg *analyze.Package) {
	if len(iface.Implementers) == 0 {
		res.AddError("no_implementers", fmt.Sprintf("no type in %s implements %s", pkg.Path, u.Interface), u.Interface, "")
		return
	}

	implNames := make([]string, len(iface.Implementers))
	for i, impl := range iface.Implementers {
		implNames[i] = impl.ID.Name
	}

	typesSeen := make(map[string]struct{}, len(u.Alternatives))
	namesSeen := make(map[string]struct{}, len(u.Alternatives))

	for _, alt := range u.Alternatives {
		if _, ok := iface.Implementer(alt.Type); !ok {
			res.AddError("not_an_implementer", fmt.Sprintf("type %q does not implement %s", alt.Type, u.Interface),
				u.Interface, alt.Type, match.Top(alt.Type, implNames, maxSuggestions)...)
		}

		if _, dup := typesSeen[alt.Type]; dup {
			res.AddError("duplicate_alternative", fmt.Sprintf("type %q listed twice", alt.Type), u.Interface, alt.Type)
		}

		if _, dup := namesSeen[alt.Name]; dup {
			res.AddError("duplicate_alternative_name", fmt.Sprintf("alternative name %q used twice", alt.Name), u.Interface, alt.Type)
		}

		typesSeen[alt.Type] = struct{}{}
		namesSeen[alt.Name] = struct{}{}
	}
}

func validateFields(res *diagnostic.Diagnostics, f *File, pkg *analyze.Package) {
	var recNames []string
	for _, rec := range pkg.Records {
		recNames = append(recNames, rec.ID.Name)
	}

	keys := make([]string, 0, len(f.Fields))
	for key := range f.Fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		ref, err := ParseFieldRef(key)
		if err != nil {
			res.AddError("invalid_field_ref", err.Error(), "", key)
			continue
		}

		if f.Fields[key] == "" {
			res.AddError("empty_field_name", fmt.Sprintf("wire name for %s is empty", key), ref.Type, key)
		}

		rec := pkg.Record(ref.Type)
		if rec == nil {
			res.AddError("unknown_record", fmt.Sprintf("record %q not found in %s", ref.Type, pkg.Path),
				ref.Type, key, match.Top(ref.Type, recNames, maxSuggestions)...)

			continue
		}

		selectors := make([]string, len(rec.Fields))
		for i := range rec.Fields {
			selectors[i] = rec.Fields[i].Selector()
		}

		if !slices.Contains(selectors, ref.Field) {
			res.AddError("unknown_field", fmt.Sprintf("record %s has no encoded field %q", ref.Type, ref.Field),
				ref.Type, key, match.Top(ref.Field, selectors, maxSuggestions)...)
		}
	}
}
