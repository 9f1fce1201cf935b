// Package yamlwire is the YAML backend of the codec engine, built on
// gopkg.in/yaml.v3 node trees.
//
// Writer assembles a *yaml.Node document from sink calls and renders it with
// a yaml.Encoder. Reader walks a parsed document; aliases are followed and
// scalars are classified by their resolved YAML tag, so an unquoted 42 is an
// integer and "42" a string.
package yamlwire
