package yamlwire

import (
	"structcodec/codec"
)

// Marshal renders v as a YAML document using the default registry.
func Marshal[T any](v T) ([]byte, error) {
	return MarshalWith(codec.Default, v, codec.NoContext{}, DefaultOptions())
}

// MarshalWith renders v using the plans of r.
func MarshalWith[T, C any](r *codec.Registry, v T, ctx C, opts Options) ([]byte, error) {
	w, err := NewWriter(opts)
	if err != nil {
		return nil, err
	}

	if err := codec.EncodeWith(r, w, v, ctx); err != nil {
		return nil, err
	}

	return w.Bytes()
}

// Unmarshal decodes one YAML document into a T using the default registry.
func Unmarshal[T any](data []byte) (T, error) {
	return UnmarshalWith[T](codec.Default, data, codec.NoContext{})
}

// UnmarshalWith decodes data using the plans of r.
func UnmarshalWith[T, C any](r *codec.Registry, data []byte, ctx C) (T, error) {
	var zero T

	src, err := NewReader(data)
	if err != nil {
		return zero, &codec.DecodeError{Kind: codec.ErrParse, Msg: "malformed YAML", Err: err}
	}

	v, err := codec.DecodeWith[T](r, src, ctx)
	if err != nil {
		return zero, err
	}

	if err := src.Finish(); err != nil {
		return zero, err
	}

	return v, nil
}
