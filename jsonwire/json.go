package jsonwire

import (
	"bytes"

	"structcodec/codec"
)

// Marshal renders v as compact JSON using the default registry.
func Marshal[T any](v T) ([]byte, error) {
	return MarshalWith(codec.Default, v, codec.NoContext{}, DefaultOptions())
}

// MarshalOptions renders v with the given layout.
func MarshalOptions[T any](v T, opts Options) ([]byte, error) {
	return MarshalWith(codec.Default, v, codec.NoContext{}, opts)
}

// MarshalContext renders v, handing ctx to custom encoders.
func MarshalContext[T, C any](v T, ctx C, opts Options) ([]byte, error) {
	return MarshalWith(codec.Default, v, ctx, opts)
}

// MarshalWith renders v using the plans of r.
func MarshalWith[T, C any](r *codec.Registry, v T, ctx C, opts Options) ([]byte, error) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, opts)
	if err != nil {
		return nil, err
	}

	if err := codec.EncodeWith(r, w, v, ctx); err != nil {
		return nil, err
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data into a T using the default registry. The input must
// hold exactly one JSON value.
func Unmarshal[T any](data []byte) (T, error) {
	return UnmarshalWith[T](codec.Default, data, codec.NoContext{})
}

// UnmarshalContext decodes data, handing ctx to custom decoders.
func UnmarshalContext[T, C any](data []byte, ctx C) (T, error) {
	return UnmarshalWith[T](codec.Default, data, ctx)
}

// UnmarshalWith decodes data using the plans of r.
func UnmarshalWith[T, C any](r *codec.Registry, data []byte, ctx C) (T, error) {
	src := NewReader(bytes.NewReader(data))

	v, err := codec.DecodeWith[T](r, src, ctx)
	if err != nil {
		return v, err
	}

	if err := src.Finish(); err != nil {
		var zero T

		return zero, err
	}

	return v, nil
}
