package codec_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structcodec/codec"
	"structcodec/jsonwire"
	"structcodec/wire"
)

type millis int64

type job struct {
	Name    string `codec:"name"`
	Timeout millis `codec:"timeout"`
}

type human struct{}

type verbose interface {
	Verbose() bool
}

type loud interface {
	Loud() bool
}

type quiet struct{}

func (quiet) Verbose() bool { return false }

type chatty struct{}

func (chatty) Verbose() bool { return true }
func (chatty) Loud() bool    { return true }

func encodeHuman(_ *codec.Encoder, s wire.Sink, v millis, _ human) error {
	return s.WriteString((time.Duration(v) * time.Millisecond).String())
}

func decodeHuman(_ *codec.Decoder, src wire.Source, _ human) (millis, error) {
	tok, ok, err := src.ReadScalar(wire.TokenString)
	if err != nil {
		return 0, err
	}

	if !ok {
		return 0, fmt.Errorf("timeout must be a duration string")
	}

	d, err := time.ParseDuration(string(tok))
	if err != nil {
		return 0, err
	}

	return millis(d / time.Millisecond), nil
}

func TestContextSpecificHandler(t *testing.T) {
	r := codec.NewRegistry()
	codec.MustRegisterEncoder[millis, human](r, encodeHuman)
	codec.MustRegisterDecoder[millis, human](r, decodeHuman)

	in := job{Name: "backup", Timeout: 1500}

	plain, err := jsonwire.MarshalWith(r, in, codec.NoContext{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `{"name":"backup","timeout":1500}`, string(plain))

	pretty, err := jsonwire.MarshalWith(r, in, human{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `{"name":"backup","timeout":"1.5s"}`, string(pretty))

	got, err := jsonwire.UnmarshalWith[job](r, pretty, human{})
	require.NoError(t, err)
	assert.Equal(t, in, got)

	_, err = jsonwire.UnmarshalWith[job](r, plain, human{})
	require.ErrorContains(t, err, "timeout must be a duration string")

	got, err = jsonwire.UnmarshalWith[job](r, plain, codec.NoContext{})
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestInterfaceContextHandler(t *testing.T) {
	r := codec.NewRegistry()
	codec.MustRegisterEncoder[millis, verbose](r, func(_ *codec.Encoder, s wire.Sink, v millis, ctx verbose) error {
		return s.WriteString(fmt.Sprintf("%dms verbose=%t", v, ctx.Verbose()))
	})

	data, err := jsonwire.MarshalWith(r, millis(5), quiet{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `"5ms verbose=false"`, string(data))

	data, err = jsonwire.MarshalWith(r, millis(5), codec.NoContext{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `5`, string(data))
}

func TestAmbiguousInterfaceHandlers(t *testing.T) {
	r := codec.NewRegistry()
	codec.MustRegisterEncoder[millis, verbose](r, func(_ *codec.Encoder, s wire.Sink, _ millis, _ verbose) error {
		return s.WriteString("verbose")
	})
	codec.MustRegisterEncoder[millis, loud](r, func(_ *codec.Encoder, s wire.Sink, _ millis, _ loud) error {
		return s.WriteString("loud")
	})

	err := codec.Compile[job, chatty](r)
	require.ErrorIs(t, err, codec.ErrAmbiguousHandler)

	require.NoError(t, codec.Compile[job, quiet](r))

	// an exact match settles the ambiguity
	codec.MustRegisterEncoder[millis, chatty](r, func(_ *codec.Encoder, s wire.Sink, _ millis, _ chatty) error {
		return s.WriteString("chatty")
	})

	data, err := jsonwire.MarshalWith(r, millis(1), chatty{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `"chatty"`, string(data))
}

func TestAnyContextFallback(t *testing.T) {
	r := codec.NewRegistry()
	codec.MustRegisterEncoder[millis, any](r, func(e *codec.Encoder, s wire.Sink, v millis, ctx any) error {
		return s.WriteString(fmt.Sprintf("%d@%T", v, ctx))
	})
	codec.MustRegisterEncoder[millis, human](r, encodeHuman)

	data, err := jsonwire.MarshalWith(r, millis(2), codec.NoContext{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `"2@codec.NoContext"`, string(data))

	data, err = jsonwire.MarshalWith(r, millis(2000), human{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(data))
}

type upper string

func TestNestedDelegation(t *testing.T) {
	r := codec.NewRegistry()

	// wraps every job in a one-element envelope array, delegating the job
	// itself back to the engine
	codec.MustRegisterEncoder[[]job, codec.NoContext](r,
		func(e *codec.Encoder, s wire.Sink, v []job, _ codec.NoContext) error {
			arr, err := s.BeginArray()
			if err != nil {
				return err
			}

			for _, j := range v {
				if err := codec.EncodeNested(e, arr, codec.MakePair(upper(strings.ToUpper(j.Name)), j)); err != nil {
					return err
				}
			}

			return arr.End()
		})

	codec.MustRegisterDecoder[[]job, codec.NoContext](r,
		func(d *codec.Decoder, src wire.Source, _ codec.NoContext) ([]job, error) {
			pairs, err := codec.DecodeNested[[]codec.Pair[upper, job]](d, src)
			if err != nil {
				return nil, err
			}

			out := make([]job, len(pairs))
			for i, p := range pairs {
				out[i] = p.Second
			}

			return out, nil
		})

	in := []job{{Name: "a", Timeout: 1}, {Name: "b", Timeout: 2}}

	data, err := jsonwire.MarshalWith(r, in, codec.NoContext{}, jsonwire.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `[["A",{"name":"a","timeout":1}],["B",{"name":"b","timeout":2}]]`, string(data))

	got, err := jsonwire.UnmarshalWith[[]job](r, data, codec.NoContext{})
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestHandlerErrorsPassThrough(t *testing.T) {
	r := codec.NewRegistry()

	boom := fmt.Errorf("boom")
	codec.MustRegisterEncoder[millis, any](r, func(*codec.Encoder, wire.Sink, millis, any) error {
		return boom
	})

	_, err := jsonwire.MarshalWith(r, job{}, codec.NoContext{}, jsonwire.DefaultOptions())
	assert.Same(t, boom, err)
}
