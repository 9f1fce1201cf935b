package yamlwire_test

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structcodec/codec"
	"structcodec/wire"
	"structcodec/yamlwire"
)

type server struct {
	Name   string               `codec:"name"`
	Ports  []uint16             `codec:"ports"`
	Limits map[string]float64   `codec:"limits"`
	Peer   *server              `codec:"peer"`
	Mode   mode                 `codec:"mode"`
	Span   codec.Pair[int, int] `codec:"span"`
}

type mode interface {
	isMode()
}

type active struct {
	Since int `codec:"since"`
}

type idle struct{}

func (active) isMode() {}
func (idle) isMode()   {}

func registry(t *testing.T) *codec.Registry {
	t.Helper()

	r := codec.NewRegistry()
	require.NoError(t, codec.RegisterUnion[mode](r, codec.Alt[active](""), codec.Alt[idle]("")))

	return r
}

func TestMarshalLayout(t *testing.T) {
	r := registry(t)

	in := server{
		Name:   "api",
		Ports:  []uint16{80, 443},
		Limits: map[string]float64{"mem": 2, "cpu": 0.5},
		Mode:   active{Since: 3},
		Span:   codec.MakePair(1, 2),
	}

	data, err := yamlwire.MarshalWith(r, in, codec.NoContext{}, yamlwire.DefaultOptions())
	require.NoError(t, err)

	want := `name: api
ports:
  - 80
  - 443
limits:
  cpu: 0.5
  mem: 2.0
peer: null
mode:
  active:
    since: 3
span:
  - 1
  - 2
`
	assert.Equal(t, want, string(data))
}

func TestRoundTrip(t *testing.T) {
	r := registry(t)

	in := server{
		Name:   "1234",
		Ports:  []uint16{},
		Limits: map[string]float64{"inf": math.Inf(1), "tiny": 1e-9},
		Peer: &server{
			Name:   "peer: with colon",
			Ports:  []uint16{65535},
			Limits: map[string]float64{},
			Mode:   idle{},
		},
		Mode: idle{},
		Span: codec.MakePair(-1, 0),
	}

	data, err := yamlwire.MarshalWith(r, in, codec.NoContext{}, yamlwire.DefaultOptions())
	require.NoError(t, err)

	got, err := yamlwire.UnmarshalWith[server](r, data, codec.NoContext{})
	require.NoError(t, err, string(data))
	assert.Equal(t, in, got, spew.Sdump(got))
}

func TestUnmarshalAliasesAndLexemes(t *testing.T) {
	r := registry(t)

	type wrapper struct {
		Base  active   `codec:"base"`
		Modes []mode   `codec:"modes"`
		Ports []uint16 `codec:"ports"`
		Ratio float64  `codec:"ratio"`
		Name  string   `codec:"name"`
	}

	doc := `
base: &b
  since: 0x10
modes:
  - active: *b
  - idle: {}
ports: [0o20, 1_000]
ratio: .inf
name: "007"
`
	got, err := yamlwire.UnmarshalWith[wrapper](r, []byte(doc), codec.NoContext{})
	require.NoError(t, err)

	want := wrapper{
		Base:  active{Since: 16},
		Modes: []mode{active{Since: 16}, idle{}},
		Ports: []uint16{16, 1000},
		Ratio: math.Inf(1),
		Name:  "007",
	}
	assert.Equal(t, want, got, spew.Sdump(got))
}

func TestUnmarshalShapeErrors(t *testing.T) {
	r := registry(t)

	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{"quoted number is a string", `"42"`, codec.ErrUnexpectedShape},
		{"float for int", `4.5`, codec.ErrUnexpectedShape},
		{"mapping for sequence", `{a: 1}`, codec.ErrUnexpectedShape},
		{"empty document", ``, codec.ErrParse},
		{"malformed", "[1, 2", codec.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yamlwire.UnmarshalWith[[]int](r, []byte(tt.doc), codec.NoContext{})
			require.ErrorIs(t, err, tt.kind)
		})
	}

	_, err := yamlwire.UnmarshalWith[mode](r, []byte("active: {since: 1}\nidle: {}\n"), codec.NoContext{})
	require.ErrorIs(t, err, codec.ErrTrailingData)
}

func TestWriterEmptyDocument(t *testing.T) {
	w, err := yamlwire.NewWriter(yamlwire.DefaultOptions())
	require.NoError(t, err)

	_, err = w.Bytes()
	require.ErrorIs(t, err, yamlwire.ErrEmptyDocument)

	require.NoError(t, w.WriteInt(1))
	require.ErrorIs(t, w.WriteInt(2), yamlwire.ErrMisplacedValue)

	_, err = yamlwire.NewWriter(yamlwire.Options{Indent: -1})
	require.ErrorIs(t, err, yamlwire.ErrInvalidOptions)
}

func TestParserFloats(t *testing.T) {
	p := yamlwire.Parser{}

	for tok, want := range map[string]float64{".inf": math.Inf(1), "-.Inf": math.Inf(-1), "1e3": 1000, "2": 2} {
		got, err := p.ParseFloat(wire.Token(tok), 64)
		require.NoError(t, err, tok)
		assert.Equal(t, want, got, tok)
	}

	nan, err := p.ParseFloat(".NaN", 64)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan))
}
