package yamlwire

import (
	"math"
	"strconv"
	"strings"

	"structcodec/wire"
)

// Parser reads YAML scalar lexemes: base-prefixed and underscored integers,
// .inf and .nan floats, and the boolean spellings of YAML 1.2.
type Parser struct{}

var _ wire.Parser = Parser{}

func (Parser) ParseBool(tok wire.Token) (bool, error) {
	return strconv.ParseBool(string(tok))
}

func (Parser) ParseInt(tok wire.Token, bits int) (int64, error) {
	return strconv.ParseInt(string(tok), 0, bits)
}

func (Parser) ParseUint(tok wire.Token, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(string(tok), "+"), 0, bits)
}

func (Parser) ParseFloat(tok wire.Token, bits int) (float64, error) {
	switch s := strings.ToLower(string(tok)); s {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	default:
		return strconv.ParseFloat(s, bits)
	}
}

func (Parser) ParseString(tok wire.Token) (string, error) {
	return string(tok), nil
}

// formatFloat renders v so that it resolves as a YAML float.
func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
