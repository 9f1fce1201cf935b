package primitive

import (
	"strconv"

	"structcodec/wire"
)

// TextParser is the default wire.Parser. Tokens are plain decimal lexemes and
// already-unescaped strings.
type TextParser struct{}

var _ wire.Parser = TextParser{}

func (TextParser) ParseBool(tok wire.Token) (bool, error) {
	return strconv.ParseBool(string(tok))
}

func (TextParser) ParseInt(tok wire.Token, bits int) (int64, error) {
	return strconv.ParseInt(string(tok), 10, bits)
}

func (TextParser) ParseUint(tok wire.Token, bits int) (uint64, error) {
	return strconv.ParseUint(string(tok), 10, bits)
}

func (TextParser) ParseFloat(tok wire.Token, bits int) (float64, error) {
	return strconv.ParseFloat(string(tok), bits)
}

func (TextParser) ParseString(tok wire.Token) (string, error) {
	return string(tok), nil
}
