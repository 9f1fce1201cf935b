package wire

// Token is a raw scalar lexeme handed out by a Source. Its interpretation is
// up to the Source's Parser.
type Token string

// TokenKind is the scalar class requested from a Source.
type TokenKind int

const (
	TokenNull TokenKind = iota
	TokenBool
	TokenInt
	TokenFloat
	TokenString
)

// String returns a human-readable token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenNull:
		return "null"
	case TokenBool:
		return "boolean"
	case TokenInt:
		return "integer"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	default:
		return "unknown"
	}
}

// Parser converts raw tokens into typed values. Parsers never see structure,
// only single scalar lexemes.
type Parser interface {
	ParseBool(tok Token) (bool, error)
	ParseInt(tok Token, bits int) (int64, error)
	ParseUint(tok Token, bits int) (uint64, error)
	ParseFloat(tok Token, bits int) (float64, error)
	ParseString(tok Token) (string, error)
}
