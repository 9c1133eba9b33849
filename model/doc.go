package model

// TokenKind tags a documentation token
type TokenKind string

const (
	TokenText TokenKind = "text"
	TokenCode TokenKind = "code"
	TokenLink TokenKind = "link"
)

// Doc is an ordered sequence of documentation tokens
type Doc struct {
	Tokens []Token `yaml:"tokens" toml:"tokens" json:"tokens"`
}

// Token is plain text, an inline code span, or a cross-reference
type Token struct {
	Kind TokenKind `yaml:"kind" toml:"kind" json:"kind"`
	Text string    `yaml:"text,omitempty" toml:"text,omitempty" json:"text,omitempty"`
	Link *Link     `yaml:"link,omitempty" toml:"link,omitempty" json:"link,omitempty"`
}

// Link is a cross-reference to a type and optionally one of its members.
// A nil Type with a Member refers to a member of the enclosing class.
type Link struct {
	Type   *TypeInfo `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	Member string    `yaml:"member,omitempty" toml:"member,omitempty" json:"member,omitempty"`
	Label  string    `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty"`
}

// Empty reports whether d carries no tokens
func (d *Doc) Empty() bool {
	return d == nil || len(d.Tokens) == 0
}

// Text is a convenience constructor for a text token
func Text(s string) Token {
	return Token{Kind: TokenText, Text: s}
}

// Code is a convenience constructor for an inline code token
func Code(s string) Token {
	return Token{Kind: TokenCode, Text: s}
}

// LinkTo is a convenience constructor for a cross-reference token
func LinkTo(t *TypeInfo, member, label string) Token {
	return Token{Kind: TokenLink, Link: &Link{Type: t, Member: member, Label: label}}
}

// NewDoc builds a Doc from tokens
func NewDoc(tokens ...Token) *Doc {
	return &Doc{Tokens: tokens}
}
