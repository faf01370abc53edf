// Package token parses type tokens into descriptors.
//
// A token is a numeric kind (`u8`..`u64`, `i8`..`i64`, `f32`, `f64`) or a
// special kind letter followed by an optional byte count: `s<N>` text,
// `b<N>` raw bytes, and any other lowercase letter for a transcoded region
// (`j` is JSON). Either form may carry a length specifier, see
// ResolveLengthSpec.
package token

import (
	"strconv"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v2"
	"github.com/pwnedgod/cstruct/errs"
)

// Descriptor is the semantic form of a token.
type Descriptor struct {
	// Token is the base token without its length specifier.
	Token string
	Kind  Kind
	// Letter names the transcoder of a Transcoded kind.
	Letter byte
	// HasLength is set when a length specifier was attached to the token.
	HasLength bool
	Static    bool
	// Size is the static byte size (special kinds) or item count (arrays),
	// NoSize when dynamic or implied by the kind width.
	Size int
	// Count is the on-wire count kind of a dynamic length.
	Count Kind
}

func (d Descriptor) Special() Special {
	return d.Kind.Special()
}

// IsArray reports a numeric token repeated by a length specifier.
func (d Descriptor) IsArray() bool {
	return d.Kind.IsNumeric() && d.HasLength
}

func (d Descriptor) String() string {
	if !d.HasLength {
		return d.Token
	}
	spec := d.Count.String()
	if d.Static {
		spec = strconv.Itoa(d.Size)
	}
	return d.Token + "[" + spec + "]"
}

const DefaultTTL = time.Hour

// Parser memoises descriptors per token. Parsing is pure, so a Parser can be
// shared freely between schemas and goroutines.
type Parser struct {
	cache *ccache.Cache
	ttl   time.Duration
}

func NewParser(cfg *ccache.Configuration) *Parser {
	if cfg == nil {
		cfg = ccache.Configure().MaxSize(4096)
	}
	return &Parser{
		cache: ccache.New(cfg),
		ttl:   DefaultTTL,
	}
}

var (
	defaultParser     *Parser
	defaultParserOnce sync.Once
)

// DefaultParser returns the process-wide parser.
func DefaultParser() *Parser {
	defaultParserOnce.Do(func() {
		defaultParser = NewParser(nil)
	})
	return defaultParser
}

// Stop releases the cache worker. The parser must not be used afterwards.
func (p *Parser) Stop() {
	p.cache.Stop()
}

// Parse resolves a Leaf token, including an inline length specifier.
func (p *Parser) Parse(tok string) (Descriptor, error) {
	return p.fetch(tok, func() (Descriptor, error) {
		if base, spec, ok := ResolveLengthSpec(tok); ok {
			return parseWithLength(base, spec)
		}
		d, err := parseBase(tok)
		if err != nil {
			return Descriptor{}, err
		}
		if d.Special() != SpecialNone && d.Size == NoSize {
			return Descriptor{}, errs.Schema("", "token %q needs a length", tok)
		}
		return d, nil
	})
}

// ParseWithLength resolves base with a length specifier taken from elsewhere,
// i.e. from a mapping field name suffix.
func (p *Parser) ParseWithLength(base, spec string) (Descriptor, error) {
	return p.fetch(base+"\x00"+spec, func() (Descriptor, error) {
		return parseWithLength(base, spec)
	})
}

func (p *Parser) fetch(key string, parse func() (Descriptor, error)) (Descriptor, error) {
	item, err := p.cache.Fetch(key, p.ttl, func() (interface{}, error) {
		return parse()
	})
	if err != nil {
		return Descriptor{}, err
	}
	return item.Value().(Descriptor), nil
}

func parseWithLength(base, spec string) (Descriptor, error) {
	d, err := parseBase(base)
	if err != nil {
		return Descriptor{}, err
	}
	l, err := ParseLength(spec)
	if err != nil {
		return Descriptor{}, err
	}
	d.HasLength = true
	d.Static = l.Static
	d.Size = l.Size
	d.Count = l.Count
	return d, nil
}

func parseBase(base string) (Descriptor, error) {
	if kind, ok := numericTokens[base]; ok {
		return Descriptor{Token: base, Kind: kind, Static: true, Size: NoSize}, nil
	}
	if base == "" || base[0] < 'a' || base[0] > 'z' {
		return Descriptor{}, errs.Schema("", "unknown token %q", base)
	}
	letter, digits := base[0], base[1:]
	if digits != "" && !isDecimal(digits) {
		return Descriptor{}, errs.Schema("", "unknown token %q", base)
	}

	d := Descriptor{Token: base, Size: NoSize}
	switch {
	case letter == LetterText:
		d.Kind = Text
	case letter == LetterBytes:
		d.Kind = Bytes
	case IsReservedLetter(letter):
		return Descriptor{}, errs.Schema("", "unknown token %q", base)
	default:
		d.Kind = Transcoded
		d.Letter = letter
	}

	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Descriptor{}, errs.Schema("", "size of %q out of range", base)
		}
		d.Static = true
		d.Size = n
	}
	return d, nil
}
