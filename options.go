package cstruct

import (
	"maps"

	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/codec"
	"github.com/pwnedgod/cstruct/codec/json"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/logger"
	"github.com/pwnedgod/cstruct/logger/nop"
	"github.com/pwnedgod/cstruct/token"
)

type (
	Option func(*config)

	config struct {
		endian      buffer.Endian
		logger      logger.Logger
		transcoders map[byte]codec.Codec
		types       map[string]any
		parser      *token.Parser
		err         error
	}
)

func newConfig(opts []Option) *config {
	c := &config{
		endian:      buffer.BigEndian,
		logger:      nop.NewLogger(),
		transcoders: map[byte]codec.Codec{token.LetterJSON: json.NewCodec()},
		parser:      token.DefaultParser(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithEndian(e buffer.Endian) Option {
	return func(c *config) {
		c.endian = e
	}
}

// WithLogger sets the logger of the drivers. Calls are silent by default.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTranscoder attaches a codec to a transcoded kind letter, so that tokens
// like `m[u16]` carry values encoded by it. Registering `j` replaces the JSON
// codec. Letters of built-in kinds are rejected when the Struct is created.
func WithTranscoder(letter byte, cd codec.Codec) Option {
	return func(c *config) {
		if letter < 'a' || letter > 'z' || token.IsReservedLetter(letter) {
			c.err = errs.Schema("", "letter %q cannot name a transcoder", letter)
			return
		}
		if cd == nil {
			c.err = errs.Schema("", "transcoder %q is nil", letter)
			return
		}
		c.transcoders[letter] = cd
	}
}

// WithTypes registers named Models usable in place of a token, also with a
// length (`Point[u8]`) or under a length field name.
func WithTypes(types map[string]any) Option {
	return func(c *config) {
		if c.types == nil {
			c.types = make(map[string]any, len(types))
		}
		maps.Copy(c.types, types)
	}
}

// WithParser shares a token parser, and its cache, between Structs.
func WithParser(p *token.Parser) Option {
	return func(c *config) {
		if p != nil {
			c.parser = p
		}
	}
}
