package token

// Kind is the wire kind of a resolved type token.
type Kind uint8

const (
	Invalid Kind = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Text
	Bytes
	Transcoded
)

// Special classifies kinds that need length handling beyond a scalar width.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialText
	SpecialBuffer
	SpecialTranscoded
)

const (
	LetterText   byte = 's'
	LetterBytes  byte = 'b'
	LetterJSON   byte = 'j'
	letterUint   byte = 'u'
	letterInt    byte = 'i'
	letterFloat  byte = 'f'
)

var numericTokens = map[string]Kind{
	"u8":  Uint8,
	"u16": Uint16,
	"u32": Uint32,
	"u64": Uint64,
	"i8":  Int8,
	"i16": Int16,
	"i32": Int32,
	"i64": Int64,
	"f32": Float32,
	"f64": Float64,
}

var kindNames = [...]string{
	Invalid:    "invalid",
	Uint8:      "u8",
	Uint16:     "u16",
	Uint32:     "u32",
	Uint64:     "u64",
	Int8:       "i8",
	Int16:      "i16",
	Int32:      "i32",
	Int64:      "i64",
	Float32:    "f32",
	Float64:    "f64",
	Text:       "s",
	Bytes:      "b",
	Transcoded: "transcoded",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[Invalid]
}

// Width is the fixed byte width of a numeric kind, 0 for everything else.
func (k Kind) Width() int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	default:
		return 0
	}
}

func (k Kind) IsNumeric() bool {
	return k >= Uint8 && k <= Float64
}

func (k Kind) IsInteger() bool {
	return k >= Uint8 && k <= Int64
}

func (k Kind) IsSigned() bool {
	return k >= Int8 && k <= Int64
}

func (k Kind) Special() Special {
	switch k {
	case Text:
		return SpecialText
	case Bytes:
		return SpecialBuffer
	case Transcoded:
		return SpecialTranscoded
	default:
		return SpecialNone
	}
}

// IsReservedLetter reports whether letter starts a built-in token and so
// cannot name a transcoder.
func IsReservedLetter(letter byte) bool {
	switch letter {
	case letterUint, letterInt, letterFloat, LetterText, LetterBytes:
		return true
	default:
		return false
	}
}
