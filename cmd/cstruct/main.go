package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pwnedgod/cstruct"
	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/codec/cbor"
	"github.com/pwnedgod/cstruct/codec/msgpack"
	zaplogger "github.com/pwnedgod/cstruct/logger/zap"
	"github.com/pwnedgod/cstruct/model"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage:
  cstruct decode --schema FILE [--endian be|le] [--offset N] [--trace] [--input FILE | HEX]
  cstruct encode --schema FILE [--endian be|le] [--trace] [--output FILE] JSON

Schemas are YAML or JSON. Besides a bare model, a schema file may hold
"model", "types" and "endian" keys. Transcoded kinds: j (JSON), m (msgpack), c (CBOR).
`

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

type options struct {
	schema  string
	endian  string
	offset  int
	trace   bool
	input   string
	output  string
	verbose bool
}

func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd := args[0]
	opts := options{}
	fl := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.StringVarP(&opts.schema, "schema", "s", "", "Path to the schema file")
	fl.StringVarP(&opts.endian, "endian", "e", "", "Byte order, be or le; overrides the schema file")
	fl.BoolVarP(&opts.trace, "trace", "t", false, "Print the atom trace")
	fl.BoolVar(&opts.verbose, "verbose", false, "Log debug information to stderr")
	switch cmd {
	case "decode":
		fl.IntVarP(&opts.offset, "offset", "o", 0, "Offset to start decoding at")
		fl.StringVarP(&opts.input, "input", "i", "", "Read raw bytes from a file instead of a hex argument")
	case "encode":
		fl.StringVarP(&opts.output, "output", "O", "", "Write raw bytes to a file instead of printing hex")
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
	if err := fl.Parse(args[1:]); err != nil {
		return 2
	}
	if opts.schema == "" {
		fmt.Fprintln(stderr, "--schema is required")
		return 2
	}

	logger := newLogger(stderr, opts.verbose)
	defer logger.Sync()
	log := logger.Sugar()

	st, err := loadStruct(fs, opts, logger)
	if err != nil {
		log.Errorf("Failed to load schema '%s': %s", opts.schema, err)
		return 1
	}

	if cmd == "decode" {
		err = decode(fs, st, opts, fl.Args(), stdout)
	} else {
		err = encode(fs, st, opts, fl.Args(), stdout)
	}
	if err != nil {
		log.Errorf("Failed to %s: %s", cmd, err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	al := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), al))
}

func loadStruct(fs afero.Fs, opts options, logger *zap.Logger) (cstruct.Struct, error) {
	data, err := afero.ReadFile(fs, opts.schema)
	if err != nil {
		return nil, err
	}
	doc, err := model.LoadDocument(data)
	if err != nil {
		return nil, err
	}

	endianName := doc.Endian
	if opts.endian != "" {
		endianName = opts.endian
	}
	endian := buffer.BigEndian
	if endianName != "" {
		if endian, err = buffer.ParseEndian(endianName); err != nil {
			return nil, err
		}
	}

	cborCodec, err := cbor.NewCodec()
	if err != nil {
		return nil, err
	}
	return cstruct.New(doc.Model,
		cstruct.WithEndian(endian),
		cstruct.WithTypes(doc.Types),
		cstruct.WithTranscoder('m', msgpack.NewCodec()),
		cstruct.WithTranscoder('c', cborCodec),
		cstruct.WithLogger(zaplogger.NewLogger(logger)),
	)
}

type decodeOutput struct {
	Value  any      `json:"value"`
	Offset int      `json:"offset"`
	Size   int      `json:"size"`
	Atoms  []string `json:"atoms,omitempty"`
}

func decode(fs afero.Fs, st cstruct.Struct, opts options, args []string, stdout io.Writer) error {
	var buf []byte
	var err error
	switch {
	case opts.input != "":
		buf, err = afero.ReadFile(fs, opts.input)
	case len(args) > 0:
		buf, err = hex.DecodeString(strings.Join(strings.Fields(strings.Join(args, "")), ""))
	default:
		err = errors.New("no input, pass HEX or --input")
	}
	if err != nil {
		return err
	}

	res, err := st.Read(buf, opts.offset)
	if err != nil {
		return err
	}
	out := decodeOutput{Value: res.Value, Offset: res.Offset, Size: res.Size}
	if opts.trace {
		out.Atoms = res.Atoms()
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func encode(fs afero.Fs, st cstruct.Struct, opts options, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("expected exactly one JSON value")
	}
	var value any
	if err := json.Unmarshal([]byte(args[0]), &value); err != nil {
		return errors.Wrap(err, "malformed JSON value")
	}

	res, err := st.Make(value)
	if err != nil {
		return err
	}
	if opts.trace {
		for _, atom := range res.Atoms() {
			fmt.Fprintln(stdout, atom)
		}
	}
	if opts.output != "" {
		return afero.WriteFile(fs, opts.output, res.Buffer, 0o644)
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(res.Buffer))
	return err
}
