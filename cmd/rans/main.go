// Command rans ranks and unranks strings of a regular language.
//
// The value of a text is its position in the length-lexicographic
// enumeration of the language; the inverse maps a value back to its
// text. The same machinery counts the language and compresses files by
// re-spelling ranks in the universal byte language.
//
//	rans '(ab)*' --value 3        # -> ababab
//	rans '(ab)*' --text ababab    # -> 3
//	rans '[ACGT]+' --compress dna.txt
package main

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/coregx/rans"
)

type options struct {
	patternFile string
	utf8        bool
	syntax      bool
	verbose     bool

	text       string
	value      string
	quickCheck string
	count      int64
	amount     bool
	size       bool
	repl       bool

	compressFile   string
	decompressFile string
	out            string

	convertFrom string
	convertTo   string

	dumpDFA      bool
	dumpMatrix   bool
	dumpExmatrix bool
}

func main() {
	cmd := newRootCommand(afero.NewOsFs())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "rans [flags] REGEX",
		Short:         "abstract numeration system on a regular language",
		Long:          "rans maps the strings of a regular language onto the natural numbers\nand back, in length-lexicographic order.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, &opts, args)
		},
	}

	registerFlags(cmd.Flags(), &opts)
	return cmd
}

func registerFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.patternFile, "file", "f", "", "obtain the pattern from FILE")
	flags.BoolVar(&opts.utf8, "utf8", false, "use utf8 as the pattern encoding")
	flags.BoolVar(&opts.syntax, "syntax", false, "print the regular expression syntax")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "report additional information")

	flags.StringVar(&opts.text, "text", "", "print the value of the given text")
	flags.StringVar(&opts.value, "value", "", "print the text of the given value")
	flags.StringVar(&opts.quickCheck, "quick-check", "", "check whether the given text is acceptable")
	flags.Int64Var(&opts.count, "count", -1, "print the number of acceptable strings of exactly the given length")
	flags.BoolVar(&opts.amount, "amount", false, "print the number of acceptable strings (of length up to --count if set)")
	flags.BoolVar(&opts.size, "size", false, "print the size of the DFA")
	flags.BoolVar(&opts.repl, "repl", false, "read texts from stdin and print value/text round trips")

	flags.StringVar(&opts.compressFile, "compress", "", "compress the given file (creates a '.rans' file by default)")
	flags.StringVar(&opts.decompressFile, "decompress", "", "decompress the given file")
	flags.StringVar(&opts.out, "out", "", "output file name")

	flags.StringVar(&opts.convertFrom, "convert-from", "", "convert --text out of the numeration system of this pattern")
	flags.StringVar(&opts.convertTo, "convert-to", "", "convert --text into the numeration system of this pattern")

	flags.BoolVar(&opts.dumpDFA, "dump-dfa", false, "dump the DFA as dot language")
	flags.BoolVar(&opts.dumpMatrix, "dump-matrix", false, "dump the adjacency matrix")
	flags.BoolVar(&opts.dumpExmatrix, "dump-exmatrix", false, "dump the extended adjacency matrix")
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(cmd *cobra.Command, fs afero.Fs, opts *options, args []string) error {
	logger := newLogger(opts.verbose)
	defer logger.Sync() //nolint:errcheck // best-effort flush on stderr

	if opts.syntax {
		cmd.Print(rans.Syntax)
		return nil
	}

	enc := rans.ASCII
	if opts.utf8 {
		enc = rans.UTF8
	}

	if opts.convertFrom != "" && opts.convertTo != "" {
		return convert(cmd, opts, enc)
	}

	pattern, err := resolvePattern(fs, opts, args)
	if err != nil {
		return err
	}

	sys, err := rans.CompileWithEncoding(pattern, enc)
	if err != nil {
		return err
	}
	logger.Info("compiled pattern",
		zap.String("pattern", pattern),
		zap.Int("dfa_states", sys.Size()),
		zap.Bool("finite", sys.Finite()))

	if opts.dumpDFA {
		if err := sys.DFA().WriteDot(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if opts.dumpMatrix {
		cmd.Print(sys.AdjacencyMatrix().String())
	}
	if opts.dumpExmatrix {
		cmd.Print(sys.ExtendedAdjacencyMatrix().String())
	}

	return dispatch(cmd, fs, opts, sys, logger)
}

// resolvePattern resolves the regex from --file or the positional argument.
func resolvePattern(fs afero.Fs, opts *options, args []string) (string, error) {
	if opts.patternFile != "" {
		data, err := afero.ReadFile(fs, opts.patternFile)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("no pattern given (positional REGEX or --file)")
}

func dispatch(cmd *cobra.Command, fs afero.Fs, opts *options, sys *rans.System, logger *zap.Logger) error {
	switch {
	case opts.amount:
		if opts.count < 0 {
			if sys.Finite() {
				cmd.Println(sys.Amount())
			} else {
				cmd.Println("there exists infinite acceptable strings.")
			}
		} else {
			cmd.Println(sys.AmountUpTo(int(opts.count)))
		}

	case opts.count >= 0:
		cmd.Println(sys.Count(int(opts.count)))

	case opts.quickCheck != "":
		if sys.Accept([]byte(opts.quickCheck)) {
			cmd.Println("text is acceptable.")
		} else {
			cmd.Println("text is not acceptable.")
		}

	case opts.compressFile != "":
		return transformFile(fs, logger, opts.compressFile, compressOut(opts), sys.Compress)

	case opts.decompressFile != "":
		out := opts.out
		if out == "" {
			out = strings.TrimSuffix(opts.decompressFile, ".rans")
			if out == opts.decompressFile {
				return fmt.Errorf("%s does not end in .rans: use --out", opts.decompressFile)
			}
		}
		return transformFile(fs, logger, opts.decompressFile, out, sys.Decompress)

	case opts.size:
		cmd.Printf("size of DFA: %d\n", sys.Size())

	case opts.value != "":
		value, ok := new(big.Int).SetString(opts.value, 10)
		if !ok {
			return fmt.Errorf("invalid value %q", opts.value)
		}
		text, err := sys.Rep(value)
		if err != nil {
			return err
		}
		cmd.Println(string(text))

	case opts.text != "":
		value, err := sys.Val([]byte(opts.text))
		if err != nil {
			return err
		}
		cmd.Println(value)

	case opts.repl:
		return repl(cmd, sys)
	}

	return nil
}

func compressOut(opts *options) string {
	if opts.out != "" {
		return opts.out
	}
	return opts.compressFile + ".rans"
}

// transformFile reads src, pushes it through the rank transform and
// writes the result to dst.
func transformFile(fs afero.Fs, logger *zap.Logger, src, dst string, transform func([]byte) ([]byte, error)) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}

	out, err := transform(data)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, dst, out, 0o644); err != nil {
		return err
	}
	logger.Info("wrote transform",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.Int("in_bytes", len(data)),
		zap.Int("out_bytes", len(out)))
	return nil
}

// convert re-spells --text from one numeration system into another.
func convert(cmd *cobra.Command, opts *options, enc rans.Encoding) error {
	from, err := rans.CompileWithEncoding(opts.convertFrom, enc)
	if err != nil {
		return err
	}
	to, err := rans.CompileWithEncoding(opts.convertTo, enc)
	if err != nil {
		return err
	}

	if opts.text == "" {
		return fmt.Errorf("--convert-from/--convert-to need --text")
	}

	value, err := from.Val([]byte(opts.text))
	if err != nil {
		return err
	}
	text, err := to.Rep(value)
	if err != nil {
		return err
	}
	cmd.Println(string(text))
	return nil
}

// repl reads one text per line and echoes its value and the value's
// text, so a round trip is visible at a glance.
func repl(cmd *cobra.Command, sys *rans.System) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		value, err := sys.Val(scanner.Bytes())
		if err != nil {
			cmd.Println(err)
			continue
		}
		cmd.Println(value)
		text, err := sys.Rep(value)
		if err != nil {
			cmd.Println(err)
			continue
		}
		cmd.Println(string(text))
	}
	return scanner.Err()
}
