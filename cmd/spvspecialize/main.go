// Command spvspecialize patches specialization constants into a SPIR-V
// module and runs the constant-folding, terminator-folding, and
// dead-code elimination passes over the result.
//
// Usage:
//
//	spvspecialize --spec 0=1 --spec 3=0xA,0xB -o out.spv in.spv
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/uberspec"
)

var (
	output            string
	specFlags         []string
	stripDebug        bool
	listSpecConstants bool
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut *os.File) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "spvspecialize [flags] <input.spv>",
		Short:         "Specialize a SPIR-V module against concrete spec-constant values",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpecialize(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().StringArrayVar(&specFlags, "spec", nil, "repeatable: SpecId=v0[,v1,...] (decimal or 0x-hex uint32)")
	rootCmd.Flags().BoolVar(&stripDebug, "strip-debug", false, "strip OpSource/OpName/OpMemberName")
	rootCmd.Flags().BoolVar(&listSpecConstants, "list-spec-constants", false, "print SpecConstants() as a table and exit")

	return rootCmd
}

func runSpecialize(inputPath string, out, errOut *os.File) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("spvspecialize: reading %s: %w", inputPath, err)
	}

	parsed, err := uberspec.Parse(data)
	if err != nil {
		return fmt.Errorf("spvspecialize: parsing %s: %w", inputPath, err)
	}

	if listSpecConstants {
		printSpecConstants(out, parsed.SpecConstants())
		return nil
	}

	values, err := parseSpecFlags(specFlags)
	if err != nil {
		return fmt.Errorf("spvspecialize: %w", err)
	}

	result, err := uberspec.Optimize(parsed, values, uberspec.Options{
		StripDebugInstructions: stripDebug,
	})
	if err != nil {
		return fmt.Errorf("spvspecialize: optimizing %s: %w", inputPath, err)
	}

	if output == "" {
		_, err = out.Write(result)
		return err
	}
	if err := os.WriteFile(output, result, 0o644); err != nil {
		return fmt.Errorf("spvspecialize: writing %s: %w", output, err)
	}
	fmt.Fprintf(errOut, "spvspecialize: wrote %s (%d bytes)\n", output, len(result))
	return nil
}

func printSpecConstants(out *os.File, consts []uberspec.SpecConstantInfo) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SpecId\tDefault")
	for _, c := range consts {
		fmt.Fprintf(w, "%d\t%v\n", c.SpecID, c.Default)
	}
	w.Flush()
}

// parseSpecFlags converts repeated --spec SpecId=v0[,v1,...] flags into
// optimizer.SpecValue entries. Each literal is a decimal or 0x-prefixed
// hex uint32.
func parseSpecFlags(flags []string) ([]uberspec.SpecValue, error) {
	values := make([]uberspec.SpecValue, 0, len(flags))
	for _, f := range flags {
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			return nil, fmt.Errorf("--spec %q: expected SpecId=v0[,v1,...]", f)
		}
		specID, err := parseUint32Literal(f[:eq])
		if err != nil {
			return nil, fmt.Errorf("--spec %q: invalid SpecId: %w", f, err)
		}
		parts := strings.Split(f[eq+1:], ",")
		words := make([]uint32, 0, len(parts))
		for _, p := range parts {
			v, err := parseUint32Literal(p)
			if err != nil {
				return nil, fmt.Errorf("--spec %q: invalid value %q: %w", f, p, err)
			}
			words = append(words, v)
		}
		values = append(values, uberspec.SpecValue{SpecID: specID, Values: words})
	}
	return values, nil
}

func parseUint32Literal(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
