// Command spv-inspect is a debug aid over a parsed SPIR-V module's
// analysis structures: the decoded instruction stream, the in/out
// degree vectors, and the specialization table. It is adapted from
// the disassembler cmd/spvdis once shipped alongside this module's
// teacher, trimmed down to the structures this package actually
// builds rather than a full per-opcode operand disassembly.
//
// Usage:
//
//	spv-inspect shader.spv
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gogpu/uberspec"
	"github.com/gogpu/uberspec/analyzer"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: spv-inspect <input.spv>")
		return 1
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spv-inspect: reading %s: %v\n", os.Args[1], err)
		return 1
	}

	parsed, err := uberspec.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spv-inspect: parsing %s: %v\n", os.Args[1], err)
		return 1
	}

	printHeader(parsed.Header)
	printInstructions(parsed)
	printSpecConstants(parsed)
	return 0
}

func printHeader(h analyzer.Header) {
	fmt.Printf("Version:   0x%08x\n", h.Version)
	fmt.Printf("Generator: 0x%08x\n", h.Generator)
	fmt.Printf("Bound:     %d\n", h.IDBound)
	fmt.Println()
}

func printInstructions(p *analyzer.ParsedShader) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tOpcode\tWords\tInDeg\tOutDeg")
	for i, instr := range p.Instrs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i, instr.Opcode.Name(), instr.WordCount, p.InDegree[i], p.OutDegree[i])
	}
	w.Flush()
	fmt.Println()
}

func printSpecConstants(p *analyzer.ParsedShader) {
	consts := p.SpecConstants()
	if len(consts) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SpecId\tDefault")
	for _, c := range consts {
		fmt.Fprintf(w, "%d\t%v\n", c.SpecID, c.Default)
	}
	w.Flush()
}
