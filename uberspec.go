// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package uberspec parses SPIR-V shader modules and specializes them
// against concrete specialization-constant values: patching, constant
// folding, terminator folding, dead-code elimination, and
// serialization back to a binary module.
//
// Example usage:
//
//	parsed, err := uberspec.Parse(spirvWords)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	optimized, err := uberspec.Optimize(parsed, []uberspec.SpecValue{
//	    {SpecID: 0, Values: []uint32{1}},
//	}, uberspec.Options{})
package uberspec

import (
	"github.com/gogpu/uberspec/analyzer"
	"github.com/gogpu/uberspec/optimizer"
)

// SpecConstantInfo describes one enumerated specialization constant.
// It aliases analyzer.SpecConstantInfo so that callers of
// ParsedShader.SpecConstants() never need to import analyzer directly.
type SpecConstantInfo = analyzer.SpecConstantInfo

// SpecValue is one caller-provided specialization assignment, passed
// to Optimize.
type SpecValue = optimizer.SpecValue

// Options configures a single Optimize call.
type Options = optimizer.Options

// Parse decodes a SPIR-V module, builds its dependency graph and
// degree vectors, and produces a topological order for the
// optimization pass, returning the reusable ParsedShader. A parsed
// shader is immutable and safe to Optimize concurrently any number of
// times with different spec values.
func Parse(words []byte) (*analyzer.ParsedShader, error) {
	return analyzer.Parse(words)
}

// Optimize specializes a parsed module against values: patching
// specialization constants, folding constants and terminators,
// sweeping dead code, and serializing the result. It never mutates p.
func Optimize(p *analyzer.ParsedShader, values []SpecValue, opts Options) ([]byte, error) {
	return optimizer.Run(p, values, opts)
}
