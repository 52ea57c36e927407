// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uberspec

import "github.com/gogpu/uberspec/uerrors"

// ErrorKind categorizes errors raised while parsing or optimizing a
// SPIR-V module. It is an alias of uerrors.ErrorKind so that analyzer
// and optimizer, which cannot import this root package without a
// cycle, raise exactly the same type.
type ErrorKind = uerrors.ErrorKind

// Error describes a failure raised while decoding or optimizing a
// SPIR-V module. See uerrors.Error for field documentation.
type Error = uerrors.Error

const (
	ErrTooSmall                = uerrors.ErrTooSmall
	ErrBadMagic                = uerrors.ErrBadMagic
	ErrUnsupportedVersion      = uerrors.ErrUnsupportedVersion
	ErrMalformedWordCount      = uerrors.ErrMalformedWordCount
	ErrUnsupportedOpcode       = uerrors.ErrUnsupportedOpcode
	ErrDuplicateResultID       = uerrors.ErrDuplicateResultID
	ErrUndefinedID             = uerrors.ErrUndefinedID
	ErrInvalidSpecTarget       = uerrors.ErrInvalidSpecTarget
	ErrSpecValueArity          = uerrors.ErrSpecValueArity
	ErrSwitchRewriteImpossible = uerrors.ErrSwitchRewriteImpossible
	ErrResolutionOrder         = uerrors.ErrResolutionOrder
)

// NoID marks an Error field that does not apply to a given error kind.
const NoID = uerrors.NoID

// IsUnsupportedOpcode returns true if err is an *Error of kind ErrUnsupportedOpcode.
func IsUnsupportedOpcode(err error) bool { return uerrors.IsUnsupportedOpcode(err) }

// IsSwitchRewriteImpossible returns true if err is an *Error of kind ErrSwitchRewriteImpossible.
func IsSwitchRewriteImpossible(err error) bool { return uerrors.IsSwitchRewriteImpossible(err) }

// IsSpecValueArity returns true if err is an *Error of kind ErrSpecValueArity.
func IsSpecValueArity(err error) bool { return uerrors.IsSpecValueArity(err) }
