package types

import (
	"fmt"
)

// =============================================================================
// BLOCK ERRORS
// =============================================================================

// ErrorKind classifies why a block could not be charted.
type ErrorKind int

const (
	// StructuralError covers a missing code element, too few lines or too few
	// columns.
	StructuralError ErrorKind = iota + 1

	// FormatDetectionError means no candidate format matches every key sample.
	FormatDetectionError

	// ValueParseError means a key or value cell failed to coerce.
	ValueParseError
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case StructuralError:
		return "structural"
	case FormatDetectionError:
		return "format-detection"
	case ValueParseError:
		return "value-parse"
	default:
		return "unknown"
	}
}

// BlockError represents a failure local to one block. It never escapes the
// block it belongs to: the document adapter leaves such blocks unmodified.
type BlockError struct {
	// Kind is the error category.
	Kind ErrorKind

	// Line is the 1-indexed line within the block, or 0 when not tied to a line.
	Line int

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *BlockError) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *BlockError) Unwrap() error {
	return e.Err
}

// Structural creates a StructuralError.
func Structural(format string, args ...interface{}) *BlockError {
	return &BlockError{Kind: StructuralError, Message: fmt.Sprintf(format, args...)}
}

// Detection creates a FormatDetectionError.
func Detection(format string, args ...interface{}) *BlockError {
	return &BlockError{Kind: FormatDetectionError, Message: fmt.Sprintf(format, args...)}
}

// ValueParse creates a ValueParseError tied to a line and a cause.
func ValueParse(line int, err error, format string, args ...interface{}) *BlockError {
	return &BlockError{
		Kind:    ValueParseError,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
