// Package errs is the failure vocabulary shared by the lil-go packages.
//
// A Code is itself an error, so callers can compare with errors.Is against a
// bare code even when it was wrapped with context by Errorf.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies a category of failure.
type Code uint16

const (
	None  Code = 0x000 // No error, continue as normal.
	Retry Code = 0x001 // Operation incomplete, retry.

	Unknown     Code = 0x002 // An unknown error has occurred; system may be unstable.
	KernelPanic Code = 0x003 // Kernel error has occurred; abort operation.

	InvalidArgument Code = 0x004 // Supplied argument violates required preconditions.
	IllegalState    Code = 0x005 // System is in a state that should not be possible.
	InvalidFormat   Code = 0x006 // Format is incorrect.
	EncodeFail      Code = 0x007
	DecodeFail      Code = 0x008

	OperationFailed      Code = 0x009
	OperationTimedOut    Code = 0x00A
	OperationAborted     Code = 0x00B
	OperationUnsupported Code = 0x00C

	OutOfRange      Code = 0x00D // Value or address outside of valid bounds.
	NullPointer     Code = 0x00E
	DataCorrupted   Code = 0x00F // Sentinel or other values do not match expected results.
	BadAlloc        Code = 0x010
	BadAlign        Code = 0x011
	AccessViolation Code = 0x012

	Checksum Code = 0x013
	Parity   Code = 0x014
	NAK      Code = 0x015
	Framing  Code = 0x016
	Noise    Code = 0x017

	ResourceUninitialized Code = 0x018
	ResourceFull          Code = 0x019 // There is no more space for storage.
	ResourceEmpty         Code = 0x01A // There are no items to process.
	ResourceBusy          Code = 0x01B

	DivideByZero  Code = 0x01C
	MathOverflow  Code = 0x01D
	MathUnderflow Code = 0x01E

	TxFail               Code = 0x01F
	RxFail               Code = 0x020
	EndpointUnreachable  Code = 0x021
	CommunicationDropped Code = 0x022

	HandshakeFailed  Code = 0x023
	PermissionDenied Code = 0x024
	KeyRejected      Code = 0x025
	KeyExpired       Code = 0x026

	// Last is one past the last contiguous built-in code.
	Last Code = 0x027

	// UserError is the first code available for application specific errors.
	UserError Code = 0x100
	// Max is the number of codes that may ever be allocated.
	Max Code = 0x200
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case None:
		return "None"
	case Retry:
		return "Retry"
	case Unknown:
		return "Unknown"
	case KernelPanic:
		return "KernelPanic"
	case InvalidArgument:
		return "InvalidArgument"
	case IllegalState:
		return "IllegalState"
	case InvalidFormat:
		return "InvalidFormat"
	case EncodeFail:
		return "EncodeFail"
	case DecodeFail:
		return "DecodeFail"
	case OperationFailed:
		return "OperationFailed"
	case OperationTimedOut:
		return "OperationTimedOut"
	case OperationAborted:
		return "OperationAborted"
	case OperationUnsupported:
		return "OperationUnsupported"
	case OutOfRange:
		return "OutOfRange"
	case NullPointer:
		return "NullPointer"
	case DataCorrupted:
		return "DataCorrupted"
	case BadAlloc:
		return "BadAlloc"
	case BadAlign:
		return "BadAlign"
	case AccessViolation:
		return "AccessViolation"
	case Checksum:
		return "Checksum"
	case Parity:
		return "Parity"
	case NAK:
		return "NAK"
	case Framing:
		return "Framing"
	case Noise:
		return "Noise"
	case ResourceUninitialized:
		return "ResourceUninitialized"
	case ResourceFull:
		return "ResourceFull"
	case ResourceEmpty:
		return "ResourceEmpty"
	case ResourceBusy:
		return "ResourceBusy"
	case DivideByZero:
		return "DivideByZero"
	case MathOverflow:
		return "MathOverflow"
	case MathUnderflow:
		return "MathUnderflow"
	case TxFail:
		return "TxFail"
	case RxFail:
		return "RxFail"
	case EndpointUnreachable:
		return "EndpointUnreachable"
	case CommunicationDropped:
		return "CommunicationDropped"
	case HandshakeFailed:
		return "HandshakeFailed"
	case PermissionDenied:
		return "PermissionDenied"
	case KeyRejected:
		return "KeyRejected"
	case KeyExpired:
		return "KeyExpired"
	}
	if c >= UserError && c < Max {
		return fmt.Sprintf("UserError(%#x)", uint16(c))
	}
	return fmt.Sprintf("Code(%#x)", uint16(c))
}

func (c Code) Error() string {
	return c.String()
}

// Errorf wraps code with a formatted message. The result matches code with errors.Is.
func Errorf(code Code, format string, args ...any) error {
	return fmt.Errorf("%w: %s", code, fmt.Sprintf(format, args...))
}

// Wrap tags err with code and a context message, keeping both in the chain.
func Wrap(code Code, err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", code, msg, err)
}

// CodeOf returns the first Code found in err's chain, None for a nil error and
// Unknown when err carries no Code at all.
func CodeOf(err error) Code {
	if err == nil {
		return None
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Unknown
}
