package machine

import "errors"

// Errors returned by the machine. They are wrapped with the offending values,
// use errors.Is to test for them.
var (
	// ErrAddressOutOfRange is returned when an address resolves outside the
	// window permitted for the operation.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrAddressValueIsNotEven is returned when an instruction aligned
	// operation receives an odd address.
	ErrAddressValueIsNotEven = errors.New("address value is not even")
	// ErrProgramCounterOutOfRange is returned when the program counter has
	// left the addressable memory.
	ErrProgramCounterOutOfRange = errors.New("program counter out of range")
	// ErrStackPointerOutOfRange is returned on stack overflow, underflow or a
	// corrupted stack pointer.
	ErrStackPointerOutOfRange = errors.New("stack pointer out of range")
	// ErrUnsupportedOpcode is returned for instruction words without handler.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
)
