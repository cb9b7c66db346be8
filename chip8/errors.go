package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrAddressingFault = errors.New("addressing fault")
	ErrProgramTooLarge = errors.New("program too large")

	// ErrHalted is returned by Step once the machine fetched the all-zero
	// opcode. It is not a fault.
	ErrHalted = errors.New("halted")
)

// Fault is a failed cycle. PC is the address of the faulting instruction.
type Fault struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%03X-%04X: %v", f.PC, uint16(f.Opcode), f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
