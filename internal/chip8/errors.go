package chip8

import "fmt"

// DecodeError is returned when an opcode does not match any recognized
// instruction pattern.
type DecodeError struct {
	Opcode uint16
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("unsupported opcode $%04X", e.Opcode)
}

// StackFault is returned when a call exceeds the stack capacity or a
// return executes with an empty stack.
type StackFault struct {
	PC       uint16
	Overflow bool
}

func (e StackFault) Error() string {
	if e.Overflow {
		return fmt.Sprintf("stack overflow: call at $%03X exceeds depth %d", e.PC, stackDepth)
	}
	return fmt.Sprintf("stack underflow: return at $%03X with empty stack", e.PC)
}

// LoadError is returned when a program image does not fit into the
// available program space.
type LoadError struct {
	Size int
}

func (e LoadError) Error() string {
	return fmt.Sprintf("program image of %d bytes exceeds %d bytes of program space", e.Size, MaxProgramSize)
}
