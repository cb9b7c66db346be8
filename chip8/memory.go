package chip8

import "fmt"

const (
	MemorySize    = 0x1000
	ProgramOffset = 0x200
	MaxProgram    = MemorySize - ProgramOffset

	FontOffset = 0x100
	FontBytes  = 5
)

var font = [16 * FontBytes]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4K address space. The font lives in the reserved
// region below ProgramOffset.
type Memory [MemorySize]uint8

func (m *Memory) reset() {
	*m = Memory{}
	copy(m[FontOffset:], font[:])
}

// Load copies a program image to ProgramOffset.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgram {
		return fmt.Errorf("%w: %d bytes, %d available", ErrProgramTooLarge, len(program), MaxProgram)
	}
	copy(m[ProgramOffset:], program)
	return nil
}

// Slice returns the n bytes starting at addr, or ErrAddressingFault when the
// range leaves memory.
func (m *Memory) Slice(addr uint16, n int) ([]uint8, error) {
	end := int(addr) + n
	if end > MemorySize {
		return nil, fmt.Errorf("%w: %03X+%d", ErrAddressingFault, addr, n)
	}
	return m[addr:end], nil
}

// Opcode reads the big-endian word at addr.
func (m *Memory) Opcode(addr uint16) (Opcode, error) {
	b, err := m.Slice(addr, 2)
	if err != nil {
		return 0, err
	}
	return Opcode(b[0])<<8 | Opcode(b[1]), nil
}
