package chip8

// Opcode is a raw 16-bit instruction word.
type Opcode uint16

func (op Opcode) Family() uint8 { return uint8(op >> 12) }
func (op Opcode) X() uint8      { return uint8(op>>8) & 0x0f }
func (op Opcode) Y() uint8      { return uint8(op>>4) & 0x0f }
func (op Opcode) N() uint8      { return uint8(op) & 0x0f }
func (op Opcode) KK() uint8     { return uint8(op) }
func (op Opcode) NNN() uint16   { return uint16(op) & 0x0fff }

// Instruction is a decoded operation. Operands stay in the opcode.
type Instruction uint8

// CHIP-8 instructions.
const (
	OpUnknown Instruction = iota
	OpCLS                 // 00E0
	OpRET                 // 00EE
	OpJP                  // 1nnn
	OpCALL                // 2nnn
	OpSEImm               // 3xkk
	OpSNEImm              // 4xkk
	OpSEReg               // 5xy0
	OpLDImm               // 6xkk
	OpADDImm              // 7xkk
	OpLDReg               // 8xy0
	OpOR                  // 8xy1
	OpAND                 // 8xy2
	OpXOR                 // 8xy3
	OpADDReg              // 8xy4
	OpSUB                 // 8xy5
	OpSHR                 // 8xy6
	OpSUBN                // 8xy7
	OpSHL                 // 8xyE
	OpSNEReg              // 9xy0
	OpLDI                 // Annn
	OpJPV0                // Bnnn
	OpRND                 // Cxkk
	OpDRW                 // Dxyn
	OpSKP                 // Ex9E
	OpSKNP                // ExA1
	OpLDVxDT              // Fx07
	OpLDVxK               // Fx0A
	OpLDDTVx              // Fx15
	OpLDSTVx              // Fx18
	OpADDI                // Fx1E
	OpLDF                 // Fx29
	OpLDB                 // Fx33
	OpLDIVx               // Fx55
	OpLDVxI               // Fx65

	numInstructions
)

var instructionNames = [numInstructions]string{
	OpUnknown: "??",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

// String returns the assembler mnemonic.
func (i Instruction) String() string {
	if i >= numInstructions {
		return instructionNames[OpUnknown]
	}
	return instructionNames[i]
}
