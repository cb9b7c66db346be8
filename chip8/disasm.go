package chip8

import "fmt"

// Disassemble renders an opcode as assembler text.
func Disassemble(op Opcode) string {
	inst := Decode(op)
	x, y := op.X(), op.Y()

	switch inst {
	case OpCLS, OpRET, OpUnknown:
		return inst.String()
	case OpJP, OpCALL:
		return fmt.Sprintf("%-4s #%03X", inst, op.NNN())
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("%-4s V%X, #%02X", inst, x, op.KK())
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%-4s V%X, V%X", inst, x, y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("%-4s V%X", inst, x)
	case OpLDI:
		return fmt.Sprintf("%-4s I, #%03X", inst, op.NNN())
	case OpJPV0:
		return fmt.Sprintf("%-4s V0, #%03X", inst, op.NNN())
	case OpDRW:
		return fmt.Sprintf("%-4s V%X, V%X, %d", inst, x, y, op.N())
	case OpLDVxDT:
		return fmt.Sprintf("%-4s V%X, DT", inst, x)
	case OpLDVxK:
		return fmt.Sprintf("%-4s V%X, K", inst, x)
	case OpLDDTVx:
		return fmt.Sprintf("%-4s DT, V%X", inst, x)
	case OpLDSTVx:
		return fmt.Sprintf("%-4s ST, V%X", inst, x)
	case OpADDI:
		return fmt.Sprintf("%-4s I, V%X", inst, x)
	case OpLDF:
		return fmt.Sprintf("%-4s F, V%X", inst, x)
	case OpLDB:
		return fmt.Sprintf("%-4s B, V%X", inst, x)
	case OpLDIVx:
		return fmt.Sprintf("%-4s [I], V%X", inst, x)
	case OpLDVxI:
		return fmt.Sprintf("%-4s V%X, [I]", inst, x)
	}
	return inst.String()
}
