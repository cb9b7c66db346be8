package chip8

// Registers is the register file. VF doubles as the carry, borrow and
// collision flag.
type Registers struct {
	V  [16]uint8 // V0..VF
	I  uint16    // index
	DT uint8     // delay timer
	ST uint8     // sound timer
	PC uint16    // program counter
}

func (r *Registers) reset() {
	*r = Registers{PC: ProgramOffset}
}

// setFlag writes VF. Callers read every operand before calling it.
func (r *Registers) setFlag(b bool) {
	if b {
		r.V[0xf] = 1
	} else {
		r.V[0xf] = 0
	}
}
