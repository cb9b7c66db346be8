package chip8

func (c *Chip8) skipIf(b bool) {
	if b {
		c.reg.PC += 2
	}
}

// execOpcode applies op to the machine. PC already points past op. On error
// nothing has been modified.
func (c *Chip8) execOpcode(op Opcode) error {
	v := &c.reg.V
	x, y := op.X(), op.Y()
	kk, nnn := op.KK(), op.NNN()

	switch Decode(op) {
	case OpCLS: // 00E0 clear display
		c.disp.Clear()

	case OpRET: // 00EE return from subroutine
		r, err := c.stack.Pop()
		if err != nil {
			return err
		}
		c.reg.PC = r

	case OpJP: // 1NNN goto NNN
		c.reg.PC = nnn

	case OpCALL: // 2NNN call NNN
		if err := c.stack.Push(c.reg.PC); err != nil {
			return err
		}
		c.reg.PC = nnn

	case OpSEImm: // 3XNN if(Vx==NN)
		c.skipIf(v[x] == kk)

	case OpSNEImm: // 4XNN if(Vx!=NN)
		c.skipIf(v[x] != kk)

	case OpSEReg: // 5XY0 if(Vx==Vy)
		c.skipIf(v[x] == v[y])

	case OpLDImm: // 6XNN Vx = NN
		v[x] = kk

	case OpADDImm: // 7XNN Vx += NN, VF untouched
		v[x] += kk

	case OpLDReg: // 8XY0 Vx=Vy
		v[x] = v[y]

	case OpOR: // 8XY1 Vx=Vx|Vy
		v[x] |= v[y]

	case OpAND: // 8XY2 Vx=Vx&Vy
		v[x] &= v[y]

	case OpXOR: // 8XY3 Vx=Vx^Vy
		v[x] ^= v[y]

	case OpADDReg: // 8XY4 Vx += Vy
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		c.reg.setFlag(sum > 0xff)

	case OpSUB: // 8XY5 Vx -= Vy
		noBorrow := v[x] > v[y]
		v[x] -= v[y]
		c.reg.setFlag(noBorrow)

	case OpSHR: // 8XY6 Vx>>=1
		lsb := v[x]&0x01 == 1
		v[x] >>= 1
		c.reg.setFlag(lsb)

	case OpSUBN: // 8XY7 Vx=Vy-Vx
		noBorrow := v[y] > v[x]
		v[x] = v[y] - v[x]
		c.reg.setFlag(noBorrow)

	case OpSHL: // 8XYE Vx<<=1
		msb := v[x]>>7 == 1
		v[x] <<= 1
		c.reg.setFlag(msb)

	case OpSNEReg: // 9XY0 if(Vx!=Vy)
		c.skipIf(v[x] != v[y])

	case OpLDI: // ANNN I = NNN
		c.reg.I = nnn

	case OpJPV0: // BNNN PC=V0+NNN
		c.reg.PC = nnn + uint16(v[0])

	case OpRND: // CXNN Vx=rand()&NN
		v[x] = uint8(c.rand.Uint32()) & kk

	case OpDRW: // DXYN draw(Vx,Vy,N)
		sprite, err := c.mem.Slice(c.reg.I, int(op.N()))
		if err != nil {
			return err
		}
		collision := c.disp.Draw(v[x], v[y], sprite)
		c.reg.setFlag(collision)

	case OpSKP: // EX9E if(key()==Vx)
		c.skipIf(c.keys.Pressed(v[x]))

	case OpSKNP: // EXA1 if(key()!=Vx)
		c.skipIf(!c.keys.Pressed(v[x]))

	case OpLDVxDT: // FX07 Vx = get_delay()
		v[x] = c.reg.DT

	case OpLDVxK: // FX0A Vx = get_key()
		if !c.waiting {
			// only presses after the wait starts count
			c.keys.KeyPress()
		}
		key, ok := c.keys.KeyPress()
		if !ok {
			// re-issue until a key arrives
			c.waiting = true
			c.reg.PC -= 2
			return nil
		}
		c.waiting = false
		v[x] = key

	case OpLDDTVx: // FX15 delay_timer(Vx)
		c.reg.DT = v[x]

	case OpLDSTVx: // FX18 sound_timer(Vx)
		c.reg.ST = v[x]

	case OpADDI: // FX1E I +=Vx
		c.reg.I += uint16(v[x])

	case OpLDF: // FX29 I=sprite_addr[Vx]
		c.reg.I = FontOffset + uint16(v[x]&0x0f)*FontBytes

	case OpLDB: // FX33 set_BCD(Vx)
		m, err := c.mem.Slice(c.reg.I, 3)
		if err != nil {
			return err
		}
		m[0] = v[x] / 100
		m[1] = (v[x] % 100) / 10
		m[2] = v[x] % 10

	case OpLDIVx: // FX55 reg_dump(Vx,&I)
		m, err := c.mem.Slice(c.reg.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(m, v[:x+1])

	case OpLDVxI: // FX65 reg_load(Vx,&I)
		m, err := c.mem.Slice(c.reg.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(v[:x+1], m)

	case OpUnknown:
		// data mistaken for code, skipped
	}
	return nil
}
