package chip8

// execute applies one decoded instruction to the machine state. It
// returns a display frame for the instructions that change the display
// (clear and draw) and nil for all others. Register and memory indices
// derived from instruction fields are bounded by construction (4-bit
// register index, 12-bit address), so only the call stack needs explicit
// bounds checks.
//
//nolint:funlen,cyclop // one case per instruction
func (c *ChipState) execute(ins Instruction, keys *Keys) (*Display, error) {
	switch ins.Op {
	case Nop:

	case Cls:
		c.display = Display{}
		return c.frame(), nil

	case Ret:
		if c.pointer == 0 {
			return nil, StackFault{PC: c.currentPC()}
		}
		c.pointer--
		c.pc = c.stack[c.pointer]

	case Jump:
		c.pc = ins.NNN

	case Call:
		if c.pointer == stackDepth {
			return nil, StackFault{PC: c.currentPC(), Overflow: true}
		}
		c.stack[c.pointer] = c.pc
		c.pointer++
		c.pc = ins.NNN

	case SkipEqByte:
		if c.registers[ins.X] == ins.NN {
			c.advancePC()
		}

	case SkipNeByte:
		if c.registers[ins.X] != ins.NN {
			c.advancePC()
		}

	case SkipEqReg:
		if c.registers[ins.X] == c.registers[ins.Y] {
			c.advancePC()
		}

	case SkipNeReg:
		if c.registers[ins.X] != c.registers[ins.Y] {
			c.advancePC()
		}

	case LoadByte:
		c.registers[ins.X] = ins.NN

	case AddByte:
		c.registers[ins.X] += ins.NN // wrapping, no flag

	case LoadReg:
		c.registers[ins.X] = c.registers[ins.Y]

	case Or:
		c.registers[ins.X] |= c.registers[ins.Y]

	case And:
		c.registers[ins.X] &= c.registers[ins.Y]

	case Xor:
		c.registers[ins.X] ^= c.registers[ins.Y]

	case AddReg:
		sum := uint16(c.registers[ins.X]) + uint16(c.registers[ins.Y])
		c.registers[ins.X] = uint8(sum)
		c.setFlag(sum > 0xFF)

	case Sub:
		noBorrow := c.registers[ins.X] >= c.registers[ins.Y]
		c.registers[ins.X] -= c.registers[ins.Y]
		c.setFlag(noBorrow)

	case Subn:
		noBorrow := c.registers[ins.Y] >= c.registers[ins.X]
		c.registers[ins.X] = c.registers[ins.Y] - c.registers[ins.X]
		c.setFlag(noBorrow)

	case Shr:
		if c.legacyShift {
			c.registers[ins.X] = c.registers[ins.Y]
		}
		low := c.registers[ins.X] & 0x01
		c.registers[ins.X] >>= 1
		c.registers[flagRegister] = low

	case Shl:
		if c.legacyShift {
			c.registers[ins.X] = c.registers[ins.Y]
		}
		high := c.registers[ins.X] >> 7
		c.registers[ins.X] <<= 1
		c.registers[flagRegister] = high

	case LoadIndex:
		c.index = ins.NNN

	case JumpV0:
		c.pc = (ins.NNN + uint16(c.registers[0])) & addressMask

	case Random:
		c.registers[ins.X] = c.random() & ins.NN

	case Draw:
		c.draw(ins.X, ins.Y, ins.N)
		return c.frame(), nil

	case SkipKey:
		if keys[c.registers[ins.X]&0x0F] {
			c.advancePC()
		}

	case SkipNoKey:
		if !keys[c.registers[ins.X]&0x0F] {
			c.advancePC()
		}

	case LoadDelay:
		c.registers[ins.X] = c.delayTimer

	case WaitKey:
		c.waitKey(ins.X, keys)

	case SetDelay:
		c.delayTimer = c.registers[ins.X]

	case SetSound:
		c.soundTimer = c.registers[ins.X]

	case AddIndex:
		c.index = (c.index + uint16(c.registers[ins.X])) & addressMask

	case LoadFont:
		c.index = fontBase + 5*uint16(c.registers[ins.X]&0x0F)

	case StoreBCD:
		v := c.registers[ins.X]
		c.memory[c.index] = v / 100
		c.memory[(c.index+1)&addressMask] = v % 100 / 10
		c.memory[(c.index+2)&addressMask] = v % 10

	case StoreRegs:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			c.memory[(c.index+r)&addressMask] = c.registers[r]
		}

	case LoadRegs:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			c.registers[r] = c.memory[(c.index+r)&addressMask]
		}
	}

	return nil, nil
}

// draw XORs an n-byte sprite from memory at the index register onto the
// display at (Vx mod 64, Vy mod 32). Each sprite byte is one row of 8
// pixels, most significant bit first. VF is set to 1 if any set pixel is
// cleared by the XOR, 0 otherwise. Rows and columns extending past the
// display edge are clipped, not wrapped.
func (c *ChipState) draw(x, y, n uint8) {
	c.registers[flagRegister] = 0
	if n > 15 {
		n = 15
	}

	originX := c.registers[x] % DisplayWidth
	originY := c.registers[y] % DisplayHeight

	for row := uint8(0); row < n; row++ {
		py := originY + row
		if py >= DisplayHeight {
			break
		}
		sprite := c.memory[(c.index+uint16(row))&addressMask]

		for bit := uint8(0); bit < 8; bit++ {
			px := originX + bit
			if px >= DisplayWidth {
				break
			}
			pixel := sprite >> (7 - bit) & 0x01
			if pixel&c.display[py][px] == 1 {
				c.registers[flagRegister] = 1
			}
			c.display[py][px] ^= pixel
		}
	}
}

// waitKey implements the key-wait instruction as a busy-poll: with no
// key pressed it rewinds the program counter so the same instruction
// re-executes on the next cycle. The stall is purely a state transition,
// there is no blocking and no separate waiting mode.
func (c *ChipState) waitKey(x uint8, keys *Keys) {
	for key, pressed := range keys {
		if pressed {
			c.registers[x] = uint8(key)
			return
		}
	}
	c.rewindPC()
}

// frame returns a snapshot of the display, decoupled from further
// machine mutation.
func (c *ChipState) frame() *Display {
	frame := c.display
	return &frame
}

// currentPC returns the address of the instruction being executed. The
// program counter has already advanced past it during fetch.
func (c *ChipState) currentPC() uint16 {
	return (c.pc - 2) & addressMask
}

func (c *ChipState) setFlag(set bool) {
	if set {
		c.registers[flagRegister] = 1
	} else {
		c.registers[flagRegister] = 0
	}
}
