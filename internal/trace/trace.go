// Package trace formats executed CHIP-8 instructions as assembler-style
// text for debug logging.
package trace

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns assembler-style text for an opcode, for example
// "ld V1, $0A". Opcodes that do not decode to an instruction are
// rendered as raw data words.
func Format(opcode uint16) string {
	ins := lookup(opcode)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	params := formatParams(ins, opcode)
	if params == "" {
		return ins.Name
	}
	return fmt.Sprintf("%s %s", ins.Name, params)
}

// lookup matches an opcode against the instruction set metadata.
func lookup(opcode uint16) *chip8.Instruction {
	firstNibble := int(opcode >> 12)
	for _, op := range chip8.Opcodes[firstNibble] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// formatParams formats the instruction operands.
func formatParams(ins *chip8.Instruction, opcode uint16) string {
	switch ins {
	case chip8.ClsInst, chip8.RetInst:
		return ""
	case chip8.JpInst:
		return formatJump(opcode)
	case chip8.CallInst:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeInst, chip8.SneInst:
		return formatCompare(opcode)
	case chip8.LdInst:
		return formatLoad(opcode)
	case chip8.AddInst:
		return formatAdd(opcode)
	case chip8.OrInst, chip8.AndInst, chip8.XorInst, chip8.SubInst, chip8.SubnInst:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.ShrInst, chip8.ShlInst:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.RndInst:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.DrwInst:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	case chip8.SkpInst, chip8.SknpInst:
		return fmt.Sprintf("V%X", registerX(opcode))
	}
	return ""
}

// formatJump formats the jump variants (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats the skip-compare variants.
//
//	3XNN: SE Vx, byte    4XNN: SNE Vx, byte
//	5XY0: SE Vx, Vy      9XY0: SNE Vx, Vy
func formatCompare(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	}
	return ""
}

// formatLoad formats the many LD variants.
func formatLoad(opcode uint16) string {
	x := registerX(opcode)

	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		switch opcode & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

// formatAdd formats the add variants (ADD Vx, byte/Vy and ADD I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)

	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// registerX extracts the X register nibble from an opcode.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from an opcode.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
