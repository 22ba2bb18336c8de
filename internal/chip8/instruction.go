package chip8

// Op identifies one of the machine's instructions.
type Op uint8

// All instructions of the CHIP-8 instruction set. Nop covers the legacy
// SYS call patterns that modern interpreters ignore.
const (
	Nop        Op = iota // 0nnn
	Cls                  // 00E0
	Ret                  // 00EE
	Jump                 // 1nnn
	Call                 // 2nnn
	SkipEqByte           // 3xkk
	SkipNeByte           // 4xkk
	SkipEqReg            // 5xy0
	LoadByte             // 6xkk
	AddByte              // 7xkk
	LoadReg              // 8xy0
	Or                   // 8xy1
	And                  // 8xy2
	Xor                  // 8xy3
	AddReg               // 8xy4
	Sub                  // 8xy5
	Shr                  // 8xy6
	Subn                 // 8xy7
	Shl                  // 8xyE
	SkipNeReg            // 9xy0
	LoadIndex            // Annn
	JumpV0               // Bnnn
	Random               // Cxkk
	Draw                 // Dxyn
	SkipKey              // Ex9E
	SkipNoKey            // ExA1
	LoadDelay            // Fx07
	WaitKey              // Fx0A
	SetDelay             // Fx15
	SetSound             // Fx18
	AddIndex             // Fx1E
	LoadFont             // Fx29
	StoreBCD             // Fx33
	StoreRegs            // Fx55
	LoadRegs             // Fx65
)

// Instruction is a decoded opcode. Only the operand fields that the
// instruction pattern defines carry meaning; the rest are zero.
type Instruction struct {
	Op  Op
	X   uint8  // first register index
	Y   uint8  // second register index
	N   uint8  // 4-bit count
	NN  uint8  // 8-bit immediate
	NNN uint16 // 12-bit address
}

// Decode maps a 16-bit opcode to its instruction. It is a pure total
// function over the opcode space: every value yields either one of the
// defined instructions, an explicit Nop for ignored SYS patterns, or a
// DecodeError. Decode never touches machine state.
func Decode(opcode uint16) (Instruction, error) {
	n3, x, y, n := nibbles(opcode)

	ins := Instruction{
		X:   x,
		Y:   y,
		N:   n,
		NN:  uint8(opcode & 0x00FF),
		NNN: opcode & addressMask,
	}

	switch n3 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			ins.Op = Cls
		case 0x00EE:
			ins.Op = Ret
		default:
			ins.Op = Nop
		}
	case 0x1:
		ins.Op = Jump
	case 0x2:
		ins.Op = Call
	case 0x3:
		ins.Op = SkipEqByte
	case 0x4:
		ins.Op = SkipNeByte
	case 0x5:
		if n != 0 {
			return Instruction{}, DecodeError{Opcode: opcode}
		}
		ins.Op = SkipEqReg
	case 0x6:
		ins.Op = LoadByte
	case 0x7:
		ins.Op = AddByte
	case 0x8:
		op, ok := aluOps[n]
		if !ok {
			return Instruction{}, DecodeError{Opcode: opcode}
		}
		ins.Op = op
	case 0x9:
		if n != 0 {
			return Instruction{}, DecodeError{Opcode: opcode}
		}
		ins.Op = SkipNeReg
	case 0xA:
		ins.Op = LoadIndex
	case 0xB:
		ins.Op = JumpV0
	case 0xC:
		ins.Op = Random
	case 0xD:
		ins.Op = Draw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			ins.Op = SkipKey
		case 0xA1:
			ins.Op = SkipNoKey
		default:
			return Instruction{}, DecodeError{Opcode: opcode}
		}
	case 0xF:
		op, ok := miscOps[ins.NN]
		if !ok {
			return Instruction{}, DecodeError{Opcode: opcode}
		}
		ins.Op = op
	}

	return ins, nil
}

// aluOps maps the low nibble of the 8xy_ instruction family.
var aluOps = map[uint8]Op{
	0x0: LoadReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: Sub,
	0x6: Shr,
	0x7: Subn,
	0xE: Shl,
}

// miscOps maps the low byte of the Fx__ instruction family.
var miscOps = map[uint8]Op{
	0x07: LoadDelay,
	0x0A: WaitKey,
	0x15: SetDelay,
	0x18: SetSound,
	0x1E: AddIndex,
	0x29: LoadFont,
	0x33: StoreBCD,
	0x55: StoreRegs,
	0x65: LoadRegs,
}

// nibbles splits an opcode into its four 4-bit fields, high to low.
func nibbles(opcode uint16) (n3, n2, n1, n0 uint8) {
	n3 = uint8(opcode >> 12)
	n2 = uint8(opcode>>8) & 0x0F
	n1 = uint8(opcode>>4) & 0x0F
	n0 = uint8(opcode) & 0x0F
	return n3, n2, n1, n0
}
