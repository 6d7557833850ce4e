package cpu

// ArgKind describes the operand an instruction reads from the bytes that
// follow its opcode, if any.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgData8
	ArgData16
	ArgAddr8
	ArgAddr16
	ArgOffset8
)

// Instruction is a single entry of the immutable, 256-opcode unprefixed
// instruction table: the opcode byte, an assembly mnemonic (kept for
// tracing/inspection only, never parsed back), the operand it expects,
// and the cycle-count range a real Game Boy would take to run it. Min
// and max differ only for instructions whose cycle count depends on
// whether a branch is taken.
type Instruction struct {
	Opcode    byte
	Mnemonic  string
	Arg       ArgKind
	MinCycles int
	MaxCycles int
	Defined   bool
}

// undefinedOpcodes lists every opcode byte with no defined instruction;
// decoding one of these is a fatal CPU fault.
var undefinedOpcodes = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

func op(opcode byte, mnemonic string, arg ArgKind, min, max int) Instruction {
	return Instruction{Opcode: opcode, Mnemonic: mnemonic, Arg: arg, MinCycles: min, MaxCycles: max, Defined: true}
}

// Instructions is the full unprefixed opcode table, indexed by opcode
// byte. Undefined slots carry Defined == false.
var Instructions = buildInstructions()

func buildInstructions() [256]Instruction {
	var t [256]Instruction

	entries := []Instruction{
		op(0x00, "nop", ArgNone, 4, 4),
		op(0x01, "ld BC, d16", ArgData16, 12, 12),
		op(0x02, "ld (BC), A", ArgNone, 8, 8),
		op(0x03, "inc BC", ArgNone, 8, 8),
		op(0x04, "inc B", ArgNone, 4, 4),
		op(0x05, "dec B", ArgNone, 4, 4),
		op(0x06, "ld B, d8", ArgData8, 8, 8),
		op(0x07, "rlca", ArgNone, 4, 4),

		op(0x08, "ld (a16), SP", ArgAddr16, 20, 20),
		op(0x09, "add HL, BC", ArgNone, 8, 8),
		op(0x0A, "ld A, (BC)", ArgNone, 8, 8),
		op(0x0B, "dec BC", ArgNone, 8, 8),
		op(0x0C, "inc C", ArgNone, 4, 4),
		op(0x0D, "dec C", ArgNone, 4, 4),
		op(0x0E, "ld C, d8", ArgData8, 8, 8),
		op(0x0F, "rrca", ArgNone, 4, 4),

		op(0x10, "stop 0", ArgData8, 4, 4),
		op(0x11, "ld DE, d16", ArgData16, 12, 12),
		op(0x12, "ld (DE), A", ArgNone, 8, 8),
		op(0x13, "inc DE", ArgNone, 8, 8),
		op(0x14, "inc D", ArgNone, 4, 4),
		op(0x15, "dec D", ArgNone, 4, 4),
		op(0x16, "ld D, d8", ArgData8, 8, 8),
		op(0x17, "rla", ArgNone, 4, 4),

		op(0x18, "jr r8", ArgOffset8, 12, 12),
		op(0x19, "add HL, DE", ArgNone, 8, 8),
		op(0x1A, "ld A, (DE)", ArgNone, 8, 8),
		op(0x1B, "dec DE", ArgNone, 8, 8),
		op(0x1C, "inc E", ArgNone, 4, 4),
		op(0x1D, "dec E", ArgNone, 4, 4),
		op(0x1E, "ld E, d8", ArgData8, 8, 8),
		op(0x1F, "rra", ArgNone, 4, 4),

		op(0x20, "jr nz, r8", ArgOffset8, 8, 12),
		op(0x21, "ld HL, d16", ArgData16, 12, 12),
		op(0x22, "ld (HL+), A", ArgNone, 8, 8),
		op(0x23, "inc HL", ArgNone, 8, 8),
		op(0x24, "inc H", ArgNone, 4, 4),
		op(0x25, "dec H", ArgNone, 4, 4),
		op(0x26, "ld H, d8", ArgData8, 8, 8),
		op(0x27, "daa", ArgNone, 4, 4),

		op(0x28, "jr z, r8", ArgOffset8, 8, 12),
		op(0x29, "add HL, HL", ArgNone, 8, 8),
		op(0x2A, "ld A, (HL+)", ArgNone, 8, 8),
		op(0x2B, "dec HL", ArgNone, 8, 8),
		op(0x2C, "inc L", ArgNone, 4, 4),
		op(0x2D, "dec L", ArgNone, 4, 4),
		op(0x2E, "ld L, d8", ArgData8, 8, 8),
		op(0x2F, "cpl", ArgNone, 4, 4),

		op(0x30, "jr nc, r8", ArgOffset8, 8, 12),
		op(0x31, "ld SP, d16", ArgData16, 12, 12),
		op(0x32, "ld (HL-), A", ArgNone, 8, 8),
		op(0x33, "inc SP", ArgNone, 8, 8),
		op(0x34, "inc (HL)", ArgNone, 12, 12),
		op(0x35, "dec (HL)", ArgNone, 12, 12),
		op(0x36, "ld (HL), d8", ArgData8, 12, 12),
		op(0x37, "scf", ArgNone, 4, 4),

		op(0x38, "jr c, r8", ArgOffset8, 8, 12),
		op(0x39, "add HL, SP", ArgNone, 8, 8),
		op(0x3A, "ld A, (HL-)", ArgNone, 8, 8),
		op(0x3B, "dec SP", ArgNone, 8, 8),
		op(0x3C, "inc A", ArgNone, 4, 4),
		op(0x3D, "dec A", ArgNone, 4, 4),
		op(0x3E, "ld A, d8", ArgData8, 8, 8),
		op(0x3F, "ccf", ArgNone, 4, 4),

		op(0x40, "ld B, B", ArgNone, 4, 4),
		op(0x41, "ld B, C", ArgNone, 4, 4),
		op(0x42, "ld B, D", ArgNone, 4, 4),
		op(0x43, "ld B, E", ArgNone, 4, 4),
		op(0x44, "ld B, H", ArgNone, 4, 4),
		op(0x45, "ld B, L", ArgNone, 4, 4),
		op(0x46, "ld B, (HL)", ArgNone, 8, 8),
		op(0x47, "ld B, A", ArgNone, 4, 4),

		op(0x48, "ld C, B", ArgNone, 4, 4),
		op(0x49, "ld C, C", ArgNone, 4, 4),
		op(0x4A, "ld C, D", ArgNone, 4, 4),
		op(0x4B, "ld C, E", ArgNone, 4, 4),
		op(0x4C, "ld C, H", ArgNone, 4, 4),
		op(0x4D, "ld C, L", ArgNone, 4, 4),
		op(0x4E, "ld C, (HL)", ArgNone, 8, 8),
		op(0x4F, "ld C, A", ArgNone, 4, 4),

		op(0x50, "ld D, B", ArgNone, 4, 4),
		op(0x51, "ld D, C", ArgNone, 4, 4),
		op(0x52, "ld D, D", ArgNone, 4, 4),
		op(0x53, "ld D, E", ArgNone, 4, 4),
		op(0x54, "ld D, H", ArgNone, 4, 4),
		op(0x55, "ld D, L", ArgNone, 4, 4),
		op(0x56, "ld D, (HL)", ArgNone, 8, 8),
		op(0x57, "ld D, A", ArgNone, 4, 4),

		op(0x58, "ld E, B", ArgNone, 4, 4),
		op(0x59, "ld E, C", ArgNone, 4, 4),
		op(0x5A, "ld E, D", ArgNone, 4, 4),
		op(0x5B, "ld E, E", ArgNone, 4, 4),
		op(0x5C, "ld E, H", ArgNone, 4, 4),
		op(0x5D, "ld E, L", ArgNone, 4, 4),
		op(0x5E, "ld E, (HL)", ArgNone, 8, 8),
		op(0x5F, "ld E, A", ArgNone, 4, 4),

		op(0x60, "ld H, B", ArgNone, 4, 4),
		op(0x61, "ld H, C", ArgNone, 4, 4),
		op(0x62, "ld H, D", ArgNone, 4, 4),
		op(0x63, "ld H, E", ArgNone, 4, 4),
		op(0x64, "ld H, H", ArgNone, 4, 4),
		op(0x65, "ld H, L", ArgNone, 4, 4),
		op(0x66, "ld H, (HL)", ArgNone, 8, 8),
		op(0x67, "ld H, A", ArgNone, 4, 4),

		op(0x68, "ld L, B", ArgNone, 4, 4),
		op(0x69, "ld L, C", ArgNone, 4, 4),
		op(0x6A, "ld L, D", ArgNone, 4, 4),
		op(0x6B, "ld L, E", ArgNone, 4, 4),
		op(0x6C, "ld L, H", ArgNone, 4, 4),
		op(0x6D, "ld L, L", ArgNone, 4, 4),
		op(0x6E, "ld L, (HL)", ArgNone, 8, 8),
		op(0x6F, "ld L, A", ArgNone, 4, 4),

		op(0x70, "ld (HL), B", ArgNone, 8, 8),
		op(0x71, "ld (HL), C", ArgNone, 8, 8),
		op(0x72, "ld (HL), D", ArgNone, 8, 8),
		op(0x73, "ld (HL), E", ArgNone, 8, 8),
		op(0x74, "ld (HL), H", ArgNone, 8, 8),
		op(0x75, "ld (HL), L", ArgNone, 8, 8),
		op(0x76, "halt", ArgNone, 4, 4),
		op(0x77, "ld (HL), A", ArgNone, 8, 8),

		op(0x78, "ld A, B", ArgNone, 4, 4),
		op(0x79, "ld A, C", ArgNone, 4, 4),
		op(0x7A, "ld A, D", ArgNone, 4, 4),
		op(0x7B, "ld A, E", ArgNone, 4, 4),
		op(0x7C, "ld A, H", ArgNone, 4, 4),
		op(0x7D, "ld A, L", ArgNone, 4, 4),
		op(0x7E, "ld A, (HL)", ArgNone, 8, 8),
		op(0x7F, "ld A, A", ArgNone, 4, 4),

		op(0x80, "add A, B", ArgNone, 4, 4),
		op(0x81, "add A, C", ArgNone, 4, 4),
		op(0x82, "add A, D", ArgNone, 4, 4),
		op(0x83, "add A, E", ArgNone, 4, 4),
		op(0x84, "add A, H", ArgNone, 4, 4),
		op(0x85, "add A, L", ArgNone, 4, 4),
		op(0x86, "add A, (HL)", ArgNone, 8, 8),
		op(0x87, "add A, A", ArgNone, 4, 4),

		op(0x88, "adc A, B", ArgNone, 4, 4),
		op(0x89, "adc A, C", ArgNone, 4, 4),
		op(0x8A, "adc A, D", ArgNone, 4, 4),
		op(0x8B, "adc A, E", ArgNone, 4, 4),
		op(0x8C, "adc A, H", ArgNone, 4, 4),
		op(0x8D, "adc A, L", ArgNone, 4, 4),
		op(0x8E, "adc A, (HL)", ArgNone, 8, 8),
		op(0x8F, "adc A, A", ArgNone, 4, 4),

		op(0x90, "sub A, B", ArgNone, 4, 4),
		op(0x91, "sub A, C", ArgNone, 4, 4),
		op(0x92, "sub A, D", ArgNone, 4, 4),
		op(0x93, "sub A, E", ArgNone, 4, 4),
		op(0x94, "sub A, H", ArgNone, 4, 4),
		op(0x95, "sub A, L", ArgNone, 4, 4),
		op(0x96, "sub A, (HL)", ArgNone, 8, 8),
		op(0x97, "sub A, A", ArgNone, 4, 4),

		op(0x98, "sbc A, B", ArgNone, 4, 4),
		op(0x99, "sbc A, C", ArgNone, 4, 4),
		op(0x9A, "sbc A, D", ArgNone, 4, 4),
		op(0x9B, "sbc A, E", ArgNone, 4, 4),
		op(0x9C, "sbc A, H", ArgNone, 4, 4),
		op(0x9D, "sbc A, L", ArgNone, 4, 4),
		op(0x9E, "sbc A, (HL)", ArgNone, 8, 8),
		op(0x9F, "sbc A, A", ArgNone, 4, 4),

		op(0xA0, "and A, B", ArgNone, 4, 4),
		op(0xA1, "and A, C", ArgNone, 4, 4),
		op(0xA2, "and A, D", ArgNone, 4, 4),
		op(0xA3, "and A, E", ArgNone, 4, 4),
		op(0xA4, "and A, H", ArgNone, 4, 4),
		op(0xA5, "and A, L", ArgNone, 4, 4),
		op(0xA6, "and A, (HL)", ArgNone, 8, 8),
		op(0xA7, "and A, A", ArgNone, 4, 4),

		op(0xA8, "xor A, B", ArgNone, 4, 4),
		op(0xA9, "xor A, C", ArgNone, 4, 4),
		op(0xAA, "xor A, D", ArgNone, 4, 4),
		op(0xAB, "xor A, E", ArgNone, 4, 4),
		op(0xAC, "xor A, H", ArgNone, 4, 4),
		op(0xAD, "xor A, L", ArgNone, 4, 4),
		op(0xAE, "xor A, (HL)", ArgNone, 8, 8),
		op(0xAF, "xor A, A", ArgNone, 4, 4),

		op(0xB0, "or A, B", ArgNone, 4, 4),
		op(0xB1, "or A, C", ArgNone, 4, 4),
		op(0xB2, "or A, D", ArgNone, 4, 4),
		op(0xB3, "or A, E", ArgNone, 4, 4),
		op(0xB4, "or A, H", ArgNone, 4, 4),
		op(0xB5, "or A, L", ArgNone, 4, 4),
		op(0xB6, "or A, (HL)", ArgNone, 8, 8),
		op(0xB7, "or A, A", ArgNone, 4, 4),

		op(0xB8, "cp A, B", ArgNone, 4, 4),
		op(0xB9, "cp A, C", ArgNone, 4, 4),
		op(0xBA, "cp A, D", ArgNone, 4, 4),
		op(0xBB, "cp A, E", ArgNone, 4, 4),
		op(0xBC, "cp A, H", ArgNone, 4, 4),
		op(0xBD, "cp A, L", ArgNone, 4, 4),
		op(0xBE, "cp A, (HL)", ArgNone, 8, 8),
		op(0xBF, "cp A, A", ArgNone, 4, 4),

		op(0xC0, "ret nz", ArgNone, 8, 20),
		op(0xC1, "pop BC", ArgNone, 12, 12),
		op(0xC2, "jp nz, a16", ArgAddr16, 12, 16),
		op(0xC3, "jp a16", ArgAddr16, 16, 16),
		op(0xC4, "call nz, a16", ArgAddr16, 12, 24),
		op(0xC5, "push BC", ArgNone, 16, 16),
		op(0xC6, "add A, d8", ArgData8, 8, 8),
		op(0xC7, "rst 00", ArgNone, 16, 16),

		op(0xC8, "ret z", ArgNone, 8, 20),
		op(0xC9, "ret", ArgNone, 16, 16),
		op(0xCA, "jp z, a16", ArgAddr16, 12, 16),
		op(0xCB, "prefix cb", ArgNone, 4, 4),
		op(0xCC, "call z, a16", ArgAddr16, 12, 24),
		op(0xCD, "call a16", ArgAddr16, 24, 24),
		op(0xCE, "adc A, d8", ArgData8, 8, 8),
		op(0xCF, "rst 08", ArgNone, 16, 16),

		op(0xD0, "ret nc", ArgNone, 8, 20),
		op(0xD1, "pop DE", ArgNone, 12, 12),
		op(0xD2, "jp nc, a16", ArgAddr16, 12, 16),
		op(0xD4, "call nc, a16", ArgAddr16, 12, 24),
		op(0xD5, "push DE", ArgNone, 16, 16),
		op(0xD6, "sub A, d8", ArgData8, 8, 8),
		op(0xD7, "rst 10", ArgNone, 16, 16),

		op(0xD8, "ret c", ArgNone, 8, 20),
		op(0xD9, "reti", ArgNone, 16, 16),
		op(0xDA, "jp c, a16", ArgAddr16, 12, 16),
		op(0xDC, "call c, a16", ArgAddr16, 12, 24),
		op(0xDE, "sbc A, d8", ArgData8, 8, 8),
		op(0xDF, "rst 18", ArgNone, 16, 16),

		op(0xE0, "ldh (a8), A", ArgAddr8, 12, 12),
		op(0xE1, "pop HL", ArgNone, 12, 12),
		op(0xE2, "ld (C), A", ArgNone, 8, 8),
		op(0xE5, "push HL", ArgNone, 16, 16),
		op(0xE6, "and A, d8", ArgData8, 8, 8),
		op(0xE7, "rst 20", ArgNone, 16, 16),

		op(0xE8, "add SP, r8", ArgOffset8, 16, 16),
		op(0xE9, "jp (HL)", ArgNone, 4, 4),
		op(0xEA, "ld (a16), A", ArgAddr16, 16, 16),
		op(0xEE, "xor A, d8", ArgData8, 8, 8),
		op(0xEF, "rst 28", ArgNone, 16, 16),

		op(0xF0, "ldh A, (a8)", ArgAddr8, 12, 12),
		op(0xF1, "pop AF", ArgNone, 12, 12),
		op(0xF2, "ld A, (C)", ArgNone, 8, 8),
		op(0xF3, "di", ArgNone, 4, 4),
		op(0xF5, "push AF", ArgNone, 16, 16),
		op(0xF6, "or A, d8", ArgData8, 8, 8),
		op(0xF7, "rst 30", ArgNone, 16, 16),

		op(0xF8, "ld HL, SP+r8", ArgOffset8, 12, 12),
		op(0xF9, "ld SP, HL", ArgNone, 8, 8),
		op(0xFA, "ld A, (a16)", ArgAddr16, 16, 16),
		op(0xFB, "ei", ArgNone, 4, 4),
		op(0xFE, "cp A, d8", ArgData8, 8, 8),
		op(0xFF, "rst 38", ArgNone, 16, 16),
	}

	for _, e := range entries {
		t[e.Opcode] = e
	}
	for opcode := range undefinedOpcodes {
		t[opcode] = Instruction{Opcode: opcode, Defined: false}
	}
	return t
}

// cbInstruction builds the uniform 8-cycle description used for every
// CB-prefixed opcode; CB instructions carry no operand beyond the opcode
// byte itself and always run in 8 cycles.
func cbInstruction(opcode byte) Instruction {
	return Instruction{Opcode: opcode, Mnemonic: "cb", Arg: ArgNone, MinCycles: 8, MaxCycles: 8, Defined: true}
}
