package isa

// Table identifies which of the three dispatch tables an opcode lives in.
type Table int

const (
	Primary Table = iota
	Secondary
	Diagnostic
)

// Mnemonic describes one assembler-visible instruction name.
type Mnemonic struct {
	Table    Table
	Opcode   byte
	HasWidth bool // accepts a .B/.S/.W/.F/.L/.H suffix
}

// Mnemonics is the assembler's name table. Disassembly uses the reverse
// index built by Reverse().
var Mnemonics = map[string]Mnemonic{
	"NOP": {Primary, NOP, false},
	"LOD": {Primary, LOD, true},
	"STR": {Primary, STR, true},
	"MOV": {Primary, MOV, true},
	"ADD": {Primary, ADD, true},
	"SUB": {Primary, SUB, true},
	"MUL": {Primary, MUL, true},
	"DIV": {Primary, DIV, true},
	"AND": {Primary, AND, true},
	"OR":  {Primary, OR, true},
	"NOT": {Primary, NOT, true},
	"SHR": {Primary, SHR, true},
	"SHL": {Primary, SHL, true},
	"JMP": {Primary, JMP, false},
	"JZR": {Primary, JZR, false},
	"JNZ": {Primary, JNZ, false},
	"JNE": {Primary, JNE, false},
	"JPO": {Primary, JPO, false},
	"JCA": {Primary, JCA, false},
	"JNC": {Primary, JNC, false},
	"CAL": {Primary, CAL, false},
	"RET": {Primary, RET, false},
	"CMP": {Primary, CMP, true},
	"TOF": {Primary, TOF, false},
	"TOI": {Primary, TOI, false},
	"PSH": {Primary, PSH, false},
	"POP": {Primary, POP, false},
	"HLT": {Primary, HLT, false},
	"EXT": {Primary, EXT, false},
	"GET": {Primary, GET, true},
	"SET": {Primary, SET, true},

	"OPS": {Secondary, OPS, false},
	"CPS": {Secondary, CPS, false},
	"WRS": {Secondary, WRS, false},
	"CSB": {Secondary, CSB, false},
	"ZSB": {Secondary, ZSB, false},
	"WSB": {Secondary, WSB, false},
	"ASS": {Secondary, ASS, false},
	"ASB": {Secondary, ASB, false},
	"ASN": {Secondary, ASN, false},
	"ASC": {Secondary, ASC, false},
	"ASF": {Secondary, ASF, false},
	"RDC": {Secondary, RDC, false},
	"RDN": {Secondary, RDN, false},
	"WRF": {Secondary, WRF, false},
	"WRN": {Secondary, WRN, false},
	"WRC": {Secondary, WRC, false},
	"DLY": {Secondary, DLY, true},
	"STM": {Secondary, STM, false},
	"CTM": {Secondary, CTM, false},
	"NFY": {Secondary, NFY, false},
	"WFS": {Secondary, WFS, false},
	"EVS": {Secondary, EVS, false},
	"EVE": {Secondary, EVE, false},
	"SBL": {Secondary, SBL, false},
	"SBO": {Secondary, SBO, false},
	"SCO": {Secondary, SCO, false},
	"GCO": {Secondary, GCO, false},
	"OFD": {Secondary, OFD, false},
	"CFD": {Secondary, CFD, false},
	"SFD": {Secondary, SFD, false},
	"EXE": {Secondary, EXE, false},

	"MDUMP": {Diagnostic, MDUMP, false},
	"RDUMP": {Diagnostic, RDUMP, false},
}

// WidthSuffix maps the assembler's opcode-suffix letters to width tags.
// B and S are synonyms for BYTE (the reference grammar accepts both).
var WidthSuffix = map[byte]byte{
	'B': BYTE,
	'S': BYTE,
	'W': WORD,
	'F': FLOAT32,
	'L': LONG,
	'H': HANDLE,
}

// Reverse builds the opcode->mnemonic index used by the disassembler.
func Reverse() map[Table]map[byte]string {
	rev := map[Table]map[byte]string{
		Primary:    {},
		Secondary:  {},
		Diagnostic: {},
	}
	for name, m := range Mnemonics {
		rev[m.Table][m.Opcode] = name
	}
	return rev
}
