package asm

import "github.com/vmx32/vmx32/internal/isa"

// operandShape is the structural shape of a mnemonic's operand list: how
// many operands it takes and whether the encoder is choosing between a
// register-register form and a register-immediate form. Grounded on
// reading each opXXX handler's own operand decoding in internal/vm,
// since original_source has no single table that lists these (the
// reference core decodes operands inline, opcode by opcode).
type operandShape int

const (
	shapeNone       operandShape = iota // NOP, RET, HLT, EXT
	shapeReg1                           // one register operand
	shapeRegPair                        // two register operands, always reg-reg
	shapeDual                           // reg,reg OR reg,immediate/label, width-tagged
	shapeJump                           // one label operand, WORD address, no prefix width bit
	shapeCall                           // reg OR label (CAL)
	shapeLiteral1                       // reg OR a single untagged literal byte, no register at all in immediate form
	shapeScoLike                        // reg,reg (reg mode) OR reg,literal-byte (immediate mode): SCO, OFD
	shapeMemDump                        // reg, 2-byte literal length (MDUMP)
)

// mnemonicShape maps every mnemonic this assembler supports to its
// operand shape. HasWidth (from isa.Mnemonics) says whether a .suffix is
// legal; this table says how many operands and what form they take.
var mnemonicShape = map[string]operandShape{
	"NOP": shapeNone,
	"RET": shapeNone,
	"HLT": shapeNone,
	"EXT": shapeNone,

	"NOT": shapeReg1,
	"PSH": shapeReg1,
	"POP": shapeReg1,
	"TOF": shapeReg1,
	"TOI": shapeReg1,
	"CTM": shapeReg1,
	"RDC": shapeReg1,
	"RDN": shapeReg1,
	"WRS": shapeReg1,
	"CSB": shapeReg1,
	"ZSB": shapeReg1,
	"WSB": shapeReg1,
	"CFD": shapeReg1,
	"SFD": shapeReg1,

	"MOV": shapeDual,
	"ADD": shapeDual,
	"SUB": shapeDual,
	"MUL": shapeDual,
	"DIV": shapeDual,
	"AND": shapeDual,
	"OR":  shapeDual,
	"SHR": shapeDual,
	"SHL": shapeDual,
	"CMP": shapeDual,
	"LOD": shapeDual,
	"STR": shapeDual,
	"GET": shapeRegPair,
	"SET": shapeRegPair,

	"STM": shapeRegPair,
	"NFY": shapeRegPair,
	"WFS": shapeRegPair,
	"EVS": shapeRegPair,
	"EVE": shapeRegPair,
	"SBL": shapeRegPair,
	"SBO": shapeRegPair,
	"GCO": shapeRegPair,
	"OPS": shapeRegPair,
	"CPS": shapeRegPair,
	"EXE": shapeRegPair,
	"ASS": shapeRegPair,
	"ASB": shapeRegPair,
	"ASN": shapeRegPair,
	"ASC": shapeRegPair,
	"ASF": shapeRegPair,

	"JMP": shapeJump,
	"JZR": shapeJump,
	"JNZ": shapeJump,
	"JNE": shapeJump,
	"JPO": shapeJump,
	"JCA": shapeJump,
	"JNC": shapeJump,
	"CAL": shapeCall,

	"WRN": shapeLiteral1,
	"WRC": shapeLiteral1,
	"WRF": shapeLiteral1,
	"DLY": shapeLiteral1,

	"SCO": shapeScoLike,
	"OFD": shapeScoLike,

	"MDUMP": shapeMemDump,
	"RDUMP": shapeNone,
}

func mnemonicLookup(upper string) (isa.Mnemonic, bool) {
	m, ok := isa.Mnemonics[upper]
	return m, ok
}
