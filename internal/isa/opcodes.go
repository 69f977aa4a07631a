// Package isa defines the instruction encoding shared by the execution
// core, the assembler, and the disassembler: opcode numbers, width tags,
// the register name table, and the prefix-byte layout.
package isa

// Width tags occupy the top three bits of every opcode prefix byte.
// Numeric values match the reference VM core's datatypes header exactly;
// HANDLE and MODE_REG deliberately share bit 5 (0x20), which is why a
// HANDLE-width instruction in immediate mode (0x60) and a WORD-width
// instruction in register-addressing mode (0x40|0x20) carry the same
// top three bits. This is
// not a Go bug to paper over — it is the wire format.
const (
	LONG    byte = 0x00
	HANDLE  byte = 0x60
	WORD    byte = 0x40
	BYTE    byte = 0x80
	FLOAT32 byte = 0xC0

	WidthMask byte = 0xE0

	// ModeReg set means register-register addressing; clear means
	// immediate/memory addressing.
	ModeReg byte = 0x20

	// OpMask extracts the 5-bit opcode from a prefix byte.
	OpMask byte = 0x1F
)

// Primary opcode table (instructions0 in the reference core).
const (
	NOP byte = 0x00
	LOD byte = 0x01
	STR byte = 0x02
	MOV byte = 0x03
	ADD byte = 0x04
	SUB byte = 0x05
	MUL byte = 0x06
	DIV byte = 0x07
	AND byte = 0x08
	OR  byte = 0x09
	NOT byte = 0x0A
	SHR byte = 0x0B
	SHL byte = 0x0C
	JMP byte = 0x0D
	JZR byte = 0x0E
	JNZ byte = 0x0F
	JNE byte = 0x10
	JPO byte = 0x11
	JCA byte = 0x12
	JNC byte = 0x13
	CAL byte = 0x14
	RET byte = 0x15
	CMP byte = 0x16
	TOF byte = 0x17
	TOI byte = 0x18
	PSH byte = 0x19
	POP byte = 0x1A
	HLT byte = 0x1B
	EXT byte = 0x1C
	GET byte = 0x1D
	SET byte = 0x1E
	NEXT byte = 0x1F

	MaxPrimaryOpcode = 0x1F
)

// Secondary opcode table (instructions1), reached via NEXT.
const (
	OPS byte = 0x00
	CPS byte = 0x01
	WRS byte = 0x02
	CSB byte = 0x03
	ZSB byte = 0x04
	WSB byte = 0x05
	ASS byte = 0x06
	ASB byte = 0x07
	ASN byte = 0x08
	ASC byte = 0x09
	ASF byte = 0x0A
	RDC byte = 0x0B
	RDN byte = 0x0C
	WRF byte = 0x0D
	WRN byte = 0x0E
	WRC byte = 0x0F
	DLY byte = 0x10
	STM byte = 0x11
	CTM byte = 0x12
	NFY byte = 0x13
	WFS byte = 0x14
	EVS byte = 0x15
	EVE byte = 0x16
	SBL byte = 0x17
	SBO byte = 0x18
	SCO byte = 0x19
	GCO byte = 0x1A
	OFD byte = 0x1B
	CFD byte = 0x1C
	SFD byte = 0x1D
	EXE byte = 0x1E

	MaxSecondaryOpcode = 0x1E
)

// Diagnostic opcode table (instructions2), reached via NEXT inside the
// secondary table's own NEXT slot (0x1F again).
const (
	MDUMP byte = 0x00
	RDUMP byte = 0x01

	MaxDiagnosticOpcode = 0x01
)

// DAT is not a runtime opcode; it is an assembler directive that copies
// literal bytes verbatim into the image (string/data literals).
const DAT byte = 0xA4

// Signal kinds WFS writes into its first register (the second receives
// the event's payload).
const (
	NotifyTimer        = 1
	NotifyVarModified  = 2
	NotifyVarCalc      = 3
	NotifyVarValidate  = 4
	NotifyVarPrint     = 5
)

// Status flag bits.
const (
	ZFlag uint32 = 0x1
	NFlag uint32 = 0x2
	CFlag uint32 = 0x4
)

const SignBit uint32 = 0x80000000

// Register indices. SP/PC/scratch aliases follow the ABI the code
// generator assumes: R14=SP, R15=PC, R0=return value, R1=frame pointer,
// R2=scratch.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	SP
	PC
)

const NumRegisters = 16

// RegisterNames maps assembler mnemonics to register indices, case
// normalized by the caller.
var RegisterNames = map[string]byte{
	"R0": R0, "R1": R1, "R2": R2, "R3": R3, "R4": R4, "R5": R5,
	"R6": R6, "R7": R7, "R8": R8, "R9": R9, "R10": R10, "R11": R11,
	"R12": R12, "R13": R13, "R14": SP, "SP": SP, "R15": PC, "PC": PC,
}
