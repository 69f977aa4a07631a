// Package disasm renders a vmx32 machine-code image back to assembler
// text. It is the structural inverse of internal/asm's encoder: the same
// opcode tables and operand shapes, read instead of written.
//
// Grounded on original_source/vm/src/vm.c's -d (disassemble) flag and
// the teacher repo's debug_monitor.go/debug_snapshot.go disassembly
// views, which pair an address column with a hex byte dump and the
// decoded mnemonic.
package disasm

import (
	"fmt"
	"strings"

	"github.com/vmx32/vmx32/internal/isa"
)

type shape int

const (
	shapeNone shape = iota
	shapeReg1
	shapeRegPair
	shapeDual
	shapeJump
	shapeCall
	shapeLiteral1
	shapeScoLike
	shapeMemDump
)

// shapes duplicates internal/asm's operand-shape classification (that
// table is unexported there, and disasm has no other reason to depend on
// the asm package) so decode and encode agree on every mnemonic's wire
// layout. See internal/asm/types.go for the grounding of each entry.
var shapes = map[string]shape{
	"NOP": shapeNone, "RET": shapeNone, "HLT": shapeNone, "EXT": shapeNone,
	"RDUMP": shapeNone,

	"NOT": shapeReg1, "PSH": shapeReg1, "POP": shapeReg1, "TOF": shapeReg1,
	"TOI": shapeReg1, "CTM": shapeReg1, "RDC": shapeReg1, "RDN": shapeReg1,
	"WRS": shapeReg1, "CSB": shapeReg1, "ZSB": shapeReg1, "WSB": shapeReg1,
	"CFD": shapeReg1, "SFD": shapeReg1,

	"MOV": shapeDual, "ADD": shapeDual, "SUB": shapeDual, "MUL": shapeDual,
	"DIV": shapeDual, "AND": shapeDual, "OR": shapeDual, "SHR": shapeDual,
	"SHL": shapeDual, "CMP": shapeDual, "LOD": shapeDual, "STR": shapeDual,

	"GET": shapeRegPair, "SET": shapeRegPair, "STM": shapeRegPair,
	"NFY": shapeRegPair, "WFS": shapeRegPair, "EVS": shapeRegPair,
	"EVE": shapeRegPair, "SBL": shapeRegPair, "SBO": shapeRegPair,
	"GCO": shapeRegPair, "OPS": shapeRegPair, "CPS": shapeRegPair,
	"EXE": shapeRegPair, "ASS": shapeRegPair, "ASB": shapeRegPair,
	"ASN": shapeRegPair, "ASC": shapeRegPair, "ASF": shapeRegPair,

	"JMP": shapeJump, "JZR": shapeJump, "JNZ": shapeJump, "JNE": shapeJump,
	"JPO": shapeJump, "JCA": shapeJump, "JNC": shapeJump,
	"CAL": shapeCall,

	"WRN": shapeLiteral1, "WRC": shapeLiteral1, "WRF": shapeLiteral1,
	"DLY": shapeLiteral1,

	"SCO": shapeScoLike, "OFD": shapeScoLike,

	"MDUMP": shapeMemDump,
}

var reverse = isa.Reverse()

func regName(i byte) string {
	if i == 14 {
		return "SP"
	}
	if i == 15 {
		return "PC"
	}
	return fmt.Sprintf("R%d", i)
}

// literalSize mirrors internal/vm/operands.go's literalSize; see that
// file's doc comment for why HANDLE and WORD are not distinguished.
func literalSize(width byte) int {
	switch width & (isa.BYTE | isa.WORD) {
	case isa.BYTE:
		return 1
	case isa.WORD:
		return 2
	default:
		return 4
	}
}

func be16(b []byte) uint32 { return uint32(b[0])<<8 | uint32(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// Line is one decoded instruction: its address, the raw bytes it
// occupies (trampoline bytes included), and its rendered text.
type Line struct {
	Address uint32
	Bytes   []byte
	Text    string
}

// Decode decodes one instruction at pc, returning its rendered Line and
// total byte length (including any NEXT trampoline bytes consumed to
// reach the secondary or diagnostic table).
func Decode(image []byte, pc uint32) (Line, error) {
	start := pc
	if pc >= uint32(len(image)) {
		return Line{}, fmt.Errorf("pc 0x%04X out of range", pc)
	}

	table := isa.Primary
	var prefix byte
	for {
		if pc >= uint32(len(image)) {
			return Line{}, fmt.Errorf("truncated instruction at 0x%04X", start)
		}
		b := image[pc]
		pc++
		op := b & isa.OpMask
		if op == isa.NEXT && table == isa.Primary {
			table = isa.Secondary
			continue
		}
		if op == isa.NEXT && table == isa.Secondary {
			table = isa.Diagnostic
			continue
		}
		prefix = b
		break
	}

	opcode := prefix & isa.OpMask
	width := prefix & isa.WidthMask
	modeReg := prefix&isa.ModeReg != 0

	name, ok := reverse[table][opcode]
	if !ok {
		name = fmt.Sprintf("ILLEGAL(0x%02X)", opcode)
	}
	sh := shapes[name]

	text, length, err := renderOperands(image, pc, name, sh, width, modeReg)
	if err != nil {
		return Line{}, fmt.Errorf("0x%04X: %w", start, err)
	}
	end := pc + length
	if end > uint32(len(image)) {
		return Line{}, fmt.Errorf("0x%04X: %s overruns image", start, name)
	}
	return Line{Address: start, Bytes: image[start:end], Text: text}, nil
}

func renderOperands(image []byte, pc uint32, name string, sh shape, width byte, modeReg bool) (string, uint32, error) {
	switch sh {
	case shapeNone:
		return name, 0, nil

	case shapeReg1:
		if pc >= uint32(len(image)) {
			return "", 0, fmt.Errorf("%s: truncated", name)
		}
		return fmt.Sprintf("%s %s", name, regName(image[pc]&0x0F)), 1, nil

	case shapeRegPair:
		if pc >= uint32(len(image)) {
			return "", 0, fmt.Errorf("%s: truncated", name)
		}
		b := image[pc]
		return fmt.Sprintf("%s %s, %s", name, regName((b>>4)&0x0F), regName(b&0x0F)), 1, nil

	case shapeDual:
		if modeReg {
			if pc >= uint32(len(image)) {
				return "", 0, fmt.Errorf("%s: truncated", name)
			}
			b := image[pc]
			return fmt.Sprintf("%s %s, %s", name, regName((b>>4)&0x0F), regName(b&0x0F)), 1, nil
		}
		if pc >= uint32(len(image)) {
			return "", 0, fmt.Errorf("%s: truncated", name)
		}
		dst := regName(image[pc] & 0x0F)
		n := literalSize(width)
		if int(pc)+1+n > len(image) {
			return "", 0, fmt.Errorf("%s: truncated immediate", name)
		}
		lit := image[pc+1 : pc+1+uint32(n)]
		var v uint32
		switch n {
		case 1:
			v = uint32(lit[0])
		case 2:
			v = be16(lit)
		default:
			v = be32(lit)
		}
		return fmt.Sprintf("%s %s, #0x%X", name, dst, v), uint32(1 + n), nil

	case shapeJump:
		if int(pc)+2 > len(image) {
			return "", 0, fmt.Errorf("%s: truncated address", name)
		}
		addr := be16(image[pc : pc+2])
		return fmt.Sprintf("%s 0x%04X", name, addr), 2, nil

	case shapeCall:
		if modeReg {
			if pc >= uint32(len(image)) {
				return "", 0, fmt.Errorf("%s: truncated", name)
			}
			return fmt.Sprintf("%s %s", name, regName(image[pc]&0x0F)), 1, nil
		}
		if int(pc)+2 > len(image) {
			return "", 0, fmt.Errorf("%s: truncated address", name)
		}
		addr := be16(image[pc : pc+2])
		return fmt.Sprintf("%s 0x%04X", name, addr), 2, nil

	case shapeLiteral1:
		if modeReg {
			if pc >= uint32(len(image)) {
				return "", 0, fmt.Errorf("%s: truncated", name)
			}
			return fmt.Sprintf("%s %s", name, regName(image[pc]&0x0F)), 1, nil
		}
		if pc >= uint32(len(image)) {
			return "", 0, fmt.Errorf("%s: truncated literal", name)
		}
		return fmt.Sprintf("%s #0x%02X", name, image[pc]), 1, nil

	case shapeScoLike:
		if modeReg {
			if pc >= uint32(len(image)) {
				return "", 0, fmt.Errorf("%s: truncated", name)
			}
			b := image[pc]
			return fmt.Sprintf("%s %s, %s", name, regName((b>>4)&0x0F), regName(b&0x0F)), 1, nil
		}
		if int(pc)+2 > len(image) {
			return "", 0, fmt.Errorf("%s: truncated", name)
		}
		dst := regName(image[pc] & 0x0F)
		return fmt.Sprintf("%s %s, #0x%02X", name, dst, image[pc+1]), 2, nil

	case shapeMemDump:
		if int(pc)+3 > len(image) {
			return "", 0, fmt.Errorf("%s: truncated", name)
		}
		dst := regName(image[pc] & 0x0F)
		length := be16(image[pc+1 : pc+3])
		return fmt.Sprintf("%s %s, 0x%04X", name, dst, length), 3, nil

	default:
		return "", 0, fmt.Errorf("unhandled shape for %s", name)
	}
}

// Listing disassembles image[0:length] end to end, one Line per
// instruction, resuming at the next byte after any decode error so a
// corrupt or data-bearing region does not stop the whole listing.
func Listing(image []byte, length uint32) []Line {
	var lines []Line
	pc := uint32(0)
	if length > uint32(len(image)) {
		length = uint32(len(image))
	}
	for pc < length {
		line, err := Decode(image[:length], pc)
		if err != nil {
			lines = append(lines, Line{Address: pc, Bytes: image[pc : pc+1], Text: fmt.Sprintf("??? %v", err)})
			pc++
			continue
		}
		lines = append(lines, line)
		pc += uint32(len(line.Bytes))
	}
	return lines
}

// Format renders a Line the way vm.c's -d mode prints one: address, hex
// bytes, decoded text.
func Format(l Line) string {
	var hex strings.Builder
	for _, b := range l.Bytes {
		fmt.Fprintf(&hex, "%02X ", b)
	}
	return fmt.Sprintf("%04X: %-18s%s", l.Address, hex.String(), l.Text)
}
