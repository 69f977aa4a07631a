package asm

import (
	"fmt"
	"strings"

	"github.com/vmx32/vmx32/internal/isa"
)

// operand is a parsed operand token: exactly one of its fields is
// meaningful, selected by kind.
type operandKind int

const (
	operandRegister operandKind = iota
	operandLabel
	operandNumber
	operandChar
	operandString
)

type operand struct {
	kind operandKind
	reg  byte
	text string // label name, or decoded string body
	num  parseInfo
	ch   byte
}

func registerIndex(token string) (byte, bool) {
	idx, ok := isa.RegisterNames[strings.ToUpper(token)]
	return idx, ok
}

func parseOperand(token string, lineno int) (operand, error) {
	if idx, ok := registerIndex(token); ok {
		return operand{kind: operandRegister, reg: idx}, nil
	}
	if strings.HasPrefix(token, "\"") {
		s, err := decodeString(token)
		if err != nil {
			return operand{}, fmt.Errorf("line %d: %w", lineno, err)
		}
		return operand{kind: operandString, text: s}, nil
	}
	if strings.HasPrefix(token, "'") {
		ch, err := encodeChar(token)
		if err != nil {
			return operand{}, fmt.Errorf("line %d: %w", lineno, err)
		}
		return operand{kind: operandChar, ch: ch}, nil
	}
	if looksNumeric(token) {
		pi, err := encodeValue(token, lineno)
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandNumber, num: pi}, nil
	}
	// Anything else is a label reference (a JMP/CAL target or a label
	// used as an address operand), resolved at link time.
	return operand{kind: operandLabel, text: token}, nil
}

func looksNumeric(token string) bool {
	if token == "" {
		return false
	}
	c := token[0]
	return c == '-' || c == '+' || (c >= '0' && c <= '9')
}
