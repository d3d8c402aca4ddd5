// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
)

// Decode - parse the name prefix of an output script
//
// returns the operation and the number of bytes of prefix consumed,
// so script[consumed:] is the spending script; ok is false if the
// script does not start with a well formed name operation
func Decode(script []byte) (op *Operation, consumed int, ok bool) {
	tokenizer := txscript.MakeScriptTokenizer(0, script)

	if !tokenizer.Next() {
		return nil, 0, false
	}
	opcode := tokenizer.Opcode()
	if opcode < txscript.OP_1 || opcode > txscript.OP_16 {
		return nil, 0, false
	}
	kind := Kind(opcode - txscript.OP_1 + 1)

	arguments := make([][]byte, 0, 3)
	terminated := false

scan:
	for {
		offset := int(tokenizer.ByteIndex())
		if !tokenizer.Next() {
			if !terminated {
				return nil, 0, false
			}
			consumed = offset
			break scan
		}

		opcode = tokenizer.Opcode()
		if isTerminator(opcode) {
			terminated = true
			continue scan
		}
		if terminated {
			consumed = offset
			break scan
		}
		if opcode > txscript.OP_PUSHDATA4 {
			return nil, 0, false
		}
		arguments = append(arguments, append([]byte{}, tokenizer.Data()...))
	}

	if n, known := arity[kind]; !known || n != len(arguments) {
		return nil, 0, false
	}

	op = &Operation{
		Kind:      kind,
		Arguments: arguments,
	}
	return op, consumed, true
}

func isTerminator(opcode byte) bool {
	return txscript.OP_DROP == opcode || txscript.OP_2DROP == opcode || txscript.OP_NOP == opcode
}

// Encode - the name prefix for an operation
//
// arguments are pushed verbatim, never as small integer opcodes, so
// every argument decodes back to the same bytes
func (op *Operation) Encode() []byte {
	script := []byte{txscript.OP_1 - 1 + byte(op.Kind)}
	for _, argument := range op.Arguments {
		script = appendPush(script, argument)
	}

	// drop the arguments and the kind itself
	for items := len(op.Arguments) + 1; items > 0; items -= 2 {
		if items >= 2 {
			script = append(script, txscript.OP_2DROP)
		} else {
			script = append(script, txscript.OP_DROP)
		}
	}
	return script
}

// Script - the complete output script: name prefix ++ spending script
func (op *Operation) Script(spending []byte) []byte {
	return append(op.Encode(), spending...)
}

func appendPush(script []byte, data []byte) []byte {
	n := len(data)
	switch {
	case n < txscript.OP_PUSHDATA1:
		script = append(script, byte(n))
	case n <= 0xff:
		script = append(script, txscript.OP_PUSHDATA1, byte(n))
	case n <= 0xffff:
		var size [2]byte
		binary.LittleEndian.PutUint16(size[:], uint16(n))
		script = append(script, txscript.OP_PUSHDATA2)
		script = append(script, size[:]...)
	default:
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(n))
		script = append(script, txscript.OP_PUSHDATA4)
		script = append(script, size[:]...)
	}
	return append(script, data...)
}

// SpendingScript - the part of an output script after any name prefix
func SpendingScript(script []byte) []byte {
	if _, consumed, ok := Decode(script); ok {
		return script[consumed:]
	}
	return script
}
