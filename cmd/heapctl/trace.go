package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Trace file format, one operation per line:
//
//	a <id> <size>   allocate <size> bytes under handle <id>
//	r <id> <size>   reallocate handle <id> to <size> bytes
//	f <id>          free handle <id>
//
// Blank lines and lines starting with '#' are ignored.

type opKind byte

const (
	opAlloc   opKind = 'a'
	opRealloc opKind = 'r'
	opFree    opKind = 'f'
)

type traceOp struct {
	line int
	kind opKind
	id   int
	size int
}

func parseTraceFile(path string) ([]traceOp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ops []traceOp
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := parseTraceLine(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		op.line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseTraceLine(text string) (traceOp, error) {
	fields := strings.Fields(text)
	kind := opKind(fields[0][0])
	if len(fields[0]) != 1 {
		return traceOp{}, fmt.Errorf("unknown operation %q", fields[0])
	}

	switch kind {
	case opAlloc, opRealloc:
		if len(fields) != 3 {
			return traceOp{}, fmt.Errorf("%c takes an id and a size", kind)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return traceOp{}, fmt.Errorf("bad id %q", fields[1])
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return traceOp{}, fmt.Errorf("bad size %q", fields[2])
		}
		return traceOp{kind: kind, id: id, size: size}, nil

	case opFree:
		if len(fields) != 2 {
			return traceOp{}, fmt.Errorf("f takes an id")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return traceOp{}, fmt.Errorf("bad id %q", fields[1])
		}
		return traceOp{kind: kind, id: id}, nil

	default:
		return traceOp{}, fmt.Errorf("unknown operation %q", fields[0])
	}
}
