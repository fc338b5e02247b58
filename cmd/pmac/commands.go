package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dingusdev/dingusppc-sub001/machine"
)

// processCommand implements the tiny monitor command set: step,
// run-for-N, regs, quit. Grounded on command/'s string->handler
// dispatch shape, too small here to warrant its own package (see
// DESIGN.md).
func processCommand(line string, m *machine.Machine, stopped *bool) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		return true, nil
	case "step", "s":
		n := 1
		if len(fields) > 1 {
			n, err = strconv.Atoi(fields[1])
			if err != nil {
				return false, fmt.Errorf("step: %w", err)
			}
		}
		for i := 0; i < n; i++ {
			m.Step()
		}
		return false, nil
	case "run", "r":
		n, convErr := strconv.Atoi(fields[len(fields)-1])
		if len(fields) < 2 || convErr != nil {
			return false, fmt.Errorf("run: usage 'run <cycles>'")
		}
		for i := 0; i < n; i++ {
			m.Step()
		}
		return false, nil
	case "regs":
		fmt.Printf("PC=%#x LR=%#x CTR=%#x CR=%#x MSR=%#x\n",
			m.CPU.PC, m.CPU.SPR[8], m.CPU.SPR[9], m.CPU.CR, m.CPU.MSR)
		return false, nil
	case "help", "?":
		fmt.Println("commands: step [n], run <n>, regs, quit")
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}
