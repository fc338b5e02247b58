// Command pmac is a thin monitor-loop CLI wiring flags into a
// machine.Config and driving machine.New (spec §1): ROM loading,
// machine-config file parsing, and the full front-panel command set
// are out of scope, so this is a demonstration harness, not a
// finished emulator shell.
//
// Grounded on main.go's getopt flag parsing and command/reader's
// liner-backed prompt loop.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/dingusdev/dingusppc-sub001/internal/logger"
	"github.com/dingusdev/dingusppc-sub001/machine"
)

func main() {
	optModel := getopt.StringLong("intc", 'i', "grandcentral", "Interrupt controller model (grandcentral|heathrow|amic)")
	optRAM := getopt.IntLong("ram", 'r', 64*1024*1024, "RAM size in bytes")
	optLog := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLog != "" {
		var err error
		file, err = os.Create(*optLog)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pmac: cannot create log file:", err)
			os.Exit(1)
		}
	}
	level := slog.LevelInfo
	if *optDebug {
		level = slog.LevelDebug
	}
	h := logger.New(file, level, *optDebug)
	logger.Install(h)
	slog.SetDefault(slog.New(h))

	slog.Info("pmac starting", slog.String("intc", *optModel), slog.Int("ram", *optRAM))

	m, err := machine.New(machine.Config{
		IntcModel: *optModel,
		RAMSize:   uint32(*optRAM),
	})
	if err != nil {
		slog.Error("machine init failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	runMonitor(m)
}

func runMonitor(m *machine.Machine) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	stopped := false
	for {
		cmd, err := line.Prompt("pmac> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("error reading line", slog.String("err", err.Error()))
			return
		}
		line.AppendHistory(cmd)
		quit, perr := processCommand(cmd, m, &stopped)
		if perr != nil {
			fmt.Println("error: " + perr.Error())
		}
		if quit {
			return
		}
	}
}
