/*
 * rv32sim - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	config "github.com/rv32sim/rv32sim/config/configparser"
	"github.com/rv32sim/rv32sim/core"
	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/host"
	"github.com/rv32sim/rv32sim/loader"
	"github.com/rv32sim/rv32sim/memory"
	"github.com/rv32sim/rv32sim/monitor"
	"github.com/rv32sim/rv32sim/util/logger"

	_ "github.com/rv32sim/rv32sim/config/debugconfig"
)

// resetEntry is the fixed instruction pointer the hart starts at,
// matching the reference simulator's test harness convention.
const resetEntry = 0x200

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optMonitor := getopt.StringLong("monitor", 'm', "", "Interactive monitor: repl or tui")
	optUncached := getopt.BoolLong("uncached", 'u', "Use the flat uncached memory model")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logOut io.Writer
	if *optLogFile != "" {
		logFile, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("creating log file", "error", err)
			os.Exit(1)
		}
		logOut = logFile
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	log := slog.New(logger.NewHandler(logOut, &slog.HandlerOptions{Level: programLevel}, new(bool)))
	slog.SetDefault(log)

	if *optConfig != "" {
		if err := config.LoadConfigFile(*optConfig); err != nil {
			log.Error("loading configuration", "error", err)
			os.Exit(1)
		}
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(1)
	}

	storage := memory.NewStorage()
	if _, err := loader.Load(args[0], storage); err != nil {
		log.Error("loading program", "error", err)
		os.Exit(1)
	}

	var mem memory.Memory
	if *optUncached {
		mem = memory.NewUncachedMemory(storage)
	} else {
		mem = memory.NewCachedMemory(storage)
	}

	hart := cpu.NewCpuCore(mem)
	hart.Reset(resetEntry)

	machine := core.NewMachine(hart, mem, host.NewDispatcher(os.Stderr))

	switch *optMonitor {
	case "repl":
		monitor.NewREPL(machine, os.Stdin, os.Stdout).Run()
	case "tui":
		if err := monitor.RunTUI(machine); err != nil {
			log.Error("monitor", "error", err)
			os.Exit(1)
		}
	case "":
		exitCode, err := machine.Run(context.Background())
		if err != nil {
			log.Error("run", "error", err)
			os.Exit(1)
		}
		os.Exit(int(exitCode))
	default:
		log.Error("unknown monitor mode", "mode", *optMonitor)
		os.Exit(1)
	}
}
