package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/sqweek/dialog"

	"github.com/tuboc/chip8vm/chip8"
	e "github.com/tuboc/chip8vm/emulator"
)

var (
	filename  = flag.String("f", "", "chip8 image file path (opens a file dialog when empty)")
	stepMode  = flag.Bool("s", false, "start with stepMode")
	verbosity = flag.Int("v", 0, "log verbosity (1 halts and history, 2 every instruction)")
	headless  = flag.Bool("headless", false, "run without a window and print the final screen")
	cycles    = flag.Uint64("cycles", 100000, "instruction limit in headless mode")
	hz        = flag.Int("hz", e.DefaultHz, "instructions per second")
)

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	log := funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: *verbosity})

	if err := run(log); err != nil {
		log.Error(err, "chip8")
		os.Exit(1)
	}
}

func run(log logr.Logger) error {
	path := *filename
	if path == "" {
		if *headless {
			return errors.New("-f is required in headless mode")
		}
		var err error
		path, err = dialog.File().Title("Open CHIP-8 ROM").Filter("CHIP-8 ROM", "ch8", "c8").Filter("All files", "*").Load()
		if err != nil {
			return fmt.Errorf("choose rom: %w", err)
		}
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.V(1).Info("rom", "path", path, "bytes", len(rom))

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runHeadless(ctx, log, rom)
	}

	emu, err := e.NewEmulator(rom, e.Options{Hz: *hz, StepMode: *stepMode, Logger: log})
	if err != nil {
		return err
	}
	defer emu.Close()
	return emu.Run()
}

// runHeadless executes up to -cycles instructions, counting the timers down
// once per vblank worth of instructions, then prints the screen.
func runHeadless(ctx context.Context, log logr.Logger, rom []byte) error {
	machine := chip8.New(chip8.WithLogger(log.WithName("chip8")))
	if err := machine.LoadProgram(rom); err != nil {
		return err
	}

	perVBlank := *hz / e.VBlankFrequency
	if perVBlank < 1 {
		perVBlank = 1
	}

	var err error
	for n := uint64(0); n < *cycles; n++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = machine.Step(); err != nil {
			break
		}
		if n%uint64(perVBlank) == 0 {
			machine.DecrementTimers()
		}
	}

	fmt.Print(machine.Screen())
	if errors.Is(err, chip8.ErrHalted) {
		return nil
	}
	return err
}
