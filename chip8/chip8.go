// Package chip8 implements the CHIP-8 virtual machine: memory, registers,
// stack, framebuffer and the fetch/decode/execute cycle. Pacing, timers,
// input and rendering belong to the host.
package chip8

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/exp/rand"
)

const HistorySize = 16

// State is the run state of the machine.
type State uint8

const (
	Running State = iota
	Halted
)

func (s State) String() string {
	if s == Halted {
		return "halted"
	}
	return "running"
}

// RandomSource supplies uniformly distributed values for RND.
type RandomSource interface {
	Uint32() uint32
}

// Chip8 is one machine. It is not safe for concurrent use.
type Chip8 struct {
	mem   Memory
	reg   Registers
	stack Stack
	disp  Display

	keys Keypad
	rand RandomSource
	log  logr.Logger

	program []byte
	state   State
	err     error
	cycles  uint64
	waiting bool // Fx0A re-issuing, no key yet

	history      [HistorySize]executed
	historyIndex int
	historyLen   int
}

type executed struct {
	pc uint16
	op Opcode
}

// Option configures a Chip8.
type Option func(*Chip8)

// WithKeypad sets the input the machine polls.
func WithKeypad(k Keypad) Option {
	return func(c *Chip8) {
		c.keys = k
	}
}

// WithRandom sets the source used by RND.
func WithRandom(r RandomSource) Option {
	return func(c *Chip8) {
		c.rand = r
	}
}

// WithLogger sets the logger. V(1) logs halts, V(2) traces every instruction.
func WithLogger(l logr.Logger) Option {
	return func(c *Chip8) {
		c.log = l
	}
}

// New returns a powered-on machine with no program loaded.
func New(opts ...Option) *Chip8 {
	c := &Chip8{
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.keys == nil {
		c.keys = &Keys{}
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	c.Reset()
	return c
}

// LoadProgram copies program into memory at ProgramOffset and resets the
// machine. The image is kept so Reset can restore it.
func (c *Chip8) LoadProgram(program []byte) error {
	if err := c.mem.Load(program); err != nil {
		return err
	}
	c.program = append([]byte(nil), program...)
	c.Reset()
	c.log.V(1).Info("program loaded", "bytes", len(program))
	return nil
}

// Reset restores power-on state with the last loaded program in memory.
func (c *Chip8) Reset() {
	c.mem.reset()
	copy(c.mem[ProgramOffset:], c.program)
	c.reg.reset()
	c.stack.Reset()
	c.disp.Clear()

	c.state = Running
	c.err = nil
	c.cycles = 0
	c.waiting = false
	c.history = [HistorySize]executed{}
	c.historyIndex = 0
	c.historyLen = 0
}

// Step runs one cycle. It returns ErrHalted once the all-zero opcode is
// fetched, or a *Fault when the instruction cannot complete. Either halts
// the machine; further calls return the same error without executing.
func (c *Chip8) Step() error {
	if c.state == Halted {
		if c.err != nil {
			return c.err
		}
		return ErrHalted
	}

	pc := c.reg.PC
	op, err := c.fetch()
	if err != nil {
		return c.fault(pc, op, err)
	}
	if op == 0 {
		c.state = Halted
		c.log.V(1).Info("halted", "pc", hex12(pc), "cycles", c.cycles)
		return ErrHalted
	}

	c.reg.PC += 2
	if err := c.execOpcode(op); err != nil {
		c.reg.PC = pc
		return c.fault(pc, op, err)
	}
	if c.waiting {
		return nil
	}

	if l := c.log.V(2); l.Enabled() {
		l.Info("exec", "pc", hex12(pc), "op", fmt.Sprintf("%04X", uint16(op)), "inst", Disassemble(op))
	}
	c.record(pc, op)
	c.cycles++
	return nil
}

// Run steps until the machine halts, faults or ctx is done. A normal halt
// returns nil.
func (c *Chip8) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}
			return err
		}
	}
}

func (c *Chip8) fetch() (Opcode, error) {
	pc := c.reg.PC
	if pc&1 != 0 || pc < ProgramOffset {
		return 0, fmt.Errorf("%w: pc %03X", ErrAddressingFault, pc)
	}
	return c.mem.Opcode(pc)
}

func (c *Chip8) fault(pc uint16, op Opcode, err error) error {
	f := &Fault{PC: pc, Opcode: op, Err: err}
	c.state = Halted
	c.err = f
	c.log.Error(err, "fault", "pc", hex12(pc), "op", fmt.Sprintf("%04X", uint16(op)))
	return f
}

func (c *Chip8) record(pc uint16, op Opcode) {
	c.history[c.historyIndex] = executed{pc: pc, op: op}
	c.historyIndex = (c.historyIndex + 1) % HistorySize
	if c.historyLen < HistorySize {
		c.historyLen++
	}
}

// History returns the most recently executed instructions, oldest first.
func (c *Chip8) History() []string {
	lines := make([]string, 0, c.historyLen)
	start := c.historyIndex - c.historyLen
	if start < 0 {
		start += HistorySize
	}
	for i := 0; i < c.historyLen; i++ {
		e := c.history[(start+i)%HistorySize]
		lines = append(lines, fmt.Sprintf("%03X-%04X %s", e.pc, uint16(e.op), Disassemble(e.op)))
	}
	return lines
}

// DecrementTimers counts both timers down by one. Hosts call it at 60 Hz.
func (c *Chip8) DecrementTimers() {
	if c.reg.DT > 0 {
		c.reg.DT--
	}
	if c.reg.ST > 0 {
		c.reg.ST--
	}
}

func (c *Chip8) DelayTimer() uint8 { return c.reg.DT }
func (c *Chip8) SoundTimer() uint8 { return c.reg.ST }

// State reports whether the machine is still running.
func (c *Chip8) State() State { return c.state }

// Err returns the fault that halted the machine, or nil.
func (c *Chip8) Err() error { return c.err }

// Cycles is the number of instructions executed since reset.
func (c *Chip8) Cycles() uint64 { return c.cycles }

// Registers returns a copy of the register file.
func (c *Chip8) Registers() Registers { return c.reg }

// StackDepth is the number of pending return addresses.
func (c *Chip8) StackDepth() int { return c.stack.Depth() }

// Pixel reports whether the screen pixel at (x, y) is lit.
func (c *Chip8) Pixel(x, y int) bool { return c.disp.Pixel(x, y) }

// Framebuffer returns a copy of the screen, row-major.
func (c *Chip8) Framebuffer() [DisplayW * DisplayH]bool { return c.disp.Pixels() }

// Screen renders the framebuffer as text.
func (c *Chip8) Screen() string { return c.disp.String() }

func hex12(v uint16) string {
	return fmt.Sprintf("%03X", v)
}
