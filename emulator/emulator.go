// Package emulator runs a chip8.Chip8 in an SDL window: rendering, keypad,
// beeper and the 60 Hz timer cadence.
package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/tuboc/chip8vm/chip8"
)

const (
	VBlankFrequency = 60
	DefaultHz       = VBlankFrequency * 8
	DisplayScale    = 10
	WindowW         = chip8.DisplayW * DisplayScale
	WindowH         = chip8.DisplayH * DisplayScale
	AudioSamples    = 64
	Title           = "Chip-8 Emulator"
)

// Options configures the host.
type Options struct {
	// Hz is the instruction rate. Zero means DefaultHz.
	Hz int

	// StepMode starts paused; space executes one instruction.
	StepMode bool

	Logger logr.Logger
}

type Emulator struct {
	machine  *chip8.Chip8
	keys     *chip8.Keys
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	log      logr.Logger

	perVBlank int
	running   bool
	focus     bool
	stepMode  bool
}

var scanCode2Key = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xc,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xd,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xe,
	sdl.SCANCODE_Z: 0xa,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xb,
	sdl.SCANCODE_V: 0xf,
}

func initRenderer() (*sdl.Window, *sdl.Renderer, error) {
	window, err := sdl.CreateWindow(Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, WindowW, WindowH, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, nil, fmt.Errorf("create renderer: %w", err)
	}

	// workaround for https://bugzilla.libsdl.org/show_bug.cgi?id=4272
	window.Hide()
	sdl.PumpEvents()
	window.Show()

	return window, renderer, nil
}

func initAudio() (sdl.AudioDeviceID, error) {
	want := &sdl.AudioSpec{
		Freq:     AudioSamples * VBlankFrequency,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  AudioSamples,
	}
	have := &sdl.AudioSpec{}
	audio, err := sdl.OpenAudioDevice("", false, want, have, sdl.AUDIO_ALLOW_ANY_CHANGE)
	if err != nil {
		return 0, fmt.Errorf("open audio device: %w", err)
	}

	sdl.PauseAudioDevice(audio, false)
	return audio, nil
}

// NewEmulator opens the window and audio device and loads rom.
func NewEmulator(rom []byte, opts Options) (*Emulator, error) {
	if opts.Hz <= 0 {
		opts.Hz = DefaultHz
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	keys := &chip8.Keys{}
	machine := chip8.New(chip8.WithKeypad(keys), chip8.WithLogger(log.WithName("chip8")))
	if err := machine.LoadProgram(rom); err != nil {
		return nil, err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	window, renderer, err := initRenderer()
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	audio, err := initAudio()
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	perVBlank := opts.Hz / VBlankFrequency
	if perVBlank < 1 {
		perVBlank = 1
	}

	return &Emulator{
		machine:   machine,
		keys:      keys,
		window:    window,
		renderer:  renderer,
		audio:     audio,
		log:       log,
		perVBlank: perVBlank,
		running:   true,
		focus:     true,
		stepMode:  opts.StepMode,
	}, nil
}

// Close releases the SDL resources.
func (e *Emulator) Close() {
	sdl.CloseAudioDevice(e.audio)
	e.renderer.Destroy()
	e.window.Destroy()
	sdl.Quit()
}

// Run drives the machine until the window is closed. Presenting is vsync
// paced, so each frame runs a vblank worth of instructions.
func (e *Emulator) Run() error {
	for e.running {
		if e.focus && !e.stepMode {
			for i := 0; i < e.perVBlank && e.machine.State() == chip8.Running; i++ {
				e.step()
			}
		}

		if e.focus {
			e.updateSound()
			e.machine.DecrementTimers()
		}
		if err := e.draw(); err != nil {
			return err
		}

		e.pollEvents()
	}
	return nil
}

func (e *Emulator) step() {
	if e.machine.State() == chip8.Halted {
		return
	}

	err := e.machine.Step()
	switch {
	case err == nil:
	case errors.Is(err, chip8.ErrHalted):
		e.log.Info("program halted", "cycles", e.machine.Cycles())
		e.window.SetTitle(Title + " - halted")
	default:
		e.log.Info("machine stopped", "reason", err.Error())
		for _, line := range e.machine.History() {
			e.log.V(1).Info("history", "inst", line)
		}
		e.window.SetTitle(Title + " - " + err.Error())
	}
}

func (e *Emulator) draw() error {
	if err := e.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := e.renderer.Clear(); err != nil {
		return err
	}

	if err := e.renderer.SetDrawColor(0, 255, 0, 255); err != nil {
		return err
	}
	pixels := e.machine.Framebuffer()
	for y := int32(0); y < chip8.DisplayH; y++ {
		for x := int32(0); x < chip8.DisplayW; x++ {
			if pixels[y*chip8.DisplayW+x] {
				e.renderer.FillRect(&sdl.Rect{X: x * DisplayScale, Y: y * DisplayScale, W: DisplayScale, H: DisplayScale})
			}
		}
	}

	e.renderer.Present()
	return nil
}

func (e *Emulator) reset() {
	e.machine.Reset()
	e.keys.Reset()
	e.window.SetTitle(Title)
	e.log.Info("reset")
}

func (e *Emulator) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			e.running = false
		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				if k, ok := scanCode2Key[ev.Keysym.Scancode]; ok {
					e.keys.Press(k)
					continue
				}
				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_SPACE:
					if e.stepMode {
						e.step()
						if h := e.machine.History(); len(h) > 0 {
							e.log.Info("step", "inst", h[len(h)-1], "registers", fmt.Sprintf("%+v", e.machine.Registers()))
						}
					} else {
						e.stepMode = true
					}
				case sdl.SCANCODE_RETURN:
					e.stepMode = false
				case sdl.SCANCODE_BACKSPACE:
					e.reset()
				case sdl.SCANCODE_ESCAPE:
					e.running = false
				}
			case sdl.KEYUP:
				if k, ok := scanCode2Key[ev.Keysym.Scancode]; ok {
					e.keys.Release(k)
				}
			}
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				e.focus = false
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				e.focus = true
			}
		}
	}
}

func (e *Emulator) updateSound() {
	if e.machine.SoundTimer() == 0 {
		return
	}

	samples := make([]byte, 4*AudioSamples)
	for i := 0; i < len(samples); i += 4 {
		// sin wave
		f := 2.0 * math.Pi / 180.0 * float64(360*i/AudioSamples)
		f = math.Sin(f)
		binary.LittleEndian.PutUint32(samples[i:], math.Float32bits(float32(f)))
	}

	if err := sdl.QueueAudio(e.audio, samples); err != nil {
		e.log.Error(err, "queue audio")
	}
}
