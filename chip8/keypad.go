package chip8

// Keypad is the 16-key input the machine polls. Keys are 0x0..0xF.
type Keypad interface {
	// Pressed reports whether key is currently held.
	Pressed(key uint8) bool

	// KeyPress returns a key pressed since the last call, if any.
	KeyPress() (uint8, bool)
}

// Keys is a Keypad fed by the host. The zero value has every key up.
type Keys struct {
	held    [16]bool
	pending uint8 // last pressed key + 1, 0 when none
}

func (k *Keys) Press(key uint8) {
	if key >= 16 {
		return
	}
	k.held[key] = true
	k.pending = key + 1
}

func (k *Keys) Release(key uint8) {
	if key >= 16 {
		return
	}
	k.held[key] = false
}

func (k *Keys) Reset() {
	*k = Keys{}
}

func (k *Keys) Pressed(key uint8) bool {
	return key < 16 && k.held[key]
}

func (k *Keys) KeyPress() (uint8, bool) {
	if k.pending == 0 {
		return 0, false
	}
	key := k.pending - 1
	k.pending = 0
	return key, true
}

// Held returns the state of every key.
func (k *Keys) Held() [16]bool {
	return k.held
}
