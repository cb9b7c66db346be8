package chip8

import "strings"

const (
	DisplayW = 64
	DisplayH = 32
)

// Display is the monochrome framebuffer, row-major.
type Display struct {
	pixels [DisplayW * DisplayH]bool
}

func (d *Display) Clear() {
	d.pixels = [DisplayW * DisplayH]bool{}
}

// Pixel reports whether (x, y) is lit. Coordinates outside the screen are
// never lit.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayW || y < 0 || y >= DisplayH {
		return false
	}
	return d.pixels[y*DisplayW+x]
}

// Pixels returns a copy of the whole grid.
func (d *Display) Pixels() [DisplayW * DisplayH]bool {
	return d.pixels
}

// Draw XORs an 8-pixel-wide sprite onto the screen at (x, y), one byte per
// row, MSB leftmost. Both axes wrap. It reports whether any lit pixel was
// turned off.
func (d *Display) Draw(x, y uint8, sprite []uint8) (collision bool) {
	for row, b := range sprite {
		ty := (int(y) + row) % DisplayH
		for col := 0; col < 8; col++ {
			if (b>>(7-col))&0x01 == 0 {
				continue
			}
			tx := (int(x) + col) % DisplayW
			p := &d.pixels[ty*DisplayW+tx]
			if *p {
				collision = true
			}
			*p = !*p
		}
	}
	return collision
}

func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((DisplayW*2*3 + 1) * DisplayH)
	for y := 0; y < DisplayH; y++ {
		for x := 0; x < DisplayW; x++ {
			if d.pixels[y*DisplayW+x] {
				sb.WriteString("██")
			} else {
				sb.WriteString("░░")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
