package render

import "image/color"

// SpeedPalette returns a 256-entry ramp from dark blue through white to red,
// indexed by quantized speed.
func SpeedPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		t := float64(i) / 255
		if t < 0.5 {
			k := t / 0.5
			palette[i] = lerp(color.RGBA{R: 10, G: 20, B: 90, A: 255}, color.RGBA{R: 240, G: 240, B: 240, A: 255}, k)
			continue
		}
		k := (t - 0.5) / 0.5
		palette[i] = lerp(color.RGBA{R: 240, G: 240, B: 240, A: 255}, color.RGBA{R: 190, G: 20, B: 20, A: 255}, k)
	}
	return palette
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// flipRows reverses the row order of an RGBA buffer so that lattice y grows
// upward on screen.
func flipRows(buf []byte, w, h int) {
	stride := 4 * w
	tmp := make([]byte, stride)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := buf[top*stride : (top+1)*stride]
		b := buf[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
