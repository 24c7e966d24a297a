// Package preview draws the small local wave thumbnails shown on preset buttons.
//
// Thumbnails never touch the network. Every wave type is drawn with the same
// smoothed sine, so a thumbnail approximates the rendered divider rather than
// reproducing it.
package preview

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Width and Height are the thumbnail viewBox dimensions
	Width  = 300
	Height = 40

	// Samples is the number of curve segments across the width
	Samples = 60

	// amplitudes are authored against an 80px tall divider
	referenceHeight = 80
)

// Input is everything a thumbnail depends on
type Input struct {
	Amplitude   float64
	Frequency   float64
	Flip        bool
	ColorTop    string // 6 hex digits, no '#'
	ColorBottom string
}

type point struct {
	x, y float64
}

// curve samples y(u) = H/2 + amp*sin(2*pi*f*u) at u = i/Samples, i = 0..Samples
func curve(amplitude, frequency float64) []point {
	amp := amplitude * (Height / float64(referenceHeight))
	mid := Height / 2.0

	pts := make([]point, Samples+1)
	for i := 0; i <= Samples; i++ {
		u := float64(i) / Samples
		pts[i] = point{
			x: float64(i*Width) / Samples,
			y: mid + amp*math.Sin(2*math.Pi*frequency*u),
		}
	}
	return pts
}

// Path returns the closed fill path for the curve. Each segment is a cubic
// whose control points share the horizontal midpoint of the segment and take
// the previous and current y values.
func Path(amplitude, frequency float64) string {
	pts := curve(amplitude, frequency)

	var b strings.Builder
	b.WriteString("M 0 ")
	b.WriteString(num(Height / 2.0))
	b.WriteByte(' ')

	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		cx := num((prev.x + cur.x) / 2)
		b.WriteString("C ")
		b.WriteString(cx + " " + num(prev.y) + " ")
		b.WriteString(cx + " " + num(cur.y) + " ")
		b.WriteString(num(cur.x) + " " + num(cur.y) + " ")
	}

	b.WriteString("L " + num(Width) + " " + num(Height) + " L 0 " + num(Height) + " Z")
	return b.String()
}

// FlipTransform mirrors the path vertically about the thumbnail's bottom edge
const FlipTransform = `transform="scale(1,-1) translate(0,-40)"`

// Thumbnail renders the preview SVG. Output is byte-identical for identical input.
func Thumbnail(in Input) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 40" preserveAspectRatio="none" style="width:100%;height:40px">`)
	b.WriteString(`<rect width="300" height="40" fill="#` + strings.TrimPrefix(in.ColorTop, "#") + `"/>`)
	b.WriteString(`<path d="` + Path(in.Amplitude, in.Frequency) + `" fill="#` + strings.TrimPrefix(in.ColorBottom, "#") + `"`)
	if in.Flip {
		b.WriteString(" " + FlipTransform)
	}
	b.WriteString(`/>`)
	b.WriteString(`</svg>`)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
