// Package encoding holds what the output encoders share: rendering a game in progress as an image.
package encoding

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/c4uct/game"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Game Number: 10000, Winner: White`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// Palette is the palette of every rendered frame.
var Palette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Renderer draws the board of a game, its name, its number and its outcome as text.
//
// The frame size is decided by the first game rendered, capped at the maximum size given.
type Renderer struct {
	H, W int
	font.Drawer

	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewRenderer creates a renderer whose frames are at most h by w pixels.
func NewRenderer(h, w int) *Renderer {
	return &Renderer{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
	}
}

// Render draws a frame.
func (r *Renderer) Render(ms game.MetaState) *image.Paletted {
	g := ms.State()
	repr := strings.TrimRight(fmt.Sprintf("%s", g), "\n")
	lines := strings.Split(repr, "\n")

	if !r.initialized {
		r.init(lines)
	}

	im := image.NewPaletted(image.Rect(0, 0, r.W, r.H), Palette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	dy := lineHeight()
	y := r.padH + dy
	r.Dst = im
	for _, s := range lines {
		r.Dot = fixed.P(r.padW, y)
		r.DrawString(s)
		y += dy
	}
	r.Dot = fixed.P(r.padW, y)
	r.DrawString(ms.Name())
	y += dy

	r.Dot = fixed.P(r.padW, y)
	r.DrawString(Status(ms))
	r.Dst = nil
	return im
}

// Status describes the game number and, for an ended game, its outcome.
func Status(ms game.MetaState) string {
	g := ms.State()
	status := fmt.Sprintf("Game Number: %d", ms.GameNumber())
	if !g.Ended() {
		return status
	}
	if winner := g.Result().Winner(); winner != game.Player(game.None) {
		return status + fmt.Sprintf(", Winner: %v", winner)
	}
	return status + ", Draw"
}

// init lazily sizes the frames from the first board seen.
func (r *Renderer) init(lines []string) {
	r.face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	r.Drawer.Src = image.Black
	r.Drawer.Face = r.face

	maxW := font.MeasureString(r.Face, dummyLongString).Ceil()
	for _, l := range lines {
		maxW = maxInt(maxW, font.MeasureString(r.Face, l).Ceil())
	}
	w := maxW + 2*r.padW
	h := (len(lines)+3)*lineHeight() + 2*r.padH // + 3 is for the name, the status and the descent

	w = minInt(w, r.maxW)
	h = minInt(h, r.maxH)

	if w == r.maxW {
		r.padW = 0
	}
	if h == r.maxH {
		r.padH = 0
	}

	r.H = h
	r.W = w
	r.initialized = true
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
