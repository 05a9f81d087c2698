package gif

import (
	"image/gif"
	"io"

	"github.com/gorgonia/c4uct/encoding"
	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
)

// frame delays, in 100ths of a second
const (
	moveDelay  = 50
	finalDelay = 300
)

// Encoder renders every state it is given as a frame of an animated GIF.
// It implements c4uct.OutputEncoder.
type Encoder struct {
	*encoding.Renderer
	io.Writer

	out *gif.GIF
}

// NewGifEncoder creates an encoder whose frames are at most h by w pixels. The GIF is written to out on Flush.
func NewGifEncoder(out io.Writer, h, w int) *Encoder {
	return &Encoder{
		Renderer: encoding.NewRenderer(h, w),
		Writer:   out,
		out:      &gif.GIF{LoopCount: -1},
	}
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Encode a game. The final position of a game is held for longer.
func (enc *Encoder) Encode(ms game.MetaState) error {
	delay := moveDelay
	if ms.State().Ended() {
		delay = finalDelay
	}
	enc.out.Image = append(enc.out.Image, enc.Render(ms))
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Flush writes the gif into the writer. Nothing is written if nothing was encoded.
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	if enc.Writer == nil {
		return errors.New("gif: no writer to flush to")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}
