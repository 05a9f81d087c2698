package mjpeg

import (
	"bytes"
	"image/jpeg"
	"net/http"

	"github.com/gorgonia/c4uct/encoding"
	"github.com/gorgonia/c4uct/game"
	"github.com/mattn/go-mjpeg"
	"github.com/pkg/errors"
)

// Encoder streams every state it is given as a frame of an MJPEG stream over HTTP.
// It implements c4uct.OutputEncoder.
type Encoder struct {
	*encoding.Renderer

	stream *mjpeg.Stream
	last   []byte
}

func (e *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.stream.ServeHTTP(w, r)
}

// NewEncoder with height and width
func NewEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: encoding.NewRenderer(h, w),
		stream:   mjpeg.NewStream(),
	}
}

// Last returns the last JPEG frame encoded.
func (enc *Encoder) Last() []byte { return enc.last }

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	im := enc.Render(ms)
	var b bytes.Buffer
	if err := jpeg.Encode(&b, im, nil); err != nil {
		return errors.Wrap(err, "mjpeg: unable to encode frame")
	}
	enc.last = b.Bytes()
	return errors.Wrap(enc.stream.Update(enc.last), "mjpeg: unable to update stream")
}

func (enc *Encoder) Flush() error { return nil }

// Close closes the stream.
func (enc *Encoder) Close() error { return enc.stream.Close() }
