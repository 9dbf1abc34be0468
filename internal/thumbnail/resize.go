package thumbnail

import (
	"fmt"

	"github.com/h2non/bimg"
)

// Resizer produces a rendition of an image at a target pixel width, keeping
// the aspect ratio. The worker depends on this interface so tests can run
// without libvips.
type Resizer interface {
	Resize(data []byte, width int) ([]byte, error)
}

// BimgResizer resizes with libvips through bimg.
type BimgResizer struct{}

func (BimgResizer) Resize(data []byte, width int) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{Width: width})
	if err != nil {
		return nil, fmt.Errorf("resize to %dpx: %w", width, err)
	}
	return out, nil
}
