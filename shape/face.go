package shape

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

var (
	goBoldOnce sync.Once
	goBold     *opentype.Font
	goBoldErr  error
)

// GoBoldFace returns the embedded Go Bold font at the given pixel size
func GoBoldFace(size float64) (font.Face, error) {
	goBoldOnce.Do(func() {
		goBold, goBoldErr = opentype.Parse(gobold.TTF)
	})
	if goBoldErr != nil {
		return nil, fmt.Errorf("parse go bold: %w", goBoldErr)
	}

	face, err := opentype.NewFace(goBold, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face size %.0f: %w", size, err)
	}
	return face, nil
}
