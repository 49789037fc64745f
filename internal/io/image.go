package ioutils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"github.com/dustin/go-humanize"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes an embedded picture without decoding its pixels.
type ImageInfo struct {
	// Format is the registered decoder name, e.g. "jpeg" or "webp".
	Format string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// Size is the payload length in bytes.
	Size int
}

// String renders the info as "jpeg 500x500, 42 kB".
func (i ImageInfo) String() string {
	return fmt.Sprintf("%s %dx%d, %s", i.Format, i.Width, i.Height, humanize.Bytes(uint64(i.Size)))
}

// DescribeImage reads the header of an embedded picture.
//
// Only the image configuration is decoded, so large cover art is cheap to
// describe. JPEG, PNG, GIF, BMP, TIFF and WebP are recognised.
//
// Example:
//
//	info, err := DescribeImage(pic.Data)
//	if err == nil {
//	    fmt.Println(info) // jpeg 600x600, 88 kB
//	}
func DescribeImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{Size: len(data)}, fmt.Errorf("unrecognised image data: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height, Size: len(data)}, nil
}
