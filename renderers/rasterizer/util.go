package rasterizer

import (
	"context"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/tdewolff/plotview"
	"golang.org/x/image/tiff"
)

// Writer renders a composer and writes it as an image file.
type Writer func(ctx context.Context, w io.Writer, c *plotview.Composer) error

// PNGWriter writes the composer as a PNG file.
func PNGWriter(opts *Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		return png.Encode(w, img)
	}
}

// JPGWriter writes the composer as a JPG file.
func JPGWriter(opts *Options, jpegOpts *jpeg.Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		return jpeg.Encode(w, img, jpegOpts)
	}
}

// GIFWriter writes the composer as a GIF file.
func GIFWriter(opts *Options, gifOpts *gif.Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		return gif.Encode(w, img, gifOpts)
	}
}

// TIFFWriter writes the composer as a TIFF file.
func TIFFWriter(opts *Options, tiffOpts *tiff.Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		return tiff.Encode(w, img, tiffOpts)
	}
}
