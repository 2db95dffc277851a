//go:build formats

package rasterizer

import (
	"context"
	"io"

	"github.com/Kagami/go-avif"
	webp "github.com/kolesa-team/go-webp/encoder"
	"github.com/tdewolff/plotview"
)

// WebPWriter writes the composer as a WebP file using libwebp. Nil options use lossy encoding at quality 75.
func WebPWriter(opts *Options, webpOpts *webp.Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		o := webpOpts
		if o == nil {
			if o, err = webp.NewLossyEncoderOptions(webp.PresetDefault, 75); err != nil {
				return err
			}
		}
		enc, err := webp.NewEncoder(img, o)
		if err != nil {
			return err
		}
		return enc.Encode(w)
	}
}

// AVIFWriter writes the composer as an AVIF file using libaom.
func AVIFWriter(opts *Options, avifOpts *avif.Options) Writer {
	return func(ctx context.Context, w io.Writer, c *plotview.Composer) error {
		img, err := Draw(ctx, c, opts)
		if err != nil && ctx.Err() != nil {
			return err
		}
		return avif.Encode(w, img, avifOpts)
	}
}

// Formats lists the extensions of the cgo backed writers.
var Formats = map[string]func(*Options) Writer{
	".webp": func(opts *Options) Writer { return WebPWriter(opts, nil) },
	".avif": func(opts *Options) Writer { return AVIFWriter(opts, nil) },
}
