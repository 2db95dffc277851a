//go:build !formats

package rasterizer

// Formats lists the extensions of the cgo backed writers, WebP and AVIF need the formats build tag.
var Formats = map[string]func(*Options) Writer{}
