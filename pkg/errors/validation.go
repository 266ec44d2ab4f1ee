package errors

import (
	"strings"
	"unicode"
)

// Limits applied to untrusted maze definitions (HTTP bodies, files from
// elsewhere). Library callers building grids in code are not subject to them.
const (
	// MaxGridSide is the largest accepted grid width or height.
	MaxGridSide = 1024

	// MaxImagePixels caps width*height of a rendered image (64 megapixels).
	MaxImagePixels = 64 << 20

	// MaxPixelParam caps each of wall, passage and margin.
	MaxPixelParam = 4096
)

// ValidateDimensions checks that grid dimensions are positive and within
// [MaxGridSide].
func ValidateDimensions(width, height int) error {
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidInput, "grid dimensions must be at least 1x1, got %dx%d", width, height)
	}
	if width > MaxGridSide || height > MaxGridSide {
		return New(ErrCodeInvalidInput, "grid dimensions %dx%d exceed maximum %d", width, height, MaxGridSide)
	}
	return nil
}

// ValidatePixelParam checks a single geometric render parameter.
// Zero is allowed; it collapses the corresponding region.
func ValidatePixelParam(name string, value int) error {
	if value < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %d", name, value)
	}
	if value > MaxPixelParam {
		return New(ErrCodeInvalidInput, "%s %d exceeds maximum %d", name, value, MaxPixelParam)
	}
	return nil
}

// ValidateImageSize rejects images larger than [MaxImagePixels].
func ValidateImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "image would be empty (%dx%d)", width, height)
	}
	if int64(width)*int64(height) > MaxImagePixels {
		return New(ErrCodeInvalidInput, "image %dx%d exceeds %d pixels", width, height, MaxImagePixels)
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
