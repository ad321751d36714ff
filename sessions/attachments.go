package sessions

import (
	"clementus360/smarti-ai/types"
	"fmt"
	"strings"
)

const (
	MaxImageBytes = 20 * 1024 * 1024
	MaxFileBytes  = 50 * 1024 * 1024
)

var imageDetails = map[string]bool{"": true, "low": true, "high": true, "auto": true}

func validateImage(img *types.Image) error {
	if img == nil {
		return nil
	}
	if strings.TrimSpace(img.URL) == "" {
		return fmt.Errorf("%w: image url is empty", ErrInvalidAttachment)
	}
	if !imageDetails[img.Detail] {
		return fmt.Errorf("%w: unknown image detail %q", ErrInvalidAttachment, img.Detail)
	}

	if rest, ok := strings.CutPrefix(img.URL, "data:"); ok {
		meta, payload, _ := strings.Cut(rest, ",")
		if !strings.HasPrefix(meta, "image/") {
			return fmt.Errorf("%w: please upload an image file", ErrInvalidAttachment)
		}
		if decodedSize(payload) > MaxImageBytes {
			return fmt.Errorf("%w: image size must be less than 20MB", ErrInvalidAttachment)
		}
	}
	return nil
}

func validateFile(file *types.File) error {
	if file == nil {
		return nil
	}
	if strings.TrimSpace(file.Name) == "" || strings.TrimSpace(file.URL) == "" {
		return fmt.Errorf("%w: file name and url are required", ErrInvalidAttachment)
	}
	if file.Size < 0 || file.Size > MaxFileBytes {
		return fmt.Errorf("%w: file size must be less than 50MB", ErrInvalidAttachment)
	}
	return nil
}

// decodedSize approximates the byte length of a base64 payload.
func decodedSize(payload string) int {
	return len(payload) * 3 / 4
}
