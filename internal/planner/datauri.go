package planner

import (
	"encoding/base64"
	"fmt"
	"strings"
)

type imageData struct {
	format string
	data   []byte
}

// parseImageDataURI accepts base64 image data URIs such as the logo upload
// ("data:image/png;base64,...").
func parseImageDataURI(uri string) (imageData, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return imageData{}, fmt.Errorf("logo is not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return imageData{}, fmt.Errorf("malformed data URI")
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	format, ok := strings.CutPrefix(mime, "image/")
	if !ok || format == "" {
		return imageData{}, fmt.Errorf("unsupported logo type %q", mime)
	}
	if encoding != "base64" {
		return imageData{}, fmt.Errorf("logo data URI must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return imageData{}, fmt.Errorf("decode logo: %w", err)
	}
	if format == "jpg" {
		format = "jpeg"
	}
	return imageData{format: format, data: data}, nil
}
