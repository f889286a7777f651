package oss

import (
	"bytes"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"okr_backend/internals/configs"
)

var imageExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {},
}

// IsImagePath reports whether the upload should go through webp recoding.
func IsImagePath(name string) bool {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return false
	}
	_, ok := imageExts[strings.ToLower(name[dot:])]
	return ok
}

// ConvertToWebP decodes an uploaded image, caps its width, and re-encodes it
// as webp. Quality and max width come from ENV so ops can tune them without
// a redeploy.
func ConvertToWebP(src []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	maxWidth := configs.GetEnvInt("IMAGE_MAX_WIDTH", 1600)
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	quality := float32(configs.GetEnvInt("WEBP_QUALITY", 80))

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WebPName rewrites the extension of an uploaded image name.
func WebPName(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return name + ".webp"
	}
	return name[:dot] + ".webp"
}
