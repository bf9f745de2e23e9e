package storage

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"estatehub_backend/internals/configs"
)

type WebPOptions struct {
	MaxWidth int
	Quality  float32
}

func defaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxWidth: configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1920),
		Quality:  float32(configs.GetEnvFloat("IMAGE_WEBP_QUALITY", 80)),
	}
}

// decodeImage fails for bytes that are not a decodable jpeg, png, gif or webp.
func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrBadContent
	}
	return img, nil
}

func downscale(img image.Image, maxW int) image.Image {
	if maxW <= 0 || img.Bounds().Dx() <= maxW {
		return img
	}
	return imaging.Resize(img, maxW, 0, imaging.Lanczos)
}

// toWebP re-encodes jpeg and png uploads; other formats are returned untouched.
func toWebP(name string, data []byte, opt WebPOptions) (string, []byte, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return name, data, nil
	}
	img, err := decodeImage(data)
	if err != nil {
		return "", nil, err
	}
	img = downscale(img, opt.MaxWidth)
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return "", nil, err
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".webp", buf.Bytes(), nil
}
