package raster2grid

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	i2stypes "img2svg/type"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileSource 从磁盘读取并解码图片
type FileSource struct {
	Path string
}

func (s FileSource) Acquire(ctx context.Context) (i2stypes.RGBBuffer, error) {
	if err := ctx.Err(); err != nil {
		return i2stypes.RGBBuffer{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return i2stypes.RGBBuffer{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return i2stypes.RGBBuffer{}, fmt.Errorf("decode image %s: %w", s.Path, err)
	}
	return BufferFromImage(img), nil
}

// ImageSource 包装已解码的图片
type ImageSource struct {
	Image image.Image
}

func (s ImageSource) Acquire(context.Context) (i2stypes.RGBBuffer, error) {
	if s.Image == nil {
		return i2stypes.RGBBuffer{}, errors.New("nil image")
	}
	return BufferFromImage(s.Image), nil
}
