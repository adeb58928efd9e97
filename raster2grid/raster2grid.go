package raster2grid

import (
	"image"
	"image/color"
	i2stypes "img2svg/type"
)

// DefaultThreshold 默认亮度阈值
const DefaultThreshold = 128

// Luminance 计算加权亮度
func Luminance(c i2stypes.RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Classify 将 RGB 缓冲二值化：亮度 <= threshold 的像素为前景
func Classify(buf i2stypes.RGBBuffer, threshold int) i2stypes.PixelGrid {
	w, h := buf.Width, buf.Height
	if w <= 0 || h <= 0 {
		return i2stypes.PixelGrid{}
	}
	pixels := make([]i2stypes.Pixel, w*h)
	t := float64(threshold)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			pixels[y*w+x] = i2stypes.Pixel{
				Selected: Luminance(c) <= t,
				Color:    c,
			}
		}
	}
	return i2stypes.PixelGrid{Width: w, Height: h, Pixels: pixels}
}

// BufferFromImage 把 image.Image 转为非预乘的 RGB 缓冲，alpha 被忽略
func BufferFromImage(img image.Image) i2stypes.RGBBuffer {
	if img == nil {
		return i2stypes.RGBBuffer{}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}
	return i2stypes.RGBBuffer{Width: w, Height: h, Pix: pix}
}

// Mask 生成黑白掩码：黑=前景，白=背景
func Mask(grid i2stypes.PixelGrid) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := uint8(255)
			if grid.At(x, y).Selected {
				v = 0
			}
			mask.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return mask
}
