package main

import (
	"context"
	"fmt"
	"img2svg/color2svg"
	"img2svg/config"
	"img2svg/image2svg"
	"img2svg/json2bas"
	"img2svg/raster2grid"
	"img2svg/svg2json"
	i2stypes "img2svg/type"
	"img2svg/video2frame"
	"io"
	"log"
	"os"
	"strconv"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatBAS  = "bas"
)

// generateImage 处理单张图片，返回指定格式的输出
func generateImage(ctx context.Context, inputPath string, cfg *config.TraceConfig, format string) ([]byte, error) {
	if format == formatBAS {
		return nil, fmt.Errorf("format %q requires -video", format)
	}
	tracer := image2svg.New(cfg.Options())
	src := raster2grid.FileSource{Path: inputPath}

	var svgStr string
	if cfg.GetEngine() == config.EnginePotrace {
		buf, err := src.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", image2svg.ErrAcquisition, err)
		}
		svgStr, err = tracer.TraceMask(buf)
		if err != nil {
			return nil, fmt.Errorf("potrace: %w", err)
		}
	} else {
		doc, err := tracer.TraceSource(ctx, src)
		if err != nil {
			return nil, err
		}
		log.Printf("Traced %s: %d paths\n", inputPath, len(doc.Paths))
		svgStr, err = color2svg.RenderSVG(doc)
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case formatSVG:
		return []byte(svgStr), nil
	case formatJSON:
		return svg2json.ParseFrameJSON(i2stypes.FrameSVG{
			Layers: []i2stypes.LayerSVG{{SVGData: svgStr}},
		})
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func generateImageToFile(ctx context.Context, inputPath string, cfg *config.TraceConfig, format, outputPath string) error {
	data, err := generateImage(ctx, inputPath, cfg, format)
	if err != nil {
		return err
	}
	if outputPath == "" || outputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// generateVideoFrames 抽帧并逐帧转为 SVG
func generateVideoFrames(ctx context.Context, videoPath string, cfg *config.TraceConfig, parallel int) ([]i2stypes.FrameSVG, error) {
	if total, err := video2frame.CountFrames(videoPath); err != nil {
		log.Printf("Count frames of %s: %v\n", videoPath, err)
	} else {
		log.Printf("Source video has %d frames\n", total)
	}
	log.Println("Extracting frames from video...")
	frames, err := video2frame.ExtractFrames(ctx, videoPath, cfg.GetFPS(), cfg.GetMaxWidth())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", image2svg.ErrAcquisition, err)
	}
	log.Printf("Extracted %d frames\n", len(frames))

	log.Println("Converting frames to SVG...")
	docs, err := image2svg.TraceFrames(ctx, frames, cfg.Options(), parallel)
	if err != nil {
		return nil, err
	}
	return color2svg.ConvertToSVG(docs)
}

func generateVideoToFile(ctx context.Context, videoPath string, cfg *config.TraceConfig, format, outputPath string, maxFileSize, parallel int) error {
	if cfg.GetEngine() != config.EngineNative {
		return fmt.Errorf("engine %q is not supported for video input", cfg.GetEngine())
	}
	if outputPath == "" {
		outputPath = "output/video"
	}
	svgFrames, err := generateVideoFrames(ctx, videoPath, cfg, parallel)
	if err != nil {
		return err
	}

	switch format {
	case formatSVG:
		for _, f := range svgFrames {
			name := outputPath + "_" + strconv.Itoa(f.FrameIndex) + ".svg"
			if err := os.WriteFile(name, []byte(f.Layers[0].SVGData), 0644); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		data, err := svg2json.ParseAllFrameJSON(svgFrames)
		if err != nil {
			return err
		}
		return os.WriteFile(outputPath+".json", data, 0644)
	case formatBAS:
		lines, err := generateBas(svgFrames, float64(cfg.GetFPS()), parallel)
		if err != nil {
			return err
		}
		return writeSplitFiles(lines, outputPath, ".bas", maxFileSize)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func generateBas(svgFrames []i2stypes.FrameSVG, fps float64, parallel int) ([]string, error) {
	if len(svgFrames) == 0 {
		return nil, nil
	}
	data := svg2json.ParseAllFrame(svgFrames)
	box, err := svg2json.ParseViewBox(svgFrames[0].Layers[0].SVGData)
	if err != nil {
		return nil, err
	}
	log.Println("Generating BAS code...")
	return json2bas.GenerateAllBasTextWithParallel(data, box[2], box[3], fps, 0, parallel), nil
}

// writeSplitFiles 按行写入，单个文件超过 maxFileSize 时切换到下一个文件
func writeSplitFiles(lines []string, outputPath, ext string, maxFileSize int) error {
	fileID := 0
	currentFileSize := 0
	var currentFile *os.File
	closeCurrent := func() error {
		if currentFile == nil {
			return nil
		}
		err := currentFile.Close()
		currentFile = nil
		return err
	}
	defer closeCurrent()

	for _, line := range lines {
		lineSize := len(line) + 1 // +1 for newline
		if currentFile == nil || currentFileSize+lineSize > maxFileSize {
			if err := closeCurrent(); err != nil {
				return err
			}
			f, err := os.Create(outputPath + "_" + strconv.Itoa(fileID) + ext)
			if err != nil {
				return err
			}
			currentFile = f
			fileID++
			currentFileSize = 0
		}
		if _, err := io.WriteString(currentFile, line+"\n"); err != nil {
			return err
		}
		currentFileSize += lineSize
	}
	return closeCurrent()
}
