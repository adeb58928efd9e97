package video2frame

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	i2stypes "img2svg/type"
	"io"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExtractFrames 用 ffmpeg 按 fps 抽帧并缩放到 maxWidth，逐帧解码 PNG
func ExtractFrames(ctx context.Context, videoPath string, fps, maxWidth int) ([]i2stypes.Frame, error) {
	if fps <= 0 {
		fps = 1
	}

	r, w := io.Pipe()

	cmd := ffmpeg.Input(videoPath).
		Output("pipe:1", ffmpeg.KwArgs{
			"format": "image2pipe",
			"vcodec": "png",
			"r":      strconv.Itoa(fps),
			"vf":     fmt.Sprintf("scale=%d:-1", maxWidth),
		}).
		WithOutput(w).
		WithErrorOutput(os.Stderr)
	cmd.Context = ctx

	done := make(chan error, 1)
	go func() {
		err := cmd.Run()
		w.CloseWithError(err)
		done <- err
	}()

	frames, decodeErr := decodeFrames(r)
	if decodeErr != nil {
		// 让 ffmpeg 的写端尽快返回
		r.CloseWithError(decodeErr)
	}
	runErr := <-done

	if decodeErr != nil {
		return nil, decodeErr
	}
	if runErr != nil {
		return nil, fmt.Errorf("ffmpeg: %w", runErr)
	}
	if len(frames) == 0 {
		return nil, errors.New("no frames extracted")
	}
	return frames, nil
}

func decodeFrames(r io.Reader) ([]i2stypes.Frame, error) {
	var frames []i2stypes.Frame
	reader := bufio.NewReader(r)
	index := 0

	for {
		if _, err := reader.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return nil, fmt.Errorf("read frame %d: %w", index, err)
		}
		img, _, err := image.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("decode frame %d failed: %w", index, err)
		}
		frames = append(frames, i2stypes.Frame{Index: index, Image: img})
		index++
	}
}

// videoStreams 元数据中只关心视频流
type videoStreams struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		NbFrames     string `json:"nb_frames"`      // 有些视频是字符串
		AvgFrameRate string `json:"avg_frame_rate"` // fallback
		Duration     string `json:"duration"`
	} `json:"streams"`
}

// CountFrames 读取视频元数据中的总帧数
func CountFrames(videoPath string) (int, error) {
	info, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return parseFrameCount(info)
}

func parseFrameCount(info string) (int, error) {
	var meta videoStreams
	if err := json.Unmarshal([]byte(info), &meta); err != nil {
		return 0, fmt.Errorf("json unmarshal error: %w", err)
	}

	for _, stream := range meta.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if stream.NbFrames != "" && stream.NbFrames != "0" {
			if n, err := strconv.Atoi(stream.NbFrames); err == nil {
				return n, nil
			}
		}
		// 没有 nb_frames 时用 avg_frame_rate * duration 估算
		if rate, ok := parseRate(stream.AvgFrameRate); ok {
			if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				return int(rate * d), nil
			}
		}
	}

	return 0, errors.New("no video stream found or cannot determine frame count")
}

func parseRate(s string) (float64, bool) {
	if s == "" || s == "0/0" {
		return 0, false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}
