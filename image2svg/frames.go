package image2svg

import (
	"context"
	"errors"
	"fmt"
	"img2svg/raster2grid"
	i2stypes "img2svg/type"
	"sync"
)

// TraceFrames 并行处理多帧，parallel 为最大协程数。
// 每个协程持有自己的 Tracer；结果顺序与输入一致。
// 任一帧失败或 ctx 取消后，尚未开始的帧不再处理。
func TraceFrames(ctx context.Context, frames []i2stypes.Frame, opt Options, parallel int) ([]i2stypes.Document, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames provided")
	}
	if parallel <= 0 {
		parallel = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]i2stypes.Document, len(frames))
	errs := make(chan error, len(frames))
	sem := make(chan struct{}, parallel)

	var wg sync.WaitGroup
	for i, f := range frames {
		wg.Add(1)
		go func(idx int, frame i2stypes.Frame) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs <- fmt.Errorf("frame %d: %w", frame.Index, ctx.Err())
				return
			}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				errs <- fmt.Errorf("frame %d: %w", frame.Index, err)
				return
			}

			doc, err := New(opt).TraceSource(ctx, raster2grid.ImageSource{Image: frame.Image})
			if err != nil {
				errs <- fmt.Errorf("frame %d: %w", frame.Index, err)
				cancel()
				return
			}
			results[idx] = doc
		}(i, f)
	}

	wg.Wait()
	close(errs)

	// 返回第一个错误（如果有）
	for err := range errs {
		return nil, err
	}
	return results, nil
}
