package main

import (
	"context"
	"flag"
	"img2svg/config"
	"img2svg/image2svg"
	"log"
	"log/slog"
	"os"
)

func main() {
	defaults := config.DefaultTraceConfig()

	inputPath := flag.String("input", "", "图片文件路径")
	videoPath := flag.String("video", "", "视频文件路径")
	savePath := flag.String("output", "", "输出文件路径，留空则输出到标准输出")
	format := flag.String("format", formatSVG, "输出格式：svg、json 或 bas（仅视频）")
	engine := flag.String("engine", defaults.GetEngine(), "描边引擎：native 或 potrace")
	configPath := flag.String("config", "", "JSON 配置文件路径")
	threshold := flag.Int("threshold", defaults.GetThreshold(), "亮度阈值，亮度不大于该值的像素为前景")
	tolerance := flag.Int("tolerance", defaults.GetColorTolerance(), "颜色分组的每通道容差")
	epsilon := flag.Float64("epsilon", defaults.GetEpsilon(), "路径简化容差")
	fps := flag.Int("fps", defaults.GetFPS(), "每秒帧数")
	maxWidth := flag.Int("width", defaults.GetMaxWidth(), "视频缩放后的最大宽度")
	maxFileSize := flag.Int("maxsize", 2*1024*1024, "单个输出文件最大尺寸，单位字节")
	parallel := flag.Int("parallel", 4, "并行处理的最大协程数")
	verbose := flag.Bool("v", false, "输出调试日志")

	help := flag.Bool("help", false, "显示帮助信息")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}
	if (*inputPath == "") == (*videoPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		image2svg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadTraceConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// 命令行显式给出的参数覆盖配置文件
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			cfg.Threshold = threshold
		case "tolerance":
			cfg.ColorTolerance = tolerance
		case "epsilon":
			cfg.Epsilon = epsilon
		case "engine":
			cfg.Engine = engine
		case "fps":
			cfg.FPS = fps
		case "width":
			cfg.MaxWidth = maxWidth
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var err error
	if *videoPath != "" {
		err = generateVideoToFile(ctx, *videoPath, cfg, *format, *savePath, *maxFileSize, *parallel)
	} else {
		err = generateImageToFile(ctx, *inputPath, cfg, *format, *savePath)
	}
	if err != nil {
		log.Fatal(err)
	}
}
