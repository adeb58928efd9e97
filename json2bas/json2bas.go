package json2bas

import (
	"fmt"
	i2stypes "img2svg/type"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DefaultViewBoxH viewBoxH 为 0 时使用的高度
const DefaultViewBoxH = 3620

var (
	tokenRe   = regexp.MustCompile(`-?[0-9]*\.?[0-9]+(?:e[-+]?\d+)?|[MLHVCSQTAZmlhvcsqtaz]|[\s,]+`)
	commandRe = regexp.MustCompile(`^[MLHVCSQTAZmlhvcsqtaz]$`)
)

// FlipSvgPath 翻转 y 轴：绝对坐标 y -> viewBoxH - y，相对坐标取反
func FlipSvgPath(d string, viewBoxH int) string {
	if viewBoxH == 0 {
		viewBoxH = DefaultViewBoxH
	}

	tokens := tokenRe.FindAllString(d, -1)

	var output []string
	var command string
	var params []float64

	processGroup := func(group []float64, isAbs bool) []float64 {
		if len(group) == 0 {
			return group
		}
		switch command {
		case "V":
			return []float64{float64(viewBoxH) - group[0]}
		case "v":
			return []float64{-group[0]}
		case "A":
			return []float64{group[0], group[1], group[2], group[3], group[4], group[5], float64(viewBoxH) - group[6]}
		case "a":
			return []float64{group[0], group[1], group[2], group[3], group[4], group[5], -group[6]}
		default:
			res := make([]float64, len(group))
			for i, val := range group {
				if i%2 == 1 {
					if isAbs {
						res[i] = float64(viewBoxH) - val
					} else {
						res[i] = -val
					}
				} else {
					res[i] = val
				}
			}
			return res
		}
	}

	getGroupSize := func(cmd string) int {
		switch strings.ToUpper(cmd) {
		case "H", "V":
			return 1
		case "M", "L", "T":
			return 2
		case "S", "Q":
			return 4
		case "C":
			return 6
		case "A":
			return 7
		default:
			return 0
		}
	}

	flush := func() {
		if len(params) == 0 {
			return
		}
		groupSize := getGroupSize(command)
		if groupSize == 0 {
			groupSize = len(params)
		}
		isAbs := command == strings.ToUpper(command)
		for i := 0; i < len(params); i += groupSize {
			processed := processGroup(params[i:min(i+groupSize, len(params))], isAbs)
			strs := make([]string, len(processed))
			for j, v := range processed {
				strs[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			output = append(output, strings.Join(strs, " "))
		}
		params = nil
	}

	for _, token := range tokens {
		t := strings.TrimSpace(token)
		if t == "" || t == "," {
			continue
		}
		if commandRe.MatchString(t) {
			flush()
			command = t
			output = append(output, t)
			continue
		}
		num, _ := strconv.ParseFloat(t, 64)
		params = append(params, num)
	}
	flush()

	return strings.Join(output, " ")
}

// GenerateAllBasTextWithParallel 支持并发上限
func GenerateAllBasTextWithParallel(frames []i2stypes.FrameData, viewBoxW, viewBoxH int, framerate, startTime float64, parallel int) []string {
	results := make([]string, len(frames))
	var wg sync.WaitGroup
	if parallel <= 0 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)
	for i, f := range frames {
		wg.Add(1)
		go func(idx int, frame i2stypes.FrameData) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			bas := GenerateBasText(frame, viewBoxW, viewBoxH, framerate, startTime)
			results[idx] = bas
		}(i, f)
	}
	wg.Wait()
	return results
}

// GenerateBasText 输入 FrameData 输出封装后的字符串
func GenerateBasText(frame i2stypes.FrameData, viewBoxW, viewBoxH int, framerate, startTime float64) string {
	var out strings.Builder

	for _, layer := range frame.Data {
		color := layer["color"]
		if color == "" || layer["pathdata"] == "" {
			continue
		}
		pathData := FlipSvgPath(layer["pathdata"], viewBoxH)
		frameNum := frame.FrameIndex
		name := fmt.Sprintf("%d_%s", frameNum, color)
		displayTime := 1000.0 / framerate
		startOffset := float64(frameNum)/framerate*1000.0 - startTime

		fmt.Fprintf(&out, `
let p%s = path{d = "%s" viewBox="0 0 %d %d" width = 100%% fillColor = 0x%s alpha = 0
borderWidth = 15
    borderColor = 0x%s
}
set p%s {} %dms
then set p%s {alpha = 1} %dms
then set p%s {} %dms
then set p%s {alpha = 0} %dms
`, name, pathData, viewBoxW, viewBoxH, color, color,
			name, int(math.Floor(startOffset)),
			name, 0,
			name, int(math.Floor(displayTime)),
			name, 0,
		)
	}

	return out.String()
}
