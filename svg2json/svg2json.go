package svg2json

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	i2stypes "img2svg/type"
	"strconv"
	"strings"
	"sync"

	"github.com/rustyoz/svg"
)

func ParseAllFrame(frames []i2stypes.FrameSVG) []i2stypes.FrameData {

	results := make([]i2stypes.FrameData, len(frames))

	var wg sync.WaitGroup
	for i, f := range frames {
		wg.Add(1)
		go func(idx int, frame i2stypes.FrameSVG) {
			defer wg.Done()
			results[idx] = ParseFrame(frame)
		}(i, f)
	}

	wg.Wait()

	return results
}

// ParseFrame 接收 FrameSVG，按填充色合并 path，颜色按首次出现的顺序排列
func ParseFrame(frame i2stypes.FrameSVG) i2stypes.FrameData {
	var order []string
	byColor := map[string][]string{}

	for _, layer := range frame.Layers {
		for _, p := range extractPaths(layer.SVGData) {
			if p.D == "" {
				continue
			}
			c := strings.TrimPrefix(p.Fill, "#")
			if _, ok := byColor[c]; !ok {
				order = append(order, c)
			}
			byColor[c] = append(byColor[c], p.D)
		}
	}

	result := make([]map[string]string, 0, len(order))
	for _, c := range order {
		result = append(result, map[string]string{
			"color":    c,
			"pathdata": strings.Join(byColor[c], " "),
		})
	}

	return i2stypes.FrameData{
		FrameIndex: frame.FrameIndex,
		Data:       result,
	}
}

// ParseFrameJSON 返回 JSON 字符串
func ParseFrameJSON(frame i2stypes.FrameSVG) ([]byte, error) {
	fd := ParseFrame(frame)
	return json.MarshalIndent([]i2stypes.FrameData{fd}, "", "  ")
}

// ParseAllFrameJSON 多帧的 JSON
func ParseAllFrameJSON(frames []i2stypes.FrameSVG) ([]byte, error) {
	return json.MarshalIndent(ParseAllFrame(frames), "", "  ")
}

type svgPath struct {
	D    string `xml:"d,attr"`
	Fill string `xml:"fill,attr"`
}

// extractPaths 从 SVG 字符串中提取所有 <path> 的 d 和 fill 属性
func extractPaths(data string) []svgPath {
	type SVG struct {
		Paths []svgPath `xml:"path"`
		Group []struct {
			Paths []svgPath `xml:"path"`
		} `xml:"g"`
	}

	var s SVG
	if err := xml.Unmarshal([]byte(data), &s); err != nil {
		return nil
	}

	paths := append([]svgPath(nil), s.Paths...)
	for _, g := range s.Group {
		paths = append(paths, g.Paths...)
	}
	return paths
}

// ParseViewBox 读取根元素的 viewBox；没有 viewBox 时用 width/height
func ParseViewBox(data string) ([4]int, error) {
	var box [4]int
	parsed, err := svg.ParseSvg(data, "frame", 1.0)
	if err != nil {
		return box, fmt.Errorf("parse svg: %w", err)
	}

	if fields := strings.Fields(strings.ReplaceAll(parsed.ViewBox, ",", " ")); len(fields) == 4 {
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return box, fmt.Errorf("parse viewBox %q: %w", parsed.ViewBox, err)
			}
			box[i] = int(v)
		}
		return box, nil
	}

	var root struct {
		Width  string `xml:"width,attr"`
		Height string `xml:"height,attr"`
	}
	if err := xml.Unmarshal([]byte(data), &root); err != nil {
		return box, fmt.Errorf("parse svg: %w", err)
	}
	w, errW := strconv.Atoi(strings.TrimSuffix(root.Width, "px"))
	h, errH := strconv.Atoi(strings.TrimSuffix(root.Height, "px"))
	if errW != nil || errH != nil {
		return box, errors.New("svg has neither viewBox nor integer width/height")
	}
	box[2], box[3] = w, h
	return box, nil
}
