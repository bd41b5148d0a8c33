package content

import (
	"io"
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"tprint/common"
)

// applyStyle parses inline style declarations and returns updated format.
// Unknown properties and bad values are logged and skipped.
func applyStyle(style string, f Format, log *zap.Logger) Format {
	parser := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	for {
		gt, _, data := parser.Next()
		if gt == css.ErrorGrammar {
			if err := parser.Err(); err != nil && err != io.EOF {
				log.Warn("Unable to parse style", zap.String("style", style), zap.Error(err))
			}
			return f
		}
		if gt != css.DeclarationGrammar {
			continue
		}

		prop := strings.ToLower(string(data))
		var sb strings.Builder
		for _, v := range parser.Values() {
			sb.Write(v.Data)
		}
		value := strings.TrimSpace(sb.String())
		if !applyProperty(&f, prop, value) {
			log.Warn("Ignoring style property", zap.String("property", prop), zap.String("value", value))
		}
	}
}

func applyProperty(f *Format, prop, value string) bool {
	switch prop {
	case "font-family":
		family := strings.TrimSpace(strings.Split(value, ",")[0])
		family = strings.Trim(family, `"'`)
		if len(family) == 0 {
			return false
		}
		f.FontFamily = family
	case "font-size":
		size, ok := parseLength(value, f.FontSize)
		if !ok || size <= 0 {
			return false
		}
		f.FontSize = size
	case "line-height":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 1 {
			return false
		}
		f.LineSpacing = v
	case "letter-spacing":
		if em, ok := strings.CutSuffix(value, "em"); ok {
			v, err := strconv.ParseFloat(em, 64)
			if err != nil {
				return false
			}
			f.CharacterSpacing = int(math.Round(v * 1000))
			return true
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		f.CharacterSpacing = v
	case "text-align":
		a, err := common.ParseTextAlignment(value)
		if err != nil {
			return false
		}
		f.Alignment = a
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return false
		}
		f.Foreground = c
	default:
		return false
	}
	return true
}

// parseLength converts px, pt and em lengths to device independent pixels.
func parseLength(value string, em float64) (float64, bool) {
	units := []struct {
		suffix   string
		mul, div float64
	}{
		{"px", 1, 1},
		{"pt", 96, 72},
		{"em", em, 1},
		{"", 1, 1},
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(value, u.suffix)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, false
		}
		return v * u.mul / u.div, true
	}
	return 0, false
}
