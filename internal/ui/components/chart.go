package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// patternSeries holds a rough price shape for each pattern a question can
// name. Values are 0-7 and index sparkLevels.
var patternSeries = map[string][]int{
	"uptrend":                    {1, 2, 2, 3, 3, 4, 5, 5, 6, 7},
	"downtrend":                  {7, 6, 6, 5, 4, 4, 3, 2, 2, 1},
	"sideways":                   {3, 4, 3, 4, 3, 4, 3, 4, 3, 4},
	"ascending channel":          {1, 3, 2, 4, 3, 5, 4, 6, 5, 7},
	"descending channel":         {7, 5, 6, 4, 5, 3, 4, 2, 3, 1},
	"ascending triangle":         {1, 6, 3, 6, 4, 6, 5, 6, 7},
	"descending triangle":        {6, 1, 4, 1, 3, 1, 2, 1, 0},
	"symmetrical triangle":       {7, 1, 6, 2, 5, 3, 4, 4},
	"rising wedge":               {1, 3, 2, 4, 3, 5, 4, 5, 2, 0},
	"falling wedge":              {7, 5, 6, 4, 5, 3, 4, 3, 5, 7},
	"bull flag":                  {1, 3, 5, 7, 6, 6, 5, 6, 7},
	"bear flag":                  {7, 5, 3, 1, 2, 2, 3, 2, 1},
	"breakout":                   {3, 4, 3, 4, 3, 4, 3, 5, 6, 7},
	"breakdown":                  {4, 3, 4, 3, 4, 3, 4, 2, 1, 0},
	"support bounce":             {6, 4, 2, 3, 5, 3, 2, 4, 5, 6},
	"resistance rejection":       {1, 3, 5, 4, 2, 4, 5, 3, 2, 1},
	"double top":                 {1, 3, 6, 4, 3, 4, 6, 3, 1, 0},
	"triple top":                 {1, 6, 4, 6, 4, 6, 3, 1},
	"double bottom":              {6, 4, 1, 3, 4, 3, 1, 4, 6, 7},
	"triple bottom":              {6, 1, 3, 1, 3, 1, 4, 6},
	"rounding bottom":            {7, 5, 3, 2, 1, 1, 2, 3, 5, 7},
	"cup and handle":             {6, 4, 2, 1, 2, 4, 6, 5, 6, 7},
	"head and shoulders":         {1, 4, 2, 6, 2, 4, 1, 0},
	"inverse head and shoulders": {6, 3, 5, 1, 5, 3, 6, 7},
}

// Candlestick patterns are drawn as the trend they reverse or confirm.
var bullishCandles = []string{
	"hammer", "inverted hammer", "bullish engulfing", "bullish harami",
	"bullish marubozu", "morning star", "piercing pattern", "three white soldiers",
	"tweezer bottom", "dragonfly doji",
}

var bearishCandles = []string{
	"shooting star", "hanging man", "bearish engulfing", "bearish harami",
	"bearish marubozu", "evening star", "dark cloud cover", "three black crows",
	"tweezer top", "gravestone doji",
}

func init() {
	for _, p := range bullishCandles {
		patternSeries[p] = []int{6, 5, 4, 3, 2, 1, 3, 5}
	}
	for _, p := range bearishCandles {
		patternSeries[p] = []int{1, 2, 3, 4, 5, 6, 4, 2}
	}
	patternSeries["doji"] = []int{3, 4, 3, 4, 4, 3, 4}
}

// RenderChart draws a one-line sparkline for a question's visual. Patterns
// it does not know fall back to a sideways market.
func RenderChart(v *questions.Visual) string {
	if v == nil {
		return ""
	}
	series, ok := patternSeries[strings.ToLower(v.Pattern)]
	if !ok {
		series = patternSeries["sideways"]
	}

	var b strings.Builder
	for _, n := range series {
		r := sparkLevels[min(max(n, 0), len(sparkLevels)-1)]
		b.WriteRune(r)
		b.WriteRune(r)
	}

	color := theme.Bull
	if len(series) > 1 && series[len(series)-1] < series[0] {
		color = theme.Bear
	}
	line := lipgloss.NewStyle().Foreground(color).Render(b.String())
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render(v.Chart + " · " + v.Pattern)
	return line + "\n" + caption
}
