package questions

// Category labels a question's topic. The chart decks use the pattern
// groups below; the indicator deck uses finer topics such as "RSI".
type Category string

const (
	SupportResistance    Category = "Support & Resistance"
	CandlestickPatterns  Category = "Candlestick Patterns"
	ChartPatterns        Category = "Chart Patterns"
	TrendAnalysis        Category = "Trend Analysis"
	ReversalPatterns     Category = "Reversal Patterns"
	ContinuationPatterns Category = "Continuation Patterns"
	General              Category = "General"
)

// PatternGroups returns the top-level groups in display order.
func PatternGroups() []Category {
	return []Category{
		SupportResistance,
		CandlestickPatterns,
		ChartPatterns,
		TrendAnalysis,
		ReversalPatterns,
		ContinuationPatterns,
	}
}

var topicGroups = map[Category]Category{
	"RSI":                  TrendAnalysis,
	"MACD":                 TrendAnalysis,
	"Bollinger Bands":      TrendAnalysis,
	"Moving Averages":      TrendAnalysis,
	"Volume":               TrendAnalysis,
	"Candlesticks":         CandlestickPatterns,
	"Chart Patterns":       ChartPatterns,
	"Support & Resistance": SupportResistance,
	"Fibonacci":            SupportResistance,
	"Risk Management":      ContinuationPatterns,
	"Psychology":           ReversalPatterns,
}

// GroupOf maps a category to its pattern group. Pattern groups map to
// themselves and anything unrecognised falls into General.
func GroupOf(c Category) Category {
	if g, ok := topicGroups[c]; ok {
		return g
	}
	for _, g := range PatternGroups() {
		if g == c {
			return c
		}
	}
	return General
}
