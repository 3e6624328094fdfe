package app

// Exported for testing.
var (
	RenderText  = renderText
	FormatValue = formatValue
)
