package handler

import (
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// moneyPrinter formats dollar amounts with US grouping and two decimals.
var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Money formatting. Estimates are computed unrounded; display
		// rounds to cents here and nowhere else.
		"money": func(v float64) string {
			return moneyPrinter.Sprintf("$%.2f", v)
		},

		// Percent formatting for fractional rates, e.g. 0.15 -> "15%".
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},

		"year": func() int {
			return time.Now().Year()
		},

		// dict builds a map from key/value pairs, for passing composite
		// data into nested templates.
		"dict": func(values ...interface{}) map[string]interface{} {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil
				}
				dict[key] = values[i+1]
			}
			return dict
		},

		// Form helpers
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`, template.HTMLEscapeString(token)))
		},
	}
}
