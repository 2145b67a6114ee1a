package render

import (
	"github.com/wonny/covid-europe/internal/transform"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// ChartSpec is a Vega-Lite specification
type ChartSpec map[string]interface{}

// areaChart is an unstacked, translucent area chart colored by country with
// zoom and pan bound to the scales
func areaChart(title, yTitle, yFormat, tooltipFormat string, points []transform.Point) ChartSpec {
	if points == nil {
		points = []transform.Point{}
	}

	y := map[string]interface{}{
		"field": "value",
		"type":  "quantitative",
		"stack": nil,
		"title": yTitle,
	}
	if yFormat != "" {
		y["axis"] = map[string]interface{}{"format": yFormat}
	}

	valueTooltip := map[string]interface{}{"field": "value", "type": "quantitative", "title": yTitle}
	if tooltipFormat != "" {
		valueTooltip["format"] = tooltipFormat
	}

	return ChartSpec{
		"$schema": vegaLiteSchema,
		"title":   title,
		"width":   "container",
		"height":  320,
		"data":    map[string]interface{}{"values": points},
		"mark":    map[string]interface{}{"type": "area", "opacity": 0.3},
		"encoding": map[string]interface{}{
			"x":     map[string]interface{}{"field": "date", "type": "temporal", "title": "Date"},
			"y":     y,
			"color": map[string]interface{}{"field": "Country", "type": "nominal"},
			"tooltip": []interface{}{
				map[string]interface{}{"field": "Country", "type": "nominal"},
				map[string]interface{}{"field": "date", "type": "temporal", "title": "Week"},
				valueTooltip,
			},
		},
		"params": []interface{}{
			map[string]interface{}{
				"name":   "zoom",
				"select": "interval",
				"bind":   "scales",
			},
		},
	}
}

// PositivityChart charts positivity as a fraction, shown as percent
func PositivityChart(points []transform.Point) ChartSpec {
	return areaChart(TestingTitle, "Positivity Rate", ".0%", ".2%", points)
}

// CaseRateChart charts the 14-day notification rate
func CaseRateChart(points []transform.Point) ChartSpec {
	return areaChart(CasesTitle, "Number of Cases", "", "", points)
}
