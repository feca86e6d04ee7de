// Package render draws a laid out timeline day as SVG.
package render

import (
	"fmt"
	"os"
	"strings"

	"slotline/models"

	"gopkg.in/yaml.v3"
)

// Style controls the size and colours of the drawing.
type Style struct {
	Width      int    `yaml:"width"`       // total SVG width in pixels
	LabelWidth int    `yaml:"label_width"` // left column holding participant names
	RowHeight  int    `yaml:"row_height"`
	HeaderSize int    `yaml:"header_size"` // height of the hour header
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
	Colors     struct {
		Background string `yaml:"background"`
		Grid       string `yaml:"grid"`
		Text       string `yaml:"text"`
		Busy       string `yaml:"busy"`
		Loading    string `yaml:"loading"`
		Candidate  string `yaml:"candidate"`
		Conflict   string `yaml:"conflict"`
	} `yaml:"colors"`
}

func DefaultStyle() Style {
	s := Style{
		Width:      1000,
		LabelWidth: 180,
		RowHeight:  28,
		HeaderSize: 24,
		FontFamily: "Arial, sans-serif",
		FontSize:   12,
	}
	s.Colors.Background = "#ffffff"
	s.Colors.Grid = "#e0e0e0"
	s.Colors.Text = "#333333"
	s.Colors.Busy = "#db2828"
	s.Colors.Loading = "#bdbdbd"
	s.Colors.Candidate = "#00b5ad"
	s.Colors.Conflict = "#f2711c"
	return s
}

// LoadStyle reads a yaml style file over DefaultStyle. An empty path yields
// the defaults.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("error reading style file: %w", err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("error parsing style file: %w", err)
	}
	return style, nil
}

// trackX maps a percentage of the window onto the drawing.
func (s Style) trackX(percent float64) float64 {
	return float64(s.LabelWidth) + percent/100*float64(s.trackWidth())
}

func (s Style) trackWidth() int {
	return max(s.Width-s.LabelWidth, 1)
}

// SVG renders layout as a standalone SVG document.
func SVG(layout models.TimelineLayout, style Style) string {
	rows := len(layout.Busy) + len(layout.Rows)
	height := style.HeaderSize + rows*style.RowHeight + style.RowHeight/2

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, style.Width, height, style.Colors.Background))

	drawHourGrid(&svg, layout, style, height)

	y := style.HeaderSize
	for _, p := range layout.Busy {
		drawLabel(&svg, p.Participant.Name, y, style)
		color := style.Colors.Busy
		if p.BusySlotsLoading {
			color = style.Colors.Loading
		}
		for _, g := range p.BusySlots {
			drawBlock(&svg, g, y, color, "", style)
		}
		y += style.RowHeight
	}

	for _, row := range layout.Rows {
		for _, slot := range row {
			color := style.Colors.Candidate
			if len(slot.BusyParticipants) > 0 {
				color = style.Colors.Conflict
			}
			drawBlock(&svg, slot.Geometry, y, color, slot.Text, style)
		}
		y += style.RowHeight
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func drawHourGrid(svg *strings.Builder, layout models.TimelineLayout, style Style, height int) {
	span := layout.Window.Span()
	if span <= 0 {
		return
	}
	for _, h := range layout.HourSeries {
		x := style.trackX(float64(h-layout.Window.MinHour) / float64(span) * 100)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`,
			x, style.HeaderSize, x, height, style.Colors.Grid))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" text-anchor="middle" font-family="%s" font-size="%d" fill="%s">%s</text>`,
			x, style.HeaderSize-8, style.FontFamily, style.FontSize, style.Colors.Text, models.FromHour(h)))
		svg.WriteString("\n")
	}
}

func drawLabel(svg *strings.Builder, text string, y int, style Style) {
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-family="%s" font-size="%d" fill="%s">%s</text>`,
		y+style.RowHeight/2+style.FontSize/3, style.FontFamily, style.FontSize, style.Colors.Text, escapeXML(text)))
	svg.WriteString("\n")
}

// drawBlock writes one rect. A non-empty title is nested inside it so viewers show it on hover.
func drawBlock(svg *strings.Builder, g models.Geometry, y int, color, title string, style Style) {
	w := g.Width / 100 * float64(style.trackWidth())
	svg.WriteString(fmt.Sprintf(`<rect id="%s" x="%.1f" y="%d" width="%.1f" height="%d" rx="3" fill="%s"`,
		escapeXML(g.Key), style.trackX(g.Position), y+3, w, style.RowHeight-6, color))
	if title == "" {
		svg.WriteString("/>\n")
		return
	}
	svg.WriteString(fmt.Sprintf(`><title>%s</title></rect>`, escapeXML(title)))
	svg.WriteString("\n")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
