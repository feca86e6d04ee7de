package tui

import (
	"fmt"
	"math"
	"strings"

	"slotline/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00b5ad"))
	LabelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	HeaderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BusyStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#db2828")).Foreground(lipgloss.Color("#ffffff"))
	LoadingStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#555555"))
	CandidateStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#00b5ad")).Foreground(lipgloss.Color("#000000"))
	ConflictStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#f2711c")).Foreground(lipgloss.Color("#000000"))
	PlaceholderStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a")).Foreground(lipgloss.Color("#dddddd"))
	TrackStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))
	FooterStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// cellRange maps a geometry onto terminal columns [from, to) of a track.
func cellRange(g models.Geometry, trackWidth int) (int, int) {
	from := int(math.Floor(g.Position / 100 * float64(trackWidth)))
	n := max(1, int(math.Round(g.Width/100*float64(trackWidth))))
	from = min(max(from, 0), trackWidth-1)
	return from, min(from+n, trackWidth)
}

type block struct {
	geometry models.Geometry
	style    lipgloss.Style
	text     string
}

// renderTrack draws blocks over an empty track of width columns.
func renderTrack(width int, blocks []block) string {
	owner := make([]int, width)
	for i := range owner {
		owner[i] = -1
	}
	text := make([]rune, width)
	for i := range text {
		text[i] = '·'
	}
	for bi, b := range blocks {
		from, to := cellRange(b.geometry, width)
		label := []rune(b.text)
		for c := from; c < to; c++ {
			owner[c] = bi
			text[c] = ' '
			if k := c - from; k < len(label) && len(label) <= to-from {
				text[c] = label[k]
			}
		}
	}

	var sb strings.Builder
	for c := 0; c < width; {
		end := c
		for end < width && owner[end] == owner[c] {
			end++
		}
		seg := string(text[c:end])
		if owner[c] < 0 {
			sb.WriteString(TrackStyle.Render(seg))
		} else {
			sb.WriteString(blocks[owner[c]].style.Render(seg))
		}
		c = end
	}
	return sb.String()
}

func label(s string) string {
	r := []rune(s)
	if len(r) > labelWidth-1 {
		r = append(r[:labelWidth-2], '…')
	}
	return LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, string(r)))
}

func (m *Model) renderHeader(width int) string {
	line := []rune(strings.Repeat(" ", width))
	span := m.layout.Window.Span()
	for _, h := range m.layout.HourSeries {
		col := int(float64(h-m.layout.Window.MinHour) / float64(span) * float64(width))
		tick := []rune(fmt.Sprintf("%02d", h))
		col = min(col, width-len(tick))
		for i, r := range tick {
			if col+i >= 0 && col+i < width {
				line[col+i] = r
			}
		}
	}
	return strings.Repeat(" ", labelWidth) + HeaderStyle.Render(string(line))
}

func (m *Model) View() string {
	width := m.trackWidth()
	lines := []string{
		TitleStyle.Render(fmt.Sprintf("slotline  %s", m.date)) +
			LabelStyle.Render(fmt.Sprintf("  %d min  window %02d:00-%02d:00  next %s",
				m.duration, m.layout.Window.MinHour, m.layout.Window.MaxHour, m.layout.NextStartTime)),
		m.renderHeader(width),
	}

	for _, p := range m.layout.Busy {
		style := BusyStyle
		if p.BusySlotsLoading {
			style = LoadingStyle
		}
		blocks := make([]block, 0, len(p.BusySlots))
		for _, g := range p.BusySlots {
			blocks = append(blocks, block{geometry: g, style: style})
		}
		name := p.Participant.Name
		if name == "" {
			name = p.Participant.Email
		}
		lines = append(lines, label(name)+renderTrack(width, blocks))
	}

	for i, row := range m.layout.Rows {
		blocks := make([]block, 0, len(row))
		for _, slot := range row {
			style := CandidateStyle
			if len(slot.BusyParticipants) > 0 {
				style = ConflictStyle
			}
			blocks = append(blocks, block{geometry: slot.Geometry, style: style, text: slot.Time.String()})
		}
		name := ""
		if i == 0 {
			name = "candidates"
		}
		lines = append(lines, label(name)+renderTrack(width, blocks))
	}

	var placeholder []block
	if p := m.surface.Placeholder(); p.Visible {
		placeholder = append(placeholder, block{geometry: p.Geometry, style: PlaceholderStyle, text: "+" + p.Geometry.StartTime.String()})
	}
	lines = append(lines, label("new")+renderTrack(width, placeholder))

	lines = append(lines, "", FooterStyle.Render("click: add  right click: remove  a: add next  y: copy previous day  ←/→: day  q: quit"))
	if m.message != "" {
		lines = append(lines, LabelStyle.Render(m.message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
