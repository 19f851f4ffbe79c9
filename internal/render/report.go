package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginTop(1)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(0, 2).Width(24)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cellStyle   = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	nameStyle   = lipgloss.NewStyle().Width(6)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Report renders snap as a terminal report: one torque card per actuated joint,
// colored by the running-max gradient, followed by the coordinates table.
func Report(snap view.Snapshot) string {
	cards := make([]string, 0, 3)
	for _, j := range arm.ActuatedJoints() {
		t := snap.Torques.At(j)
		c := lipgloss.Color(view.Hex(snap.Colors[j]))
		cards = append(cards, cardStyle.BorderForeground(c).Render(lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(string(j)),
			lipgloss.NewStyle().Foreground(c).Bold(true).Render(t.FormatNm()+" Nm"),
			valueStyle.Render(t.FormatKgfCm()+" kgf·cm"),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Joint torques"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		headerStyle.Render("Coordinates"),
		coordinatesTable(snap.Frame),
		noteStyle.Render(paramsLine(snap.Params)),
	)
}

func coordinatesTable(f arm.JointFrame) string {
	rows := []string{
		labelStyle.Render(nameStyle.Render("Joint") + cellStyle.Render("X (cm)") + cellStyle.Render("Y (cm)")),
	}
	for _, j := range arm.AllJoints() {
		p := f.At(j)
		rows = append(rows, nameStyle.Render(string(j))+
			cellStyle.Render(fmt.Sprintf("%.2f", arm.Round2(p.X)))+
			cellStyle.Render(fmt.Sprintf("%.2f", arm.Round2(p.Y))))
	}
	return strings.Join(rows, "\n")
}

func paramsLine(p arm.Params) string {
	return fmt.Sprintf("angles %g/%g/%g°  lengths %g/%g/%g cm  masses %g/%g/%g kg  (gravity only)",
		p.Angles.L1, p.Angles.L2, p.Angles.L3,
		p.Lengths.L1, p.Lengths.L2, p.Lengths.L3,
		p.Masses.M2, p.Masses.M3, p.Masses.Load)
}
