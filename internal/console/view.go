package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"LegacyGuardians/internal/ui"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sceneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Bold(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	confirmStyle  = modalStyle.BorderForeground(lipgloss.Color("11"))
)

func (m *Model) View() string {
	var b strings.Builder
	g := m.game
	bind := g.Bind

	g.Doc.Read(func() {
		text := func(id ui.ElementID) string { return bind.Element(id).Text }
		field := func(label, value ui.ElementID) {
			b.WriteString(labelStyle.Render(text(label)+": ") + valueStyle.Render(text(value)) + "\n")
		}
		button := func(key string, id ui.ElementID) string {
			el := bind.Element(id)
			if el.Disabled {
				return disabledStyle.Render(el.Text)
			}
			return buttonStyle.Render(fmt.Sprintf("[%s] %s", key, el.Text))
		}

		b.WriteString(titleStyle.Render("🏰 "+text(ui.MainTitle)) + "\n\n")

		switch bind.ActiveLevel() {
		case 1:
			b.WriteString(sceneStyle.Render(text(ui.L1Title)) + "\n")
			b.WriteString(faintStyle.Render(wrap(text(ui.L1Desc), m.width)) + "\n\n")
			field(ui.L1PrincipalLabel, ui.L1Principal)
			field(ui.L1InterestLabel, ui.L1Interest)
			field(ui.L1GoalLabel, ui.L1Goal)
			b.WriteString("\n")
			for i, c := range bind.Element(ui.L1RateOptions).Controls {
				if i >= 9 {
					break
				}
				b.WriteString(buttonStyle.Render(fmt.Sprintf("[%d] %s", i+1, c.Caption)) + "\n")
			}
			b.WriteString(button("a", ui.L1AdvanceButton) + "\n\n")
			b.WriteString(labelStyle.Render("💡 "+text(ui.L1TipsTitle)) + "\n")
			for _, id := range []ui.ElementID{ui.L1TipPrincipal, ui.L1TipRate, ui.L1TipCompound} {
				b.WriteString(faintStyle.Render(wrap("• "+text(id), m.width)) + "\n")
			}
			b.WriteString(labelStyle.Render("📐 "+text(ui.L1FormulasTitle)) + "\n")
			for _, id := range []ui.ElementID{ui.L1FormulaInterest, ui.L1FormulaCompound} {
				b.WriteString(faintStyle.Render(wrap("• "+text(id), m.width)) + "\n")
			}

		case 2:
			b.WriteString(sceneStyle.Render(text(ui.L2Title)) + "\n")
			b.WriteString(faintStyle.Render(wrap(text(ui.L2Desc), m.width)) + "\n\n")
			field(ui.L2CashLabel, ui.L2Cash)
			field(ui.L2TotalValueLabel, ui.L2TotalValue)
			field(ui.L2GoalLabel, ui.L2Goal)
			b.WriteString("\n")
			for _, line := range bind.Element(ui.L2StockInfo).Lines {
				b.WriteString(line + "\n")
			}
			if view := g.Chart.View(); view != "" {
				b.WriteString("\n" + view + "\n")
			}
			b.WriteString("\n" + labelStyle.Render(g.Loc.T("level2.quantity")+": ") +
				valueStyle.Render(text(ui.L2Quantity)+"▏") + "\n")
			b.WriteString(strings.Join([]string{
				button("b", ui.L2BuyButton),
				button("s", ui.L2SellButton),
				button("n", ui.L2NextDayButton),
			}, "  ") + "\n")
			b.WriteString(button("a", ui.L2AdvanceButton) + "\n")

		default:
			b.WriteString(faintStyle.Render("…") + "\n")
		}

		b.WriteString("\n" + button("r", ui.ResetButton) + "  " + button("l", ui.LangToggle) + "\n")
	})

	switch {
	case len(m.modal) > 0:
		b.WriteString("\n" + modalStyle.Render(wrap(m.modal[0], m.width-4)+"\n\n"+faintStyle.Render("[enter]")) + "\n")
	case m.confirm != nil:
		b.WriteString("\n" + confirmStyle.Render(wrap(g.Loc.T(m.confirm.prompt), m.width-4)+"\n\n"+faintStyle.Render("[y] / [n]")) + "\n")
	default:
		if m.pending > 0 {
			b.WriteString(faintStyle.Render("⏳") + " ")
		}
		b.WriteString(faintStyle.Render(wrap(g.Loc.T("help.keys"), m.width)) + "\n")
	}
	return b.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
