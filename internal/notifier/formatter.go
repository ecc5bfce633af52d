package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"LegacyGuardians/internal/chart"
	"LegacyGuardians/internal/ui"
)

// FormatPage formats the shown scene of the page as a Telegram message.
func FormatPage(bind *ui.Bindings, pc *chart.PriceChart) string {
	var b strings.Builder
	doc := bind.Document()
	doc.Read(func() {
		text := func(id ui.ElementID) string { return escape(bind.Element(id).Text) }
		field := func(label, value ui.ElementID) {
			b.WriteString(fmt.Sprintf("%s: <b>%s</b>\n", text(label), text(value)))
		}
		button := func(id ui.ElementID, cmd string) {
			el := bind.Element(id)
			if el.Disabled {
				b.WriteString(fmt.Sprintf("🔒 %s\n", escape(el.Text)))
				return
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cmd, escape(el.Text)))
		}

		b.WriteString(fmt.Sprintf("🏰 <b>%s</b>\n\n", text(ui.MainTitle)))

		switch bind.ActiveLevel() {
		case 1:
			b.WriteString(fmt.Sprintf("<b>%s</b>\n%s\n\n", text(ui.L1Title), text(ui.L1Desc)))
			field(ui.L1PrincipalLabel, ui.L1Principal)
			field(ui.L1InterestLabel, ui.L1Interest)
			field(ui.L1GoalLabel, ui.L1Goal)
			b.WriteString("\n")
			for i, c := range bind.Element(ui.L1RateOptions).Controls {
				b.WriteString(fmt.Sprintf("/deposit %d · %s\n", i+1, escape(c.Caption)))
			}
			button(ui.L1AdvanceButton, "/advance")
			b.WriteString(fmt.Sprintf("\n💡 <b>%s</b>\n", text(ui.L1TipsTitle)))
			for _, id := range []ui.ElementID{ui.L1TipPrincipal, ui.L1TipRate, ui.L1TipCompound} {
				b.WriteString("• " + text(id) + "\n")
			}
			b.WriteString(fmt.Sprintf("\n📐 <b>%s</b>\n", text(ui.L1FormulasTitle)))
			for _, id := range []ui.ElementID{ui.L1FormulaInterest, ui.L1FormulaCompound} {
				b.WriteString("• " + text(id) + "\n")
			}
		case 2:
			b.WriteString(fmt.Sprintf("<b>%s</b>\n%s\n\n", text(ui.L2Title), text(ui.L2Desc)))
			field(ui.L2CashLabel, ui.L2Cash)
			field(ui.L2TotalValueLabel, ui.L2TotalValue)
			field(ui.L2GoalLabel, ui.L2Goal)
			b.WriteString("\n")
			for _, line := range bind.Element(ui.L2StockInfo).Lines {
				b.WriteString(escape(line) + "\n")
			}
			if view := pc.View(); view != "" {
				b.WriteString("<pre>" + escape(ansi.Strip(view)) + "</pre>\n")
			}
			b.WriteString(fmt.Sprintf("/buy N · %s\n", text(ui.L2BuyButton)))
			b.WriteString(fmt.Sprintf("/sell N · %s\n", text(ui.L2SellButton)))
			b.WriteString(fmt.Sprintf("/next · %s\n", text(ui.L2NextDayButton)))
			button(ui.L2AdvanceButton, "/advance")
		}

		b.WriteString(fmt.Sprintf("\n/reset · %s\n/lang · %s", text(ui.ResetButton), text(ui.LangToggle)))
	})
	return b.String()
}

func escape(s string) string {
	return html.EscapeString(s)
}
