// renderers draws the component rows on a terminal.
package renderers

import (
	"io"
	"strings"

	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/ui/page/components"
	"github.com/charmbracelet/lipgloss"
)

const DefaultWidth = 60

// Terminal renders rows for the color profile of the writer they are
// printed to.
type Terminal struct {
	r     *lipgloss.Renderer
	width int
}

// NewTerminal returns a renderer for w. A width of zero or less uses
// DefaultWidth.
func NewTerminal(w io.Writer, width int) *Terminal {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Terminal{r: lipgloss.NewRenderer(w), width: width}
}

// counterValue draws a counter-value result. Loading draws its placeholder
// when it has one and unavailable draws nothing.
func (t *Terminal) counterValue(res countervalue.Result, color string) string {
	switch res.Kind {
	case countervalue.Value:
		return t.colored(color).Render(res.Text)
	case countervalue.Loading:
		if res.Placeholder != nil {
			return t.renderPlaceholder(res.Placeholder.Width, color)
		}
	}
	return ""
}

// CurrencyRate renders the icon and text of a currency rate label.
func (t *Terminal) CurrencyRate(lbl *components.CurrencyRateLabel) string {
	text := t.renderIcon(lbl.Icon) + " " + t.colored(lbl.Color).Render(lbl.Coin+" =")
	if rate := t.counterValue(lbl.Rate, lbl.Color); rate != "" {
		text += " " + rate
	}
	return text
}

// AccountRow renders a row on two lines, followed by a divider unless the
// row is the last one.
func (t *Terminal) AccountRow(row *components.AccountRow) string {
	name := t.renderIcon(row.CurrencyIcon) + " " + t.renderLabel(row.Name)
	balance := setWeight(t.colored(row.BalanceColor), "bold").Render(row.Balance.Main)
	if row.Balance.Sub != "" {
		balance += setWeight(t.colored(row.BalanceColor), "faint").Render(row.Balance.Sub)
	}
	balance += t.colored(row.BalanceColor).Render(row.Balance.Unit)

	status := t.renderLabel(row.SyncStatus.Label)
	if row.SyncStatus.TickColor != "" {
		status = t.colored(row.SyncStatus.TickColor).Render(tickGlyph) + " " + status
	}

	lines := []string{
		t.spread(name, balance),
		t.spread("  "+status, t.counterValue(row.CounterValue, row.CounterColor)),
	}
	if !row.IsLast && row.DividerColor != "" {
		lines = append(lines, t.renderHorizontalLine(row.DividerColor))
	}
	return strings.Join(lines, "\n")
}

// AccountList renders rows one after another.
func (t *Terminal) AccountList(rows []*components.AccountRow) string {
	rendered := make([]string, 0, len(rows))
	for _, row := range rows {
		rendered = append(rendered, t.AccountRow(row))
	}
	return strings.Join(rendered, "\n")
}

// GasLimitRow renders the gas limit and its edit link on one line.
func (t *Terminal) GasLimitRow(row *components.GasLimitRow) string {
	value := t.colored(row.GasLimitColor).Render(row.GasLimit)
	if row.GasLimit != "" {
		value += " "
	}
	return t.spread(row.Title, value+t.renderLabel(row.Edit))
}

// EthereumFeeRow renders the fee summary: title and fee rate, the fee with
// the edit link, the counter-value and the gas limit row.
func (t *Terminal) EthereumFeeRow(row *components.EthereumFeeRow) string {
	title := row.Title
	if row.Info != nil {
		title += " " + t.renderIcon(row.InfoIcon)
	}

	fee := t.colored(row.ValueColor).Render(row.Fee)
	if row.Fee != "" {
		fee += " "
	}

	lines := []string{
		t.spread(title, t.colored(row.ValueColor).Render(row.FeeRate)),
		t.spread("", fee+t.renderLabel(row.Edit)),
	}
	if cv := t.counterValue(row.CounterValue, row.CounterColor); cv != "" {
		lines = append(lines, t.spread("", cv))
	}
	if row.GasLimit != nil {
		lines = append(lines, t.GasLimitRow(row.GasLimit))
	}
	return strings.Join(lines, "\n")
}
