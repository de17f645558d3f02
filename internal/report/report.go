package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

const (
	cardWidth  = 38
	labelWidth = 20
)

var (
	mutedColor  = lipgloss.Color("#4A4A4A")
	winnerColor = lipgloss.Color("#52C41A")
)

// Renderer writes human-readable reports to a terminal or plain writer.
type Renderer struct {
	w      io.Writer
	format *Formatter

	card       lipgloss.Style
	winnerCard lipgloss.Style
	title      lipgloss.Style
	value      lipgloss.Style
	caption    lipgloss.Style
	verdict    lipgloss.Style
}

// NewRenderer creates a Renderer for w. Colors are dropped automatically
// when w is not a terminal.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	card := r.NewStyle().
		Width(cardWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(mutedColor)

	return &Renderer{
		w:          w,
		format:     NewFormatter(),
		card:       card,
		winnerCard: card.BorderForeground(winnerColor),
		title:      r.NewStyle().Bold(true),
		value:      r.NewStyle().Bold(true),
		caption:    r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		verdict:    r.NewStyle().Bold(true).Padding(1, 1, 0, 1),
	}
}

// Formatter returns the Formatter used for money and rates.
func (r *Renderer) Formatter() *Formatter {
	return r.format
}

// Scenario writes the buying and renting panels side by side followed by
// the verdict. heading is printed above the panels when non-empty.
func (r *Renderer) Scenario(heading string, in simulator.ScenarioInputs, out simulator.ScenarioOutputs) error {
	f := r.format

	buying := r.panel(
		"BUYING",
		out.Winner == simulator.WinnerBuy,
		f.Currency(out.NetHomeEquity),
		"Net equity after selling",
		[][2]string{
			{"Monthly P&I", f.Currency(out.MonthlyPI)},
			{"Total interest", f.Currency(out.TotalInterestPaid)},
			{"Total property tax", f.Currency(out.TotalPropertyTax)},
			{"Total HOA", f.Currency(out.TotalHOA)},
			{"Maintenance", f.Currency(out.TotalMaintenance)},
			{"Tax savings", f.Currency(out.TotalTaxSavings)},
		},
	)

	renting := r.panel(
		"RENTING + INVESTING",
		out.Winner == simulator.WinnerRent,
		f.Currency(out.InvestmentPortfolioValue),
		"Investment portfolio value",
		[][2]string{
			{"Starting rent", f.Currency(in.CurrentRent) + "/mo"},
			{"Final rent", f.Currency(out.FinalMonthlyRent) + "/mo"},
			{"Total rent paid", f.Currency(out.TotalRentPaid)},
			{"Initial investment", f.Currency(out.InitialInvestment)},
			{"Contributions", f.Currency(out.TotalMonthlyContributions)},
			{"Total invested", f.Currency(out.TotalInvested)},
		},
	)

	var b strings.Builder
	if heading != "" {
		b.WriteString(r.title.Render(heading))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buying, " ", renting))
	b.WriteString("\n")
	b.WriteString(r.verdict.Render(r.verdictText(in, out)))
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) panel(title string, winner bool, headline, caption string, rows [][2]string) string {
	style := r.card
	if winner {
		style = r.winnerCard
		title += "  * WINNER"
	}

	lines := []string{
		r.title.Render(title),
		r.value.Render(headline),
		r.caption.Render(caption),
		"",
	}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-*s %s", labelWidth, row[0]+":", row[1]))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) verdictText(in simulator.ScenarioInputs, out simulator.ScenarioOutputs) string {
	f := r.format
	margin := out.NetDifference
	if margin < 0 {
		margin = -margin
	}

	var headline string
	switch out.Winner {
	case simulator.WinnerBuy:
		headline = "Buying wins by " + f.Currency(margin)
	case simulator.WinnerRent:
		headline = "Renting + investing wins by " + f.Currency(margin)
	default:
		headline = "It's essentially a tie (within " + f.Currency(simulator.TieThreshold) + ")"
	}

	lines := []string{headline, fmt.Sprintf("After %d years", in.TimeHorizonYears)}
	if out.BreakEvenYear != nil {
		lines = append(lines, fmt.Sprintf("Buying pulls ahead in year %d", *out.BreakEvenYear))
	} else {
		lines = append(lines, "Buying never pulls ahead within the horizon")
	}
	return strings.Join(lines, "\n")
}

// Presets writes a table of regional presets.
func (r *Renderer) Presets(list []models.RegionalPreset) error {
	f := r.format

	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			f.Currency(p.HomePrice),
			f.Currency(p.CurrentRent),
			f.Percent(p.PropertyTaxRate),
			f.Currency(p.HOAMonthly),
			f.Percent(p.HomeAppreciationRate),
			f.Percent(p.RentInflationRate),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers("ID", "REGION", "HOME PRICE", "RENT/MO", "PROP TAX", "HOA/MO", "APPRECIATION", "RENT GROWTH").
		Rows(rows...)

	_, err := fmt.Fprintln(r.w, t.String())
	return err
}
