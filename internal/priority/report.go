package priority

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/fatura-dev/fatura/internal/model"
	"github.com/fatura-dev/fatura/internal/money"
)

// WriteReport renders the ranked merchants as a text table followed by
// the savings totals. top limits the number of rows; 0 means all.
func WriteReport(w io.Writer, scores []model.MerchantScore, top int) {
	if len(scores) == 0 {
		fmt.Fprintln(w, "Nenhum gasto para analisar.")
		return
	}

	rows := scores
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Estabelecimento", "Impacto/Mês", "Total", "Freq", "Maior Compra", "Score", "Prioridade", "Economia/Mês"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})

	for _, s := range rows {
		impact := money.FormatBRL(s.MonthlyImpact)
		if s.Flagged {
			impact = "sem fatura"
		}
		table.Append([]string{
			s.Description,
			impact,
			money.FormatBRL(s.Total),
			strconv.Itoa(s.Frequency),
			money.FormatBRL(s.Max),
			s.Score.StringFixed(2),
			string(s.Priority),
			money.FormatBRL(s.MonthlySavings),
		})
	}
	table.Render()

	sum := Savings(scores)
	fmt.Fprintf(w, "Economia total possível: %s/mês (%s/ano)\n",
		money.FormatBRL(sum.Monthly), money.FormatBRL(sum.Annual))
}
