package assistant

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fatura-dev/fatura/internal/insights"
	"github.com/fatura-dev/fatura/internal/money"
)

// FallbackAnswer is the canned reply for unclassifiable questions.
const FallbackAnswer = "Não consegui entender sua pergunta. Tente reformular."

// saveFraction is the reduction assumed by the "how do I save" answer.
var saveFraction = decimal.RequireFromString("0.2")

// Responder formats answers from the derived aggregates. It never
// recomputes from raw rows and keeps no state between questions.
type Responder struct {
	analysis insights.Analysis
}

// NewResponder wraps a completed analysis.
func NewResponder(analysis insights.Analysis) *Responder {
	return &Responder{analysis: analysis}
}

// Answer classifies the question and formats the reply for its intent.
func (r *Responder) Answer(question string) string {
	return r.Respond(Classify(question))
}

// Respond formats the reply for an already-classified intent.
func (r *Responder) Respond(intent Intent) string {
	a := r.analysis

	switch intent {
	case IntentTopMerchant:
		if len(a.Pareto) == 0 {
			return FallbackAnswer
		}
		top := a.Pareto[0]
		return fmt.Sprintf("Você gasta mais em %s, totalizando %s", top.Description, money.FormatBRL(top.Total))

	case IntentTotal:
		return fmt.Sprintf("Seu gasto total foi %s", money.FormatBRL(a.Summary.TotalSpend))

	case IntentAverage:
		return fmt.Sprintf("Seu gasto médio por compra é %s", money.FormatBRL(a.Summary.AvgTicket))

	case IntentCount:
		return fmt.Sprintf("Você fez %d transações", a.Summary.Transactions)

	case IntentScore:
		level := "precisa melhorar"
		switch {
		case a.Health.Score >= 80:
			level = "excelente"
		case a.Health.Score >= 60:
			level = "bom"
		}
		return fmt.Sprintf("Seu score financeiro é %d/100, considerado %s", a.Health.Score, level)

	case IntentRisk:
		switch a.Health.Risk {
		case insights.RiskHigh:
			return "Seu risco financeiro é alto devido à alta concentração de gastos"
		case insights.RiskModerate:
			return "Seu risco financeiro é moderado"
		default:
			return "Seu risco financeiro é baixo"
		}

	case IntentSave:
		if len(a.Pareto) == 0 {
			return FallbackAnswer
		}
		top := a.Pareto[0]
		saving := top.Total.Mul(saveFraction)
		return fmt.Sprintf("Se reduzir 20%% dos gastos em %s, economizaria %s", top.Description, money.FormatBRL(saving))

	case IntentForecast:
		if !a.HasForecast {
			return FallbackAnswer
		}
		return fmt.Sprintf("Sua previsão de gasto mensal é %s", money.FormatBRL(a.Forecast.Monthly))

	case IntentCategory:
		if !a.HasCategories || a.TopCategory == "" {
			return "Seu dataset não possui categorias"
		}
		return fmt.Sprintf("Sua categoria com maior gasto é %s, com %s", a.TopCategory, money.FormatBRL(a.TopCategoryTotal))

	default:
		return FallbackAnswer
	}
}
