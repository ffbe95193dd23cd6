// Package assistant answers free-text questions about spending with
// deterministic keyword matching over already-derived aggregates.
// There is no language model and no state between questions.
package assistant

import "strings"

// Intent names a recognized question category.
type Intent string

const (
	IntentTopMerchant Intent = "maior_gasto"
	IntentTotal       Intent = "total"
	IntentAverage     Intent = "media"
	IntentCount       Intent = "contagem"
	IntentScore       Intent = "score"
	IntentRisk        Intent = "risco"
	IntentSave        Intent = "economizar"
	IntentForecast    Intent = "previsao"
	IntentCategory    Intent = "categoria"
	IntentUnknown     Intent = "desconhecido"
)

// intentRule pairs an intent with its trigger phrases.
type intentRule struct {
	intent   Intent
	triggers []string
}

// intentTable is scanned top to bottom; the first rule with a trigger
// contained in the question wins. Table order is part of the contract:
// it resolves questions whose text matches several rules.
var intentTable = []intentRule{
	{IntentTopMerchant, []string{"onde gasto mais", "maior gasto", "gasto mais", "quem recebe mais dinheiro"}},
	{IntentTotal, []string{"total", "quanto gastei", "valor total", "gasto total"}},
	{IntentAverage, []string{"media", "médio", "ticket medio"}},
	{IntentCount, []string{"quantas compras", "quantas transações", "quantidade"}},
	{IntentScore, []string{"score", "nota financeira"}},
	{IntentRisk, []string{"risco", "perigo financeiro"}},
	{IntentSave, []string{"economizar", "como economizar", "reduzir gastos"}},
	{IntentForecast, []string{"previsão", "projeção", "quanto vou gastar"}},
	{IntentCategory, []string{"categoria", "qual categoria gasto mais"}},
}

// Classify maps a free-text question to an intent. Any input is safe,
// including empty or punctuation-only strings; no match returns
// IntentUnknown.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentTable {
		for _, trigger := range rule.triggers {
			if strings.Contains(q, trigger) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}
