package statement

import (
	"strings"

	"billkaro/statement-ledger/internal/models"
)

type bankRule struct {
	bank    models.BankType
	markers []string
}

// bankRules is evaluated top to bottom; the first rule with a marker present
// in the document wins.
var bankRules = []bankRule{
	{bank: models.BankSBI, markers: []string{"STATE BANK OF INDIA", "SBI"}},
	{bank: models.BankICICI, markers: []string{"ICICI"}},
	{bank: models.BankHDFC, markers: []string{"HDFC"}},
	{bank: models.BankKotak, markers: []string{"KOTAK"}},
	{bank: models.BankAxis, markers: []string{"AXIS"}},
}

// DetectBank classifies the issuer of a statement from its full text.
func DetectBank(text string) models.BankType {
	upper := strings.ToUpper(text)
	for _, rule := range bankRules {
		for _, marker := range rule.markers {
			if strings.Contains(upper, marker) {
				return rule.bank
			}
		}
	}
	return models.BankGeneric
}
