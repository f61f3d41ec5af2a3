// Package report renders extraction results and their summaries for humans
// and API clients.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/summary"

	"gopkg.in/yaml.v3"
)

// MonthlyView is a monthly bucket with float amounts.
type MonthlyView struct {
	Debit  float64 `json:"debit" yaml:"debit"`
	Credit float64 `json:"credit" yaml:"credit"`
}

// SummaryView is the client-facing form of models.Summary.
type SummaryView struct {
	TotalTransactions int                    `json:"total_transactions" yaml:"total_transactions"`
	TotalDebits       float64                `json:"total_debits" yaml:"total_debits"`
	TotalCredits      float64                `json:"total_credits" yaml:"total_credits"`
	NetAmount         float64                `json:"net_amount" yaml:"net_amount"`
	CategoryExpenses  map[string]float64     `json:"category_expenses" yaml:"category_expenses"`
	MonthlySummary    map[string]MonthlyView `json:"monthly_summary" yaml:"monthly_summary"`
	OpeningBalance    float64                `json:"opening_balance" yaml:"opening_balance"`
	ClosingBalance    float64                `json:"closing_balance" yaml:"closing_balance"`
	TopCategory       string                 `json:"top_category" yaml:"top_category"`
}

// NewSummaryView converts s.
func NewSummaryView(s models.Summary) SummaryView {
	view := SummaryView{
		TotalTransactions: s.TotalTransactions,
		TotalDebits:       s.TotalDebits.InexactFloat64(),
		TotalCredits:      s.TotalCredits.InexactFloat64(),
		NetAmount:         s.NetAmount.InexactFloat64(),
		CategoryExpenses:  make(map[string]float64, len(s.CategoryExpenses)),
		MonthlySummary:    make(map[string]MonthlyView, len(s.Monthly)),
		OpeningBalance:    s.OpeningBalance.InexactFloat64(),
		ClosingBalance:    s.ClosingBalance.InexactFloat64(),
		TopCategory:       summary.HighlightsOf(s).TopCategory,
	}
	for name, amount := range s.CategoryExpenses {
		view.CategoryExpenses[name] = amount.InexactFloat64()
	}
	for month, totals := range s.Monthly {
		view.MonthlySummary[month] = MonthlyView{
			Debit:  totals.Debit.InexactFloat64(),
			Credit: totals.Credit.InexactFloat64(),
		}
	}
	return view
}

// StatementReport describes one processed statement.
type StatementReport struct {
	Source           string               `json:"source" yaml:"source"`
	Bank             string               `json:"bank" yaml:"bank"`
	Reason           string               `json:"reason,omitempty" yaml:"reason,omitempty"`
	TransactionCount int                  `json:"transaction_count" yaml:"transaction_count"`
	Summary          SummaryView          `json:"summary" yaml:"summary"`
	Transactions     []models.Transaction `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

// NewStatementReport builds the report of result. Transactions are included
// only when withTransactions is set.
func NewStatementReport(result models.ExtractionResult, s models.Summary, withTransactions bool) *StatementReport {
	r := &StatementReport{
		Source:           string(result.Source),
		Bank:             result.Bank.String(),
		Reason:           result.Reason,
		TransactionCount: len(result.Transactions),
		Summary:          NewSummaryView(s),
	}
	if withTransactions {
		r.Transactions = result.Transactions
	}
	return r
}

// ReportGenerator renders reports in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders report as "json" or "yaml".
func (g *ReportGenerator) GenerateReport(report *StatementReport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return g.generateJSONReport(report)
	case "yaml", "yml":
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(report *StatementReport) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(report *StatementReport) ([]byte, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
