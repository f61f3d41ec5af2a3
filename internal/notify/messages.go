// Package notify delivers statement summaries over WhatsApp and e-mail.
//
// Both channels degrade to a logged, simulated delivery when credentials
// are absent, so a missing provider never fails a conversion.
package notify

import (
	"fmt"
	"html"
	"strings"

	"billkaro/statement-ledger/internal/currencyutils"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/summary"
)

// EmailSubject is the subject line of the report e-mail.
const EmailSubject = "Your Bank Statement Analysis Report - BillKaro"

// WhatsAppBody renders the WhatsApp message for s. fileID identifies the
// generated files.
func WhatsAppBody(s models.Summary, fileID string) string {
	h := summary.HighlightsOf(s)

	var b strings.Builder
	b.WriteString("*BillKaro Statement Analysis Complete*\n\n")
	b.WriteString("*Summary:*\n")
	fmt.Fprintf(&b, "- Total Transactions: %d\n", h.TotalTransactions)
	fmt.Fprintf(&b, "- Total Debits: %s\n", currencyutils.FormatRupees(h.TotalDebits))
	fmt.Fprintf(&b, "- Total Credits: %s\n", currencyutils.FormatRupees(h.TotalCredits))
	fmt.Fprintf(&b, "- Net Balance Change: %s\n", currencyutils.FormatRupees(h.BalanceChange))
	fmt.Fprintf(&b, "- Top Expense Category: %s\n\n", h.TopCategory)
	b.WriteString("Your CSV and Excel files are ready for download.\n")
	fmt.Fprintf(&b, "File ID: %s", fileID)
	return b.String()
}

// EmailBodies renders the plain-text and HTML bodies of the report e-mail.
func EmailBodies(s models.Summary, fileID string) (plain, htmlBody string) {
	h := summary.HighlightsOf(s)
	rows := [][2]string{
		{"Total Transactions", fmt.Sprintf("%d", h.TotalTransactions)},
		{"Total Debits", currencyutils.FormatRupees(h.TotalDebits)},
		{"Total Credits", currencyutils.FormatRupees(h.TotalCredits)},
		{"Net Balance Change", currencyutils.FormatRupees(h.BalanceChange)},
		{"Top Expense Category", h.TopCategory},
	}

	var p, hb strings.Builder
	p.WriteString("Your bank statement has been processed.\n\n")
	hb.WriteString("<h2>BillKaro Statement Analysis</h2>\n<table>\n")
	for _, r := range rows {
		fmt.Fprintf(&p, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&hb, "<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(r[0]), html.EscapeString(r[1]))
	}
	fmt.Fprintf(&p, "\nFile ID: %s\nThe Excel workbook is attached.\n", fileID)
	fmt.Fprintf(&hb, "</table>\n<p>File ID: %s</p>\n<p>The Excel workbook is attached.</p>\n", html.EscapeString(fileID))
	return p.String(), hb.String()
}

// FormatWhatsAppNumber returns number as a "whatsapp:+<digits>" address.
// Numbers without a leading "+" get countryCode.
func FormatWhatsAppNumber(number, countryCode string) string {
	n := strings.TrimSpace(number)
	n = strings.TrimPrefix(n, "whatsapp:")
	n = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(n)
	if n == "" {
		return ""
	}
	if !strings.HasPrefix(n, "+") {
		if countryCode == "" {
			countryCode = DefaultCountryCode
		}
		if !strings.HasPrefix(countryCode, "+") {
			countryCode = "+" + countryCode
		}
		n = countryCode + strings.TrimLeft(n, "0")
	}
	return "whatsapp:" + n
}
