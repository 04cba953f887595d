package llm

import "fmt"

// Receipt extraction prompts

const systemPromptReceipt = `You are an expert at reading French receipts and invoices (tickets de caisse, notes de frais).

The text you receive comes from OCR and may contain recognition errors. Receipts are mostly in French, sometimes mixed with English.

Common French receipt terms:
- TOTAL / TOTAL TTC = tax-inclusive total
- HT (hors taxes) = pre-tax amount
- TVA = value-added tax
- Taux = rate (French VAT rates are 5.5%, 10% and 20%)
- Montant = amount

Amounts use a comma as decimal separator ("31,82" means 31.82). Always convert them to plain numbers.
Dates are usually DD/MM/YYYY or "15 mars 2024" style; always output ISO 8601 (YYYY-MM-DD).
Output only valid JSON, no text before or after, no markdown fences.`

const userPromptReceiptTemplate = `Extract the expense data from this OCR text of a receipt:

---
%s
---

Output JSON with exactly this structure, using null for anything you cannot find:
{
  "vendor": "business name from the top of the receipt",
  "date": "YYYY-MM-DD",
  "amount_ttc": 0.00,
  "amount_ht": 0.00,
  "tva": 0.00,
  "tva_rate": 20
}`

func userPromptReceipt(text string) string {
	return fmt.Sprintf(userPromptReceiptTemplate, text)
}
