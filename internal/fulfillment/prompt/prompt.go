// Package prompt builds the plain-text prompts sent to the generative model.
// Prompts are single-shot strings assembled from handler-local data; the only
// structural instruction they carry is the target reply language.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopmate-fulfillment/server/internal/catalog"
)

const storeKnowledgeBase = `
- Return Policy: Customers can return products within 7 days. The product must be in original condition.
- Delivery Time: 3-5 business days.
- Payment Methods: Cash on Delivery (COD) and Credit/Debit Cards.
`

// OrderStatus asks for a friendly status update for one order.
func OrderStatus(orderID string, itemCount int, total float64) string {
	return fmt.Sprintf(`You are an e-commerce order tracking assistant. A customer is asking for the status of their order #%s.
The order contains %d items with a total value of $%s.
Based on this data, create a friendly and professional status update in Roman Urdu.`,
		orderID, itemCount, formatAmount(total))
}

// ReviewSummary asks for a review roundup of one product.
func ReviewSummary(p catalog.Product) string {
	return fmt.Sprintf(`You are an expert product review analyst. A customer wants to know about the reviews for "%s".
Product Details:
- Category: %s
- Price: $%s
- Rating: %s out of 5
- Description: %s
Generate a summary in Roman Urdu.`,
		p.Title, p.Category, formatAmount(p.Price), formatAmount(p.Rating), p.Description)
}

// ProductDescription asks for fixed-length descriptive copy for one product.
func ProductDescription(p catalog.Product) string {
	return fmt.Sprintf(`You are an expert e-commerce copywriter. Write an 80-100 word description in Roman Urdu for "%s".
Category: %s
Price: $%s
Original Description: %s`,
		p.Title, p.Category, formatAmount(p.Price), p.Description)
}

// Translate asks for a translation of the stored text, nothing else.
func Translate(text, language string) string {
	return fmt.Sprintf("Translate the following text into %s. Only give the translation:\n%q", language, text)
}

// GeneralKnowledge grounds the model with the store knowledge base before the
// raw user question.
func GeneralKnowledge(query string) string {
	return fmt.Sprintf(`You are a helpful store assistant. Knowledge Base: %s
User's Question: %q
Answer in Roman Urdu if possible.`, storeKnowledgeBase, query)
}

// InventorySummary asks for an answer to "how many products do you have",
// seeded with the total and a few example titles.
func InventorySummary(total int, titles []string) string {
	var examples strings.Builder
	for _, title := range titles {
		examples.WriteString("- ")
		examples.WriteString(title)
		examples.WriteString("\n")
	}
	return fmt.Sprintf(`Customer asked how many products you have.
Total: %d.
Examples:
%sReply in Roman Urdu.`, total, examples.String())
}

// formatAmount renders a number the way the catalog shows it: no trailing
// zeros, no exponent.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
