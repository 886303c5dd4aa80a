package ai

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

const stockSystemPrompt = `You are an inventory planner for a single warehouse.
You receive the products that are low on stock or out of stock, one per line, with their
current stock, minimum stock level, supplier and a locally computed suggested order quantity.
Answer in plain text, at most 12 short bullet lines:
- prioritise out-of-stock items, then the largest shortfall
- confirm or adjust each suggested quantity and give a reorder point
- group items that share a supplier into one purchase order when possible
Do not invent products that are not in the list.`

// maxResponseBytes cap on provider response bodies.
const maxResponseBytes = 64 * 1024

// buildStockPrompt renders the products as compact lines for the model.
func buildStockPrompt(products []dto.ReplenishmentSuggestion) string {
	var b strings.Builder
	b.WriteString("Analyze this inventory data and suggest reorder points:\n")
	for _, p := range products {
		supplier := p.Supplier
		if supplier == "" {
			supplier = "unknown"
		}
		fmt.Fprintf(&b, "- %s (SKU %s, %s): status=%s stock=%d min=%d supplier=%s suggested=%d\n",
			p.Name, p.SKU, p.Category, p.Status, p.Stock, p.MinStock, supplier, p.SuggestedQty)
	}
	return b.String()
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}
