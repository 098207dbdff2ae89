package progress

import (
	"fmt"

	"github.com/vitwit/cartcheckout/links"
	"github.com/vitwit/cartcheckout/types"
)

// DefaultExplorerName is used in summary text when none is configured.
const DefaultExplorerName = "Etherscan"

// Explorer identifies the block explorer summary links point to.
type Explorer struct {
	BaseURL string
	Name    string
}

// SummaryLine links one completed step item to its transaction page.
type SummaryLine struct {
	TxHash string `json:"txHash"`
	Count  int    `json:"count"`
	Noun   string `json:"noun"`
	URL    string `json:"url"`
	Text   string `json:"text"`
}

// Noun returns "item" or "items" for count.
func Noun(count int) string {
	if count > 1 {
		return "items"
	}
	return "item"
}

// Summarize produces one line per item in source order.
func Summarize(items []types.StepItem, explorer Explorer) []SummaryLine {
	name := explorer.Name
	if name == "" {
		name = DefaultExplorerName
	}

	lines := make([]SummaryLine, 0, len(items))
	for _, item := range items {
		count := item.OrderIDs.Count()
		noun := Noun(count)
		lines = append(lines, SummaryLine{
			TxHash: item.TxHash,
			Count:  count,
			Noun:   noun,
			URL:    links.TxURL(explorer.BaseURL, item.TxHash),
			Text:   fmt.Sprintf("View transaction for %d %s on %s", count, noun, name),
		})
	}
	return lines
}
