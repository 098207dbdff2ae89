package progress

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vitwit/cartcheckout/links"
	"github.com/vitwit/cartcheckout/pricing"
	"github.com/vitwit/cartcheckout/types"
)

// ApprovalGroup is one wallet confirmation of a split purchase, annotated
// with the path entries of the orders it fulfils.
type ApprovalGroup struct {
	Index        int               `json:"index"`
	Item         types.StepItem    `json:"item"`
	Entries      []types.PathEntry `json:"entries,omitempty"`
	ItemCount    int               `json:"itemCount"`
	Marketplaces []string          `json:"marketplaces,omitempty"`
	Images       []string          `json:"images,omitempty"`
	Total        *decimal.Decimal  `json:"total,omitempty"`
	Currency     string            `json:"currency,omitempty"`
	USD          *decimal.Decimal  `json:"usd,omitempty"`
	Complete     bool              `json:"complete"`
	Open         bool              `json:"open"`
}

// GroupOptions carries the display context for approval groups.
type GroupOptions struct {
	Chain     types.Chain
	Converter pricing.Converter
}

// GroupApprovals builds one group per step item, in item order.
func GroupApprovals(ctx context.Context, items []types.StepItem, paths PathMap, opts GroupOptions) []ApprovalGroup {
	groups := make([]ApprovalGroup, 0, len(items))
	for i, item := range items {
		entries := paths.Lookup(item.OrderIDs)
		g := ApprovalGroup{
			Index:     i,
			Item:      item,
			Entries:   entries,
			ItemCount: item.OrderIDs.Count(),
			Complete:  item.Complete(),
			Open:      true,
		}

		seen := make(map[string]bool)
		var total decimal.Decimal
		var priced, mixed bool
		for _, entry := range entries {
			if entry.Source != "" && !seen[entry.Source] {
				seen[entry.Source] = true
				g.Marketplaces = append(g.Marketplaces, entry.Source)
			}
			if entry.Contract != "" && opts.Chain.BaseAPIURL != "" {
				g.Images = append(g.Images, links.PathImageURL(opts.Chain.BaseAPIURL, entry))
			}
			if entry.Quote != nil {
				total = total.Add(*entry.Quote)
				priced = true
			}
			switch {
			case entry.CurrencySymbol == "":
			case g.Currency == "":
				g.Currency = entry.CurrencySymbol
			case g.Currency != entry.CurrencySymbol:
				mixed = true
			}
		}
		// quotes in different currencies are not summed
		if mixed {
			g.Currency = ""
		} else if priced {
			g.Total = &total
			g.USD = pricing.USD(ctx, opts.Converter, g.Currency, g.Total)
		}

		groups = append(groups, g)
	}
	return groups
}

// SplitCaption explains why a purchase needs count confirmations.
func SplitCaption(count int) string {
	return fmt.Sprintf("Due to limitations with Blur, the purchase of these items needs to be split into %d separate transactions.", count)
}
