package types

import "github.com/shopspring/decimal"

// Chain describes the network the cart checks out on.
type Chain struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	BaseAPIURL string `json:"baseApiUrl" yaml:"base_api_url"`
}

// Currency of a listing price.
type Currency struct {
	Contract string `json:"contract,omitempty"`
	Symbol   string `json:"symbol" validate:"required"`
	Decimals int    `json:"decimals,omitempty" validate:"gte=0"`
}

// Price of a cart item.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency *Currency       `json:"currency,omitempty"`
}

// Token inside a cart item.
type Token struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// Collection inside a cart item. ID is a compound identifier whose first
// colon-delimited segment is the contract address.
type Collection struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
}

// CartItem is read-only display data for one cart entry.
type CartItem struct {
	Token      Token      `json:"token"`
	Collection Collection `json:"collection"`
	Price      *Price     `json:"price,omitempty"`
}
