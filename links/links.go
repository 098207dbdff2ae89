// Package links builds the external URLs the checkout dialog points at:
// block explorer transaction pages and token image redirects.
package links

import (
	"fmt"
	"strings"

	"github.com/vitwit/cartcheckout/types"
)

// DefaultHeaderImages is how many cart images the checkout header shows.
const DefaultHeaderImages = 2

// TxURL returns <base>/tx/<hash>. The hash is not validated.
func TxURL(base, txHash string) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(base, "/"), txHash)
}

// ContractFromCollection returns the first colon-delimited segment of a
// compound collection identifier.
func ContractFromCollection(collectionID string) string {
	contract, _, _ := strings.Cut(collectionID, ":")
	return contract
}

// TokenImageURL returns <baseApiUrl>/redirect/tokens/<contract>:<tokenId>/image/v1
// where contract is taken from the collection id.
func TokenImageURL(baseAPIURL, collectionID, tokenID string) string {
	return tokenImage(baseAPIURL, ContractFromCollection(collectionID), tokenID)
}

// PathImageURL builds the image URL of the token bought by a path entry.
func PathImageURL(baseAPIURL string, entry types.PathEntry) string {
	return tokenImage(baseAPIURL, entry.Contract, entry.TokenID)
}

func tokenImage(baseAPIURL, contract, tokenID string) string {
	return fmt.Sprintf("%s/redirect/tokens/%s:%s/image/v1", strings.TrimRight(baseAPIURL, "/"), contract, tokenID)
}

// CartImages returns image URLs for the first limit items of the cart.
// A limit of zero or less falls back to DefaultHeaderImages.
func CartImages(chain types.Chain, items []types.CartItem, limit int) []string {
	if limit <= 0 {
		limit = DefaultHeaderImages
	}
	if len(items) < limit {
		limit = len(items)
	}

	images := make([]string, 0, limit)
	for _, item := range items[:limit] {
		images = append(images, TokenImageURL(chain.BaseAPIURL, item.Collection.ID, item.Token.ID))
	}
	return images
}
