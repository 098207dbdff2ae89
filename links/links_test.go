package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitwit/cartcheckout/types"
)

func TestTxURL(t *testing.T) {
	assert.Equal(t, "https://etherscan.io/tx/0xabc", TxURL("https://etherscan.io", "0xabc"))
	assert.Equal(t, "https://etherscan.io/tx/0xabc", TxURL("https://etherscan.io/", "0xabc"))
	// no validation of the hash
	assert.Equal(t, "https://etherscan.io/tx/", TxURL("https://etherscan.io", ""))
}

func TestTokenImageURLSplitsOnFirstColon(t *testing.T) {
	got := TokenImageURL("https://api.reservoir.tools", "0xbc4ca0:bayc:rare", "42")
	assert.Equal(t, "https://api.reservoir.tools/redirect/tokens/0xbc4ca0:42/image/v1", got)

	got = TokenImageURL("https://api.reservoir.tools", "0xbc4ca0", "7")
	assert.Equal(t, "https://api.reservoir.tools/redirect/tokens/0xbc4ca0:7/image/v1", got)
}

func TestPathImageURL(t *testing.T) {
	entry := types.PathEntry{Contract: "0xdead", TokenID: "9"}
	assert.Equal(t, "https://api.test/redirect/tokens/0xdead:9/image/v1", PathImageURL("https://api.test", entry))
}

func TestCartImagesLimitsToFirstItems(t *testing.T) {
	chain := types.Chain{BaseAPIURL: "https://api.test"}
	items := []types.CartItem{
		{Token: types.Token{ID: "1"}, Collection: types.Collection{ID: "0xa"}},
		{Token: types.Token{ID: "2"}, Collection: types.Collection{ID: "0xb:x"}},
		{Token: types.Token{ID: "3"}, Collection: types.Collection{ID: "0xc"}},
	}

	images := CartImages(chain, items, 0)
	assert.Equal(t, []string{
		"https://api.test/redirect/tokens/0xa:1/image/v1",
		"https://api.test/redirect/tokens/0xb:2/image/v1",
	}, images)

	assert.Len(t, CartImages(chain, items[:1], 2), 1)
	assert.Empty(t, CartImages(chain, nil, 2))
}
