package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vitwit/cartcheckout/types"
)

// CheckTxHash reports whether hash looks like an EVM transaction hash.
// Rendering never depends on it; it feeds diagnostics only.
func CheckTxHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("transaction hash cannot be empty")
	}

	b, err := hexutil.Decode(hash)
	if err != nil {
		return fmt.Errorf("transaction hash must be 0x-prefixed hex: %w", err)
	}
	if len(b) != common.HashLength {
		return fmt.Errorf("transaction hash must be %d bytes, got %d", common.HashLength, len(b))
	}
	return nil
}

// CheckContract reports whether the contract segment of a collection id is
// an EVM address.
func CheckContract(collectionID string) error {
	contract, _, _ := strings.Cut(collectionID, ":")
	if !common.IsHexAddress(contract) {
		return fmt.Errorf("collection %q does not start with a contract address", collectionID)
	}
	return nil
}

// Diagnostics lists the soft problems found in a snapshot: malformed hashes
// on completed items and path entries with bad contracts. Nil snapshots have
// none.
func Diagnostics(tx *types.Transaction) []string {
	if tx == nil {
		return nil
	}

	var out []string
	if tx.CurrentStep != nil {
		for i, item := range tx.CurrentStep.Items {
			if item.TxHash == "" && !item.Complete() {
				continue
			}
			if err := CheckTxHash(item.TxHash); err != nil {
				out = append(out, fmt.Sprintf("currentStep.items[%d]: %v", i, err))
			}
		}
	}
	for i, entry := range tx.Path {
		if entry.Contract == "" {
			continue
		}
		if !common.IsHexAddress(entry.Contract) {
			out = append(out, fmt.Sprintf("path[%d]: contract %q is not an address", i, entry.Contract))
		}
	}
	return out
}
