package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIDsCount(t *testing.T) {
	assert.Equal(t, 3, OrderIDs{"a", "b", "c"}.Count())
	assert.Equal(t, 1, OrderIDs(nil).Count())
	assert.Equal(t, 1, OrderIDs{}.Count())
	assert.False(t, OrderIDs(nil).Present())
	assert.True(t, OrderIDs{"a"}.Present())
}

func TestStatusKnown(t *testing.T) {
	assert.True(t, StatusApproving.Known())
	assert.True(t, StatusIdle.Known())
	assert.False(t, Status("refunding").Known())
	assert.False(t, Status("").Known())
}

func TestCloneIsDeep(t *testing.T) {
	q := decimal.RequireFromString("1.5")
	orig := &Transaction{
		Status: StatusApproving,
		CurrentStep: &Step{ID: "sale", Items: []StepItem{
			{OrderIDs: OrderIDs{"o1"}, Data: json.RawMessage(`{"a":1}`)},
		}},
		Path: []PathEntry{{OrderID: "o1", Quote: &q}},
	}

	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.CurrentStep.ID = "auth"
	cp.CurrentStep.Items[0].OrderIDs[0] = "x"
	cp.CurrentStep.Items[0].Data[0] = '['
	cp.Path[0].OrderID = "o2"
	*cp.Path[0].Quote = decimal.NewFromInt(9)

	assert.Equal(t, "sale", orig.CurrentStep.ID)
	assert.Equal(t, OrderIDs{"o1"}, orig.CurrentStep.Items[0].OrderIDs)
	assert.Equal(t, `{"a":1}`, string(orig.CurrentStep.Items[0].Data))
	assert.Equal(t, "o1", orig.Path[0].OrderID)
	assert.Equal(t, "1.5", orig.Path[0].Quote.String())
}

func TestCloneKeepsAbsentFields(t *testing.T) {
	var nilTx *Transaction
	assert.Nil(t, nilTx.Clone())

	cp := (&Transaction{Status: StatusComplete, CurrentStep: &Step{ID: "sale"}}).Clone()
	assert.Nil(t, cp.Path)
	assert.Nil(t, cp.CurrentStep.Items)
}

func TestCheckoutError(t *testing.T) {
	var err error = &CheckoutError{Code: ErrInvalidSnapshot, Message: "bad snapshot"}
	assert.EqualError(t, err, "bad snapshot")
}
