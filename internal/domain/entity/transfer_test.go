package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferState_IsTerminal(t *testing.T) {
	assert.False(t, TransferRunning.IsTerminal())
	assert.False(t, TransferPaused.IsTerminal())
	assert.True(t, TransferCancelled.IsTerminal())
	assert.True(t, TransferDone.IsTerminal())
	assert.True(t, TransferErrored.IsTerminal())
}

func TestTransferRecord_Progress(t *testing.T) {
	total := int64(200)
	r := &TransferRecord{Downloaded: 50, Total: &total}
	assert.InDelta(t, 0.25, r.Progress(), 1e-9)

	r.Total = nil
	assert.Equal(t, float64(-1), r.Progress())
}

func TestTransferRecord_Validate(t *testing.T) {
	valid := &TransferRecord{ID: "a", URL: "https://example.com/f", State: TransferRunning}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, (&TransferRecord{URL: "u", State: TransferDone}).Validate(), ErrInvalidTransfer)
	assert.ErrorIs(t, (&TransferRecord{ID: "a", URL: "u", State: "bogus"}).Validate(), ErrInvalidTransfer)
	var nilRecord *TransferRecord
	assert.ErrorIs(t, nilRecord.Validate(), ErrInvalidTransfer)
}
