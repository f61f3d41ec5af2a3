package common

import (
	"context"
	"testing"

	"billkaro/statement-ledger/internal/categorizer"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecategorizeTransactions(t *testing.T) {
	ledger := sampleLedger()
	ledger[0].Category = models.CategoryOther
	logger := logging.NewMockLogger()

	out := RecategorizeTransactions(context.Background(), ledger, categorizer.NewCategorizer(nil, nil, nil), logger)

	require.Len(t, out, 3)
	assert.Equal(t, models.CategoryBanking, out[0].Category)
	assert.Equal(t, models.CategoryFoodDining, out[1].Category)
	assert.Equal(t, models.CategoryOther, out[2].Category)
	assert.Equal(t, models.CategoryOther, ledger[0].Category, "input must not be modified")

	changed, ok := logger.FieldValue("Recategorized transactions", "changed")
	require.True(t, ok)
	assert.Equal(t, 1, changed)
}

func TestRecategorizeTransactions_NilCategorizer(t *testing.T) {
	out := RecategorizeTransactions(context.Background(), sampleLedger(), nil, nil)
	for _, tx := range out {
		assert.Equal(t, models.CategoryOther, tx.Category)
	}
}
