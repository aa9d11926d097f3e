package safe_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/internal/testutil"
	"github.com/mselser95/cowtrader/pkg/types"
)

func TestGetSafeInfo(t *testing.T) {
	mock := testutil.NewMockSafeService(safe.Info{
		Address:   testutil.FixtureSafe,
		Nonce:     42,
		Threshold: 2,
		Owners:    []string{"0xaaa", "0xbbb"},
		Version:   "1.3.0",
	})
	defer mock.Close()

	client := safe.NewClient(mock.URL, zap.NewNop())

	info, err := client.GetSafeInfo(context.Background(), common.HexToAddress(testutil.FixtureSafe))
	require.NoError(t, err)

	assert.Equal(t, int64(42), info.Nonce)
	assert.Equal(t, 2, info.Threshold)
	assert.Len(t, info.Owners, 2)
	assert.Equal(t, "1.3.0", info.Version)
}

func TestGetSafeInfo_ServiceError(t *testing.T) {
	client := safe.NewClient("http://127.0.0.1:0", zap.NewNop())

	_, err := client.GetSafeInfo(context.Background(), common.HexToAddress(testutil.FixtureSafe))
	require.Error(t, err)
}

func TestProposeTransaction(t *testing.T) {
	mock := testutil.NewMockSafeService(safe.Info{})
	defer mock.Close()

	client := safe.NewClient(mock.URL, zap.NewNop())
	safeAddr := common.HexToAddress(testutil.FixtureSafe)

	tx := &safe.Tx{
		To:        common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Value:     big.NewInt(0),
		Data:      []byte{0x01},
		Operation: safe.OperationCall,
		Nonce:     3,
	}

	hash, err := tx.Hash(1, safeAddr)
	require.NoError(t, err)

	sender := common.HexToAddress("0x5555555555555555555555555555555555555555")
	err = client.ProposeTransaction(context.Background(), safeAddr, tx.Proposal(safeAddr, hash, sender, "0x11"))
	require.NoError(t, err)

	require.Len(t, mock.Proposals, 1)
	got := mock.Proposals[0]
	assert.Equal(t, hash.Hex(), got.SafeTxHash)
	assert.Equal(t, int64(3), got.Nonce)
	assert.Equal(t, sender.Hex(), got.Sender)
}

func TestProposeTransaction_UnreachableService(t *testing.T) {
	client := safe.NewClient("http://127.0.0.1:0", zap.NewNop())

	err := client.ProposeTransaction(context.Background(), common.HexToAddress(testutil.FixtureSafe), &safe.TxProposal{})
	require.Error(t, err)

	var apiErr *types.APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
}
