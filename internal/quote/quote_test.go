package quote

import (
	"testing"
	"time"

	"github.com/mselser95/cowtrader/internal/testutil"
	"github.com/mselser95/cowtrader/pkg/types"
)

const testAppData = "0x0000000000000000000000000000000000000000000000000000000000000000"

func TestBuildQuery_Defaults(t *testing.T) {
	def := testutil.NewOrderDefinition(types.AccountEOA)
	from := "0xC49926C4124cEe1cbA0Ea94Ea31a6c12318df947"
	now := time.UnixMilli(1700000000000)

	q := BuildQuery(def, from, testAppData, now)

	if q.From != from {
		t.Errorf("from: expected %s, got %s", from, q.From)
	}
	if q.Receiver != from {
		t.Errorf("receiver should default to the trading account, got %s", q.Receiver)
	}
	if q.AppData != testAppData {
		t.Errorf("appData should default, got %s", q.AppData)
	}
	if q.Kind != types.KindSell {
		t.Errorf("kind: expected sell, got %s", q.Kind)
	}
	if q.SellTokenBalance != types.BalanceERC20 || q.BuyTokenBalance != types.BalanceERC20 {
		t.Errorf("balance types: expected erc20/erc20, got %s/%s", q.SellTokenBalance, q.BuyTokenBalance)
	}
}

func TestBuildQuery_ExplicitReceiver(t *testing.T) {
	def := testutil.NewOrderDefinition(types.AccountEOA)
	def.Order.Receiver = "0x2222222222222222222222222222222222222222"

	q := BuildQuery(def, "0xC49926C4124cEe1cbA0Ea94Ea31a6c12318df947", testAppData, time.Now())

	if q.Receiver != def.Order.Receiver {
		t.Errorf("explicit receiver lost: got %s", q.Receiver)
	}
}

func TestValidTo_RoundsUpToWholeSeconds(t *testing.T) {
	// 1700000000000 ms is exactly on a second boundary; adding the 30
	// minute window keeps it there. One extra millisecond must round up.
	onBoundary := time.UnixMilli(1700000000000)
	if got := validTo(onBoundary); got != 1700000000+1800 {
		t.Errorf("expected %d, got %d", 1700000000+1800, got)
	}

	offBoundary := time.UnixMilli(1700000000001)
	if got := validTo(offBoundary); got != 1700000000+1800+1 {
		t.Errorf("expected %d, got %d", 1700000000+1800+1, got)
	}
}
