package quote

import (
	"time"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Orders are quoted with a 30 minute validity window.
const validityWindow = 30 * time.Minute

// BuildQuery assembles the quote request for a sell order. Pure: the
// only input besides the order definition is the clock.
func BuildQuery(def *types.OrderDefinition, from string, appDataDefault string, now time.Time) *types.QuoteQuery {
	receiver := def.Order.Receiver
	if receiver == "" {
		receiver = from
	}

	appData := def.Order.AppData
	if appData == "" {
		appData = appDataDefault
	}

	return &types.QuoteQuery{
		SellToken:           def.Order.SellToken,
		BuyToken:            def.Order.BuyToken,
		SellAmountBeforeFee: def.Order.SellAmountBeforeFee,
		Kind:                types.KindSell,
		PartiallyFillable:   def.Order.PartiallyFillable,
		SellTokenBalance:    types.BalanceERC20,
		BuyTokenBalance:     types.BalanceERC20,
		From:                from,
		Receiver:            receiver,
		AppData:             appData,
		ValidTo:             validTo(now),
	}
}

// validTo is the quote deadline: now plus the validity window, in whole
// seconds, rounded up.
func validTo(now time.Time) int64 {
	deadlineMs := now.UnixMilli() + validityWindow.Milliseconds()
	return (deadlineMs + 999) / 1000
}
