package usecase

import (
	"context"
	"log/slog"

	"marketdata_backend/internal/feature/marketdata/domain/entity"
)

// warmupHistoryPeriods はウォームアップ対象の履歴期間です（時間足はデフォルトの日足）。
var warmupHistoryPeriods = []string{"1mo", "1y"}

// Warmer is the subset of the aggregator used to pre-populate the cache.
type Warmer interface {
	GetStockInfo(ctx context.Context, symbol string) (entity.StockInfo, error)
	GetStockPrice(ctx context.Context, symbol string) (entity.StockPrice, error)
	GetStockHistory(ctx context.Context, symbol, period, interval string) ([]entity.StockHistory, error)
	GetMarketStatus(ctx context.Context) (entity.MarketStatus, error)
	GetTrendingStocks(ctx context.Context, limit int) ([]entity.TrendingStock, error)
}

var _ Warmer = (*MarketDataUsecase)(nil)

// WarmupReport summarizes a WarmAll run.
type WarmupReport struct {
	Succeeded int
	Failed    int
}

// WarmupUsecase はよく参照される銘柄のデータを事前に取得し、キャッシュに載せます。
// 上流のスロットリングはプロバイダ側で行われるため、ここでは順番に呼び出すだけです。
type WarmupUsecase struct {
	md     Warmer
	logger *slog.Logger
}

// NewWarmupUsecase は新しい WarmupUsecase を作成します。
func NewWarmupUsecase(md Warmer, logger *slog.Logger) *WarmupUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &WarmupUsecase{md: md, logger: logger}
}

// WarmAll は市場状況・トレンド、および各銘柄の詳細・現在値・履歴を取得します。
// 1つの取得が失敗しても処理を止めずにログに出力し、次の処理を続けます。
// ctx がキャンセルされた場合のみエラーを返します。
func (w *WarmupUsecase) WarmAll(ctx context.Context, symbols []string) (WarmupReport, error) {
	var rep WarmupReport
	record := func(what, symbol string, err error) {
		if err != nil {
			rep.Failed++
			w.logger.Error("failed to warm cache", "view", what, "symbol", symbol, "error", err)
			return
		}
		rep.Succeeded++
	}

	_, err := w.md.GetMarketStatus(ctx)
	record("market", "", err)
	_, err = w.md.GetTrendingStocks(ctx, DefaultTrendingLimit)
	record("trending", "", err)

	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		_, err := w.md.GetStockInfo(ctx, s)
		record("info", s, err)
		_, err = w.md.GetStockPrice(ctx, s)
		record("price", s, err)
		for _, p := range warmupHistoryPeriods {
			_, err = w.md.GetStockHistory(ctx, s, p, DefaultInterval)
			record("history:"+p, s, err)
		}
	}

	w.logger.Info("cache warmup finished", "symbols", len(symbols), "succeeded", rep.Succeeded, "failed", rep.Failed)
	return rep, nil
}
