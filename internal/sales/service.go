package sales

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grocerpos/grocer/internal/products"
	"github.com/grocerpos/grocer/internal/shared"
)

const idempotencyModule = "sales"

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	History(ctx context.Context, limit int) ([]SaleView, error)
}

// Recorder receives sale outcomes for metrics.
type Recorder interface {
	SaleRecorded(total float64)
	SaleRejected(reason string)
}

// Service coordinates sale recording.
type Service struct {
	repo        RepositoryPort
	idempotency *shared.IdempotencyStore
	metrics     Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewService builds Service. idem, metrics and logger may be nil.
func NewService(repo RepositoryPort, idem *shared.IdempotencyStore, metrics Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, idempotency: idem, metrics: metrics, logger: logger, now: time.Now}
}

// Record sells in.Quantity units of in.ProductID at the product's current
// price. The sale row and the stock decrement commit together or not at all.
func (s *Service) Record(ctx context.Context, in Input) (Receipt, error) {
	if in.ProductID == nil {
		return Receipt{}, shared.Validation("product_id is required")
	}
	if *in.ProductID <= 0 {
		return Receipt{}, products.ErrProductNotFound
	}
	if in.Quantity == nil || *in.Quantity <= 0 {
		return Receipt{}, shared.Validation("quantity must be greater than 0")
	}

	key := in.IdempotencyKey
	var token string
	if key != "" && s.idempotency != nil {
		res, err := s.idempotency.Reserve(ctx, idempotencyModule, key)
		if errors.Is(err, shared.ErrIdempotencyConflict) {
			return Receipt{}, ErrSaleInProgress
		}
		if err != nil {
			return Receipt{}, err
		}
		if res.Replay != nil {
			var receipt Receipt
			if err := json.Unmarshal(res.Replay, &receipt); err != nil {
				return Receipt{}, err
			}
			return receipt, nil
		}
		token = res.Token
	}

	receipt, err := s.record(ctx, *in.ProductID, *in.Quantity)
	if err != nil {
		if token != "" {
			s.release(ctx, key, token)
		}
		if s.metrics != nil && errors.Is(err, shared.ErrInsufficientStock) {
			s.metrics.SaleRejected("insufficient_stock")
		}
		return Receipt{}, err
	}

	if token != "" {
		s.complete(ctx, key, token, receipt)
	}
	if s.metrics != nil {
		s.metrics.SaleRecorded(receipt.TotalPrice.InexactFloat64())
	}
	return receipt, nil
}

// complete stores the receipt for replays. When that fails the reservation is
// dropped so retries are not locked out until the key expires.
func (s *Service) complete(ctx context.Context, key, token string, receipt Receipt) {
	payload, err := json.Marshal(receipt)
	if err == nil {
		err = s.idempotency.Complete(ctx, idempotencyModule, key, payload)
	}
	if err == nil {
		return
	}
	s.logger.Error("complete idempotency key",
		slog.String("key", key),
		slog.Int64("sale_id", receipt.SaleID),
		slog.Any("error", err))
	s.release(ctx, key, token)
}

func (s *Service) release(ctx context.Context, key, token string) {
	if err := s.idempotency.Release(ctx, idempotencyModule, key, token); err != nil {
		s.logger.Error("release idempotency key", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *Service) record(ctx context.Context, productID int64, qty int) (Receipt, error) {
	var receipt Receipt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		item, err := tx.GetStockItem(ctx, productID)
		if err != nil {
			return err
		}
		if item.Quantity < qty {
			return ErrInsufficientStock
		}
		total := item.Price.Mul(decimal.NewFromInt(int64(qty)))
		saleID, err := tx.InsertSale(ctx, Sale{
			ProductID:  productID,
			Quantity:   qty,
			TotalPrice: total,
			SaleDate:   s.now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, productID, qty); err != nil {
			return err
		}
		receipt = Receipt{SaleID: saleID, TotalPrice: total}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

// History lists up to HistoryLimit sales, newest first.
func (s *Service) History(ctx context.Context) ([]SaleView, error) {
	return s.repo.History(ctx, HistoryLimit)
}
