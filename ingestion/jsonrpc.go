package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/defistate/arb-engine/arb"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
)

// Constants for reconnection logic, grounded on the teacher's jsonrpc client.
const (
	initialReconnectDelay = 1 * time.Second
	maxReconnectDelay     = 30 * time.Second

	// RPCNamespace is the namespace under which the reserve feed is registered.
	RPCNamespace = "arb"
	// ReserveUpdatesSubscriptionMethod is the subscription method name.
	ReserveUpdatesSubscriptionMethod = "reserveUpdates"
)

// wireReserveUpdate mirrors the on-the-wire JSON shape of a single update.
// Reserves travel as decimal strings since JSON numbers cannot hold uint256
// precision.
type wireReserveUpdate struct {
	PoolID    string `json:"poolId"`
	Token0ID  string `json:"token0Id"`
	Token1ID  string `json:"token1Id"`
	Reserve0  string `json:"reserve0,omitempty"`
	Reserve1  string `json:"reserve1,omitempty"`
	Timestamp uint64 `json:"timestamp"`
}

func decodeReserveUpdate(w wireReserveUpdate) (ReserveUpdate, error) {
	poolID, err := arb.ParsePoolID(w.PoolID)
	if err != nil {
		return ReserveUpdate{}, fmt.Errorf("decode pool id %q: %w", w.PoolID, err)
	}
	token0ID, err := arb.ParseTokenID(w.Token0ID)
	if err != nil {
		return ReserveUpdate{}, fmt.Errorf("decode token0 id %q: %w", w.Token0ID, err)
	}
	token1ID, err := arb.ParseTokenID(w.Token1ID)
	if err != nil {
		return ReserveUpdate{}, fmt.Errorf("decode token1 id %q: %w", w.Token1ID, err)
	}
	if token0ID == token1ID {
		return ReserveUpdate{}, fmt.Errorf("decode pool %q: token0 and token1 are the same token", w.PoolID)
	}

	update := ReserveUpdate{
		PoolID:    poolID,
		Token0ID:  token0ID,
		Token1ID:  token1ID,
		Timestamp: w.Timestamp,
	}

	if w.Reserve0 != "" && w.Reserve1 != "" {
		r0, err := decodeReserveString(w.Reserve0)
		if err != nil {
			return ReserveUpdate{}, fmt.Errorf("decode reserve0 %q: %w", w.Reserve0, err)
		}
		r1, err := decodeReserveString(w.Reserve1)
		if err != nil {
			return ReserveUpdate{}, fmt.Errorf("decode reserve1 %q: %w", w.Reserve1, err)
		}
		update.Reserve0 = r0
		update.Reserve1 = r1
	}

	return update, nil
}

func decodeReserveString(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal reserve: %q", s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("reserve overflows uint256: %q", s)
	}
	return v, nil
}

// Config holds the configuration for a JSONRPCSource.
type Config struct {
	URL        string
	Logger     Logger
	BufferSize uint
}

func (c *Config) validate() error {
	if c.URL == "" {
		return errors.New("config: URL is required")
	}
	if c.BufferSize < 1 {
		return errors.New("config: BufferSize must be greater than 0")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	return nil
}

// JSONRPCSource is a concrete Source that subscribes to a reserve-update
// feed over JSON-RPC, reconnecting with exponential backoff on failure.
// Grounded nearly line-for-line on the teacher's jsonrpc client.Client.
type JSONRPCSource struct {
	updatesCh chan Batch
	errCh     chan error
	logger    Logger
}

// NewJSONRPCSource dials url and begins streaming reserve updates in the
// background. The returned error is only non-nil for configuration errors;
// connection and subscription failures are logged and retried internally.
// Nothing is sent on Err(); it is closed once ctx is done.
func NewJSONRPCSource(ctx context.Context, cfg Config) (*JSONRPCSource, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &JSONRPCSource{
		updatesCh: make(chan Batch, cfg.BufferSize),
		errCh:     make(chan error, 1),
		logger:    cfg.Logger,
	}

	go s.run(ctx, cfg.URL)
	return s, nil
}

// Updates returns a read-only channel of reserve-update batches.
func (s *JSONRPCSource) Updates() <-chan Batch {
	return s.updatesCh
}

// Err returns a read-only channel for receiving fatal (unrecoverable) errors.
func (s *JSONRPCSource) Err() <-chan error {
	return s.errCh
}

func (s *JSONRPCSource) run(ctx context.Context, url string) {
	defer close(s.errCh)
	reconnectDelay := initialReconnectDelay

	for {
		if ctx.Err() != nil {
			s.logger.Info("context canceled, shutting down")
			return
		}

		s.logger.Info("attempting to connect to RPC server", "url", url)
		rpcClient, err := rpc.DialContext(ctx, url)
		if err != nil {
			s.logger.Error("failed to connect to RPC server, will retry", "error", err, "delay", reconnectDelay)
			if !sleepOrDone(ctx, reconnectDelay) {
				return
			}
			reconnectDelay = minDuration(reconnectDelay*2, maxReconnectDelay)
			continue
		}

		s.logger.Info("successfully connected to RPC server")
		reconnectDelay = initialReconnectDelay

		err = s.subscribeAndProcess(ctx, rpcClient)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.logger.Info("context canceled, shutting down")
				return
			}
			s.logger.Error("subscription failed, will reconnect", "error", err, "delay", reconnectDelay)
			if !sleepOrDone(ctx, reconnectDelay) {
				return
			}
			reconnectDelay = minDuration(reconnectDelay*2, maxReconnectDelay)
		}
	}
}

func (s *JSONRPCSource) subscribeAndProcess(ctx context.Context, rpcClient *rpc.Client) error {
	defer rpcClient.Close()

	rawCh := make(chan json.RawMessage)
	sub, err := rpcClient.Subscribe(ctx, RPCNamespace, rawCh, ReserveUpdatesSubscriptionMethod)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	defer sub.Unsubscribe()

	s.logger.Info("successfully subscribed, waiting for data")
	for {
		select {
		case rawData := <-rawCh:
			start := time.Now()
			batch, err := s.decodeBatch(rawData)
			if err != nil {
				s.logger.Error("error decoding reserve update batch", "error", err)
				continue
			}
			s.logger.Debug("reserve update batch processed",
				"updates", len(batch),
				"latency_ms", time.Since(start).Milliseconds(),
			)
			select {
			case s.updatesCh <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err := <-sub.Err():
			return err
		case <-ctx.Done():
			s.logger.Info("context canceled, stopping subscription")
			return ctx.Err()
		}
	}
}

func (s *JSONRPCSource) decodeBatch(raw json.RawMessage) (Batch, error) {
	var wire []wireReserveUpdate
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reserve update batch: %w", err)
	}

	batch := make(Batch, 0, len(wire))
	for _, w := range wire {
		update, err := decodeReserveUpdate(w)
		if err != nil {
			return nil, err
		}
		batch = append(batch, update)
	}
	return batch, nil
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
