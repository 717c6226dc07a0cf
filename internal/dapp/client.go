package dapp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Client runs the connect and join operations against a Connector.
type Client struct {
	connector       Connector
	expectedChainID int64
	networkName     string
	callTimeout     time.Duration
	confirmTimeout  time.Duration
	log             *zap.Logger

	mu      sync.Mutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeouts bounds each read/submit call and the wait for a receipt.
// Zero leaves the caller's context in charge.
func WithTimeouts(call, confirm time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = call
		c.confirmTimeout = confirm
	}
}

// WithNetworkName names the expected network in mismatch errors.
func WithNetworkName(name string) Option {
	return func(c *Client) { c.networkName = name }
}

// NewClient returns a Client that only accepts sessions on expectedChainID.
func NewClient(connector Connector, expectedChainID int64, opts ...Option) *Client {
	c := &Client{
		connector:       connector,
		expectedChainID: expectedChainID,
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConnectResult is what a successful connect learned.
type ConnectResult struct {
	SessionID string
	Address   string
	ChainID   int64
	Joined    bool
	Count     uint64
}

// Event converts the result into the state transition it causes.
func (r ConnectResult) Event() Event {
	return ConnectSucceeded{Address: r.Address, ChainID: r.ChainID, Joined: r.Joined, Count: r.Count}
}

// Connect opens a session, checks the network and reads membership and the
// member count concurrently. Any previous session is closed first.
func (c *Client) Connect(ctx context.Context) (ConnectResult, error) {
	const op = "connect"
	c.closeSession()

	cctx, cancel := c.withTimeout(ctx, c.callTimeout)
	defer cancel()

	p, err := c.connector.Connect(cctx)
	if err != nil {
		return ConnectResult{}, c.fail(op, err)
	}

	chainID, err := p.ChainID(cctx)
	if err != nil {
		_ = p.Close()
		return ConnectResult{}, c.fail(op, err)
	}
	if chainID != c.expectedChainID {
		_ = p.Close()
		return ConnectResult{}, c.fail(op, &Error{
			Kind: KindNetworkMismatch,
			Op:   op,
			Err:  fmt.Errorf("%w: wallet is on chain %d, change the network to %s", ErrWrongNetwork, chainID, c.expectedName()),
		})
	}

	wl, err := p.Contract(chainID)
	if err != nil {
		_ = p.Close()
		return ConnectResult{}, c.fail(op, err)
	}

	var (
		joined bool
		count  uint8
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() error {
		var err error
		joined, err = wl.WhitelistedAddresses(gctx, p.Address())
		if err != nil {
			return fmt.Errorf("reading membership: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		count, err = wl.NumAddressesWhitelisted(gctx)
		if err != nil {
			return fmt.Errorf("reading member count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		_ = p.Close()
		return ConnectResult{}, c.fail(op, err)
	}

	s := newSession(p, chainID, wl)
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	c.log.Info("wallet connected",
		zap.Stringer("session", s.ID),
		zap.String("address", s.Address),
		zap.Int64("chainID", chainID),
		zap.Bool("joined", joined),
		zap.Uint8("count", count),
	)
	return ConnectResult{
		SessionID: s.ID.String(),
		Address:   s.Address,
		ChainID:   chainID,
		Joined:    joined,
		Count:     uint64(count),
	}, nil
}

// Submit broadcasts addAddressToWhitelist for the session address and
// returns the transaction hash.
func (c *Client) Submit(ctx context.Context) (string, error) {
	const op = "join"
	s, err := c.current()
	if err != nil {
		return "", c.fail(op, err)
	}

	cctx, cancel := c.withTimeout(ctx, c.callTimeout)
	defer cancel()

	hash, err := s.contract.AddAddressToWhitelist(cctx)
	if err != nil {
		return "", c.fail(op, err)
	}
	c.log.Info("join submitted", zap.Stringer("session", s.ID), zap.String("tx", hash))
	return hash, nil
}

// JoinResult describes a confirmed join.
type JoinResult struct {
	TxHash      string
	BlockNumber uint64
	Count       uint64
	// CountErr is set when the join confirmed but the count re-read failed.
	CountErr error
}

// Event converts the result into the state transition it causes.
func (r JoinResult) Event() Event {
	return JoinConfirmed{Count: r.Count, Stale: r.CountErr != nil}
}

// Await waits for hash to be mined. Only a receipt with status 1 counts as
// joined; the member count is then re-read.
func (c *Client) Await(ctx context.Context, hash string) (JoinResult, error) {
	const op = "join"
	s, err := c.current()
	if err != nil {
		return JoinResult{}, c.fail(op, err)
	}

	wctx, cancel := c.withTimeout(ctx, c.confirmTimeout)
	defer cancel()

	receipt, err := s.contract.WaitMined(wctx, hash)
	if err != nil {
		return JoinResult{}, c.fail(op, err)
	}

	res := JoinResult{TxHash: hash, BlockNumber: receipt.BlockNumber}
	count, err := c.readCount(ctx, s)
	if err != nil {
		res.CountErr = classify("refresh count", err)
		c.log.Warn("count refresh after join failed", zap.Stringer("session", s.ID), zap.Error(err))
	} else {
		res.Count = count
	}

	c.log.Info("join confirmed",
		zap.Stringer("session", s.ID),
		zap.String("tx", hash),
		zap.Uint64("block", receipt.BlockNumber),
	)
	return res, nil
}

// Join submits and awaits in one call.
func (c *Client) Join(ctx context.Context) (JoinResult, error) {
	hash, err := c.Submit(ctx)
	if err != nil {
		return JoinResult{}, err
	}
	return c.Await(ctx, hash)
}

// RefreshCount re-reads numAddressesWhitelisted.
func (c *Client) RefreshCount(ctx context.Context) (uint64, error) {
	s, err := c.current()
	if err != nil {
		return 0, c.fail("refresh count", err)
	}
	count, err := c.readCount(ctx, s)
	if err != nil {
		return 0, c.fail("refresh count", err)
	}
	return count, nil
}

// Session returns the open session, or nil.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Close ends the session.
func (c *Client) Close() error {
	return c.closeSession()
}

func (c *Client) readCount(ctx context.Context, s *Session) (uint64, error) {
	cctx, cancel := c.withTimeout(ctx, c.callTimeout)
	defer cancel()
	n, err := s.contract.NumAddressesWhitelisted(cctx)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (c *Client) current() (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, ErrNotConnected
	}
	return c.session, nil
}

func (c *Client) closeSession() error {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()
	if s == nil {
		return nil
	}
	c.log.Debug("session closed", zap.Stringer("session", s.ID))
	return s.Close()
}

func (c *Client) fail(op string, err error) error {
	err = classify(op, err)
	c.log.Warn("operation failed",
		zap.String("op", op),
		zap.Stringer("kind", KindOf(err)),
		zap.Error(err),
	)
	return err
}

func (c *Client) expectedName() string {
	if c.networkName != "" {
		return c.networkName
	}
	return fmt.Sprintf("chain %d", c.expectedChainID)
}

func (c *Client) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
