package strdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
	recordrepo "github.com/kailas-cloud/strdex/internal/repository/record"
	healthuc "github.com/kailas-cloud/strdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/strdex/internal/usecase/record"
)

// Internal interface for substitution in tests.
type stringUseCase interface {
	Create(ctx context.Context, value string) (domrec.Record, error)
	Get(ctx context.Context, value string) (domrec.Record, error)
	Delete(ctx context.Context, value string) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, p filter.Params) (recorduc.Listing, error)
	ListByNaturalLanguage(ctx context.Context, query string) (recorduc.Interpreted, error)
}

// Client is the strdex SDK entry point. It is safe for concurrent use.
type Client struct {
	strSvc    stringUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client backed by a fresh in-memory store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		maxValueBytes: domrec.DefaultMaxValueBytes,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.maxValueBytes < 0 {
		return nil, fmt.Errorf("strdex: max value bytes must be non-negative, got %d", cfg.maxValueBytes)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	var hasher analysis.Hasher = analysis.SHA256
	if cfg.hasher != nil {
		hasher = analysis.HasherFunc(cfg.hasher)
	}

	repo := recordrepo.New()
	strSvc := recorduc.New(repo, analysis.New(hasher), nlquery.NewParser()).
		WithMaxValueBytes(cfg.maxValueBytes).
		WithRejectUnrecognized(cfg.rejectUnrecognized)

	return &Client{
		strSvc:    strSvc,
		healthSvc: healthuc.New(repo),
		obs:       obs,
	}
}

// Strings returns the string analysis service.
func (c *Client) Strings() *StringService {
	return &StringService{svc: c.strSvc, obs: c.obs}
}
