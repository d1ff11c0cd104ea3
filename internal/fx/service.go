// Package fx converts currencies to EUR using a remote rate API with a
// per-run cache and a static fallback table.
package fx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ppiankov/aidtrace/internal/model"
)

// Reference is the currency every amount is converted into
const Reference = "EUR"

// Service looks up conversion rates. It is safe for concurrent use and is
// meant to live for one run.
type Service struct {
	client  *http.Client
	baseURL string
	remote  bool
	timeout time.Duration
	rates   *gocache.Cache
	group   singleflight.Group
	logger  *zap.Logger
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// NewService creates a rate service. A nil client uses http.DefaultClient,
// a nil logger discards output.
func NewService(cfg model.FXConfig, client *http.Client, logger *zap.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		remote:  cfg.Remote && cfg.BaseURL != "",
		timeout: cfg.Timeout,
		rates:   gocache.New(gocache.NoExpiration, 0),
		logger:  logger,
	}
}

// RateToReference returns the EUR value of one unit of code
func (s *Service) RateToReference(ctx context.Context, code string) float64 {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" || c == Reference {
		return 1.0
	}
	if v, ok := s.rates.Get(c); ok {
		return v.(float64)
	}

	v, _, _ := s.group.Do(c, func() (interface{}, error) {
		if v, ok := s.rates.Get(c); ok {
			return v, nil
		}
		rate := s.lookup(ctx, c)
		s.rates.Set(c, rate, gocache.NoExpiration)
		return rate, nil
	})
	return v.(float64)
}

func (s *Service) lookup(ctx context.Context, code string) float64 {
	if s.remote {
		rate, err := s.fetch(ctx, code)
		if err == nil {
			return rate
		}
		s.logger.Debug("fx lookup failed, using fallback",
			zap.String("currency", code),
			zap.Error(err))
	}
	return Fallback(code)
}

func (s *Service) fetch(ctx context.Context, code string) (float64, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("base", code)
	q.Set("symbols", Reference)
	endpoint := s.baseURL + "/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, eris.Wrap(err, "fx: build request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, eris.Wrapf(err, "fx: get %s", code)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, eris.Errorf("fx: status %d for %s", resp.StatusCode, code)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, eris.Wrap(err, "fx: decode response")
	}
	rate := body.Rates[Reference]
	if rate <= 0 {
		return 0, eris.Errorf("fx: no %s rate for %s", Reference, code)
	}
	return rate, nil
}
