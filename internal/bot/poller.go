package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iamwavecut/wordguard/internal/infra"
)

const (
	updatesBuffer   = 100
	pollRetryDelay  = 3 * time.Second
	defaultPollSecs = 60
)

// Poller feeds long-polled updates to the processor one at a time.
type Poller struct {
	client     Client
	processor  *UpdateProcessor
	timeout    int
	retryDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewPoller(client Client, processor *UpdateProcessor, timeoutSeconds int) *Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultPollSecs
	}
	return &Poller{
		client:     client,
		processor:  processor,
		timeout:    timeoutSeconds,
		retryDelay: pollRetryDelay,
	}
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.group != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	p.cancel = cancel
	p.group = g

	updateConfig := api.NewUpdate(0)
	updateConfig.Timeout = p.timeout
	updates := make(chan api.Update, updatesBuffer)

	g.Go(func() error {
		return PollUpdates(gctx, p.client, updateConfig, updates, p.retryDelay)
	})
	g.Go(func() error {
		return p.dispatch(gctx, updates)
	})
	log.WithField("context", "polling").Info("bot started")
	return nil
}

func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	g, cancel := p.group, p.cancel
	p.group, p.cancel = nil, nil
	p.mu.Unlock()
	if g == nil {
		return nil
	}
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func (p *Poller) dispatch(ctx context.Context, updates <-chan api.Update) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return ctx.Err()
			}
			err := infra.Recoverable("process_update", func() error {
				return p.processor.Process(ctx, &update)
			})
			if err != nil {
				log.WithError(err).WithField("update_id", update.UpdateID).Error("cant process update")
			}
		}
	}
}
