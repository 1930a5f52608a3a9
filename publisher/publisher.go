// Package publisher repeatedly computes the transforms of a robot at a fixed rate and hands them
// to a Sink. It owns the locking around an Engine so joint states can arrive from any goroutine.
package publisher

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/robotstate"
	"go.viam.com/robotstate/ros"
	"go.viam.com/robotstate/utils"
)

// DefaultRate is the publishing rate in Hz used when Options.Rate is 0.
const DefaultRate = 50.

// A Sink receives every published transform set.
type Sink interface {
	Publish(ctx context.Context, msg *ros.TFMessage) error
}

// Options configures a Publisher.
type Options struct {
	// Rate is the publishing frequency in Hz.
	Rate   float64
	Clock  clock.Clock
	Logger logging.Logger
}

// Publisher publishes the transforms of an Engine at a fixed rate until closed.
type Publisher struct {
	mu     sync.Mutex
	engine *robotstate.Engine

	sink    Sink
	clock   clock.Clock
	logger  logging.Logger
	workers utils.StoppableWorkers
}

// New starts publishing the transforms of engine to sink.
func New(engine *robotstate.Engine, sink Sink, opts Options) (*Publisher, error) {
	if engine == nil {
		return nil, errors.New("publisher needs an engine")
	}
	if sink == nil {
		return nil, errors.New("publisher needs a sink")
	}
	rate := opts.Rate
	if rate == 0 {
		rate = DefaultRate
	}
	if rate < 0 {
		return nil, errors.Errorf("publish rate must be positive, got %v", rate)
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewBlankLogger("publisher")
	}

	p := &Publisher{
		engine: engine,
		sink:   sink,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	// created before the worker starts so a mock clock sees it right away
	ticker := p.clock.Ticker(time.Duration(float64(time.Second) / rate))
	p.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		p.run(ctx, ticker)
	})
	return p, nil
}

func (p *Publisher) run(ctx context.Context, ticker *clock.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := p.PublishOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warnw("failed to publish transforms", "error", err)
		}
	}
}

// UpdateJointState applies new joint positions. Safe to call from any goroutine.
func (p *Publisher) UpdateJointState(js ros.JointState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engine.SetValues(js)
}

// Positions returns the current joint positions.
func (p *Publisher) Positions() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Positions()
}

// PublishOnce computes the transforms stamped with the current time and publishes them.
func (p *Publisher) PublishOnce(ctx context.Context) error {
	p.mu.Lock()
	records := p.engine.Compute(robotstate.WithPublishTime(p.clock.Now().UnixNano()))
	p.mu.Unlock()
	return p.sink.Publish(ctx, robotstate.TransformSet(records))
}

// Close stops publishing and closes the sink if it is an io.Closer.
func (p *Publisher) Close() error {
	p.workers.Stop()
	if closer, ok := p.sink.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

type multiSink []Sink

// MultiSink publishes to every sink in order. Publishing and closing continue past failures and
// report all of them.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (ms multiSink) Publish(ctx context.Context, msg *ros.TFMessage) error {
	var err error
	for _, s := range ms {
		err = multierr.Append(err, s.Publish(ctx, msg))
	}
	return err
}

func (ms multiSink) Close() error {
	var err error
	for _, s := range ms {
		if closer, ok := s.(io.Closer); ok {
			err = multierr.Append(err, closer.Close())
		}
	}
	return err
}
