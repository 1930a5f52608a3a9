// Package robotstate computes the transform of every joint of a robot description from the
// current joint positions.
//
// An Engine parses its description once. After that only joint positions change: SetValues
// records new positions and Compute emits one TransformRecord per joint, relative to the joint's
// parent link. An Engine is not safe for concurrent use; callers that share one across
// goroutines must guard it themselves (see the publisher package).
package robotstate

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/robotstate/fetch"
	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/referenceframe"
	"go.viam.com/robotstate/referenceframe/urdf"
	"go.viam.com/robotstate/ros"
	"go.viam.com/robotstate/spatialmath"
)

// TransformRecord is the pose of a child link relative to its parent link at one instant.
type TransformRecord struct {
	Parent    string
	Child     string
	Transform spatialmath.Transform
	Stamp     ros.Time
}

// Engine holds a parsed Model and the current position of each of its joints.
type Engine struct {
	model  *referenceframe.Model
	prefix string
	logger logging.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithFramePrefix makes every emitted link label read "prefix/link". An empty prefix leaves
// labels unchanged.
func WithFramePrefix(prefix string) Option {
	return func(e *Engine) {
		e.prefix = prefix
	}
}

// NewEngineFromText parses text and returns an Engine over the joints found. A description
// without any readable joints yields an Engine that computes no transforms.
func NewEngineFromText(text string, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		model:  urdf.NewModelFromText(text, logger),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromSource obtains the description named by locator through fetcher and parses it.
// The only errors come from retrieval; a nil fetcher fails with fetch.ErrRetrievalUnavailable.
func NewEngineFromSource(
	ctx context.Context,
	locator string,
	fetcher fetch.Fetcher,
	logger logging.Logger,
	opts ...Option,
) (*Engine, error) {
	if fetcher == nil {
		return nil, fetch.NewRetrievalUnavailableError(locator, "no fetcher provided")
	}
	text, err := fetcher(ctx, locator)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load robot description")
	}
	return NewEngineFromText(text, logger, opts...), nil
}

// NewEngineFromFile reads the description from a local file.
func NewEngineFromFile(path string, logger logging.Logger, opts ...Option) (*Engine, error) {
	r := fetch.NewRetriever(nil, logger)
	return NewEngineFromSource(context.Background(), path, r.Fetch, logger, opts...)
}

// Model returns the parsed model. Its joints reflect the current positions.
func (e *Engine) Model() *referenceframe.Model {
	return e.model
}

// SetValues applies the positions in js to the joints they name. When a name repeats, its last
// position wins; a name with no matching position is set to 0. Names that are not joints of the
// model are ignored.
func (e *Engine) SetValues(js ros.JointState) {
	values := make(map[string]float64, len(js.Name))
	for i, name := range js.Name {
		var value float64
		if i < len(js.Position) {
			value = js.Position[i]
		}
		values[name] = value
	}

	for name, value := range values {
		idx, ok := e.model.Index(name)
		if !ok {
			e.logger.Debugw("ignoring unknown joint", "joint", name)
			continue
		}
		e.model.JointAt(idx).SetValue(value)
	}
}

// Compute returns the transform of every joint at its current position, in model order. It does
// not change the Engine.
func (e *Engine) Compute(opts ...ComputeOption) []TransformRecord {
	var co computeOptions
	for _, opt := range opts {
		opt(&co)
	}

	stamp := ros.TimeFromNanos(co.publishTime)
	records := make([]TransformRecord, 0, e.model.Len())
	for i := 0; i < e.model.Len(); i++ {
		j := e.model.JointAt(i)
		records = append(records, TransformRecord{
			Parent:    e.frameLabel(j.Parent()),
			Child:     e.frameLabel(j.Child()),
			Transform: j.Transform(),
			Stamp:     stamp,
		})
	}
	return records
}

// ComputeFromValues is SetValues followed by Compute.
func (e *Engine) ComputeFromValues(js ros.JointState, opts ...ComputeOption) []TransformRecord {
	e.SetValues(js)
	return e.Compute(opts...)
}

// Positions returns a snapshot of the current position of every joint, fixed joints included.
func (e *Engine) Positions() map[string]float64 {
	positions := make(map[string]float64, e.model.Len())
	for i := 0; i < e.model.Len(); i++ {
		j := e.model.JointAt(i)
		positions[j.Name()] = j.Value()
	}
	return positions
}

func (e *Engine) frameLabel(link string) string {
	if e.prefix == "" {
		return link
	}
	return e.prefix + "/" + link
}
