package ros

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// JSONLinesSink writes each published message as one line of JSON.
type JSONLinesSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLinesSink returns a sink writing to w.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{enc: json.NewEncoder(w)}
}

// Publish writes msg unless ctx is already done.
func (s *JSONLinesSink) Publish(ctx context.Context, msg *TFMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Wrap(s.enc.Encode(msg), "failed to write transforms")
}
