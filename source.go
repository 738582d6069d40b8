package fieldz

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
	"go.uber.org/zap"
)

// Source produces encoded values for a field from outside the UI, such as a
// file being edited or a channel fed by another component.
type Source interface {
	// Watch begins observing the source and returns a channel that emits a
	// payload whenever the value changes. The channel is closed when ctx is
	// canceled or the source is exhausted.
	//
	// Implementations should emit the current value immediately.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// Follow drives field from src: every payload is decoded with codec and
// written through SetValue, so validation and debounce behave exactly as for
// user input. Payloads that fail to decode are reported and skipped, leaving
// the field unchanged. A nil codec decodes JSON.
//
// Follow blocks until ctx is canceled, returning ctx.Err(), or until the
// source closes, returning nil.
func Follow[T comparable](ctx context.Context, field *Field[T], src Source, codec Codec) error {
	if codec == nil {
		codec = JSONCodec{}
	}

	payloads, err := src.Watch(ctx)
	if err != nil {
		return fmt.Errorf("follow %s: failed to start source: %w", field.Label(), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-payloads:
			if !ok {
				return nil
			}

			var v T
			if err := codec.Unmarshal(raw, &v); err != nil {
				field.logger.Warn("source payload rejected",
					zap.String("field", field.Label()),
					zap.String("content_type", codec.ContentType()),
					zap.Error(err),
				)
				capitan.Emit(ctx, FieldDecodeFailed,
					KeyField.Field(field.Label()),
					KeyError.Field(err.Error()),
				)
				continue
			}
			field.SetValue(v)
		}
	}
}

// ChannelSource wraps an existing byte channel as a Source.
// Useful for testing and for components that already produce payloads.
type ChannelSource struct {
	ch     <-chan []byte
	direct bool
}

// NewChannelSource creates a ChannelSource that forwards values from ch
// through an internal goroutine, stopping when the Watch context ends.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// NewSyncChannelSource creates a ChannelSource that hands ch to the reader
// directly. Combined with a buffered, closed channel this makes Follow
// deterministic in tests.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, direct: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (s *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if s.direct {
		return s.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
