package nats

import (
	"context"
	"errors"
	"testing"

	"portfolio-be/internal/pkg/logger"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStreams struct {
	err error
	got jetstream.StreamConfig
}

func (f *fakeStreams) CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	f.got = cfg
	return nil, f.err
}

func TestEnsureStreamConfig(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fake := &fakeStreams{}

	ensureStream(context.Background(), fake, logger.NewWithCore(core))

	assert.Equal(t, StreamName, fake.got.Name)
	assert.Equal(t, []string{"portfolio.>"}, fake.got.Subjects)
	assert.Equal(t, jetstream.LimitsPolicy, fake.got.Retention)
	assert.Zero(t, logs.Len())
}

func TestEnsureStreamLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fake := &fakeStreams{err: errors.New("stream name already in use")}

	ensureStream(context.Background(), fake, logger.NewWithCore(core))

	entries := logs.FilterMessage("Failed to ensure stream").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "EVENTS", entries[0].ContextMap()["module"])
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "portfolio.CONTACT_SUBMITTED", Subject("CONTACT_SUBMITTED"))
}
