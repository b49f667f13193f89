package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	reqLog := zap.NewNop().With(zap.String("request_id", "abc"))
	ctx := InjectLogger(context.Background(), reqLog)

	assert.Same(t, reqLog, WithCtx(ctx))
}

func TestMongoCoreBuildsDocuments(t *testing.T) {
	sink := newMongoSink(func(context.Context, []any) error { return nil })
	log := zap.New(sink.Core(zapcore.DebugLevel)).With(zap.String("request_id", "rid-1"))

	log.Info("product created", zap.Uint("product_id", 7))

	select {
	case doc := <-sink.queue:
		assert.Equal(t, "product created", doc.Msg)
		assert.Equal(t, "info", doc.Level)
		assert.Equal(t, "rid-1", doc.RequestID)
		assert.EqualValues(t, 7, doc.Fields["product_id"])
		assert.NotContains(t, doc.Fields, "request_id")
	default:
		t.Fatal("expected a queued document")
	}
}

func TestMongoCoreRespectsLevel(t *testing.T) {
	sink := newMongoSink(func(context.Context, []any) error { return nil })
	log := zap.New(sink.Core(zapcore.WarnLevel))

	log.Info("ignored")
	assert.Len(t, sink.queue, 0)
}

func TestMongoSinkFlushesOnClose(t *testing.T) {
	got := make(chan int, 4)
	sink := newMongoSink(func(_ context.Context, docs []any) error {
		got <- len(docs)
		return nil
	})
	go sink.drainLoop()

	sink.enqueue(LogDocument{Time: time.Now(), Msg: "a"})
	sink.enqueue(LogDocument{Time: time.Now(), Msg: "b"})
	sink.Close()

	var total int
	for total < 2 {
		select {
		case n := <-got:
			total += n
		case <-time.After(time.Second):
			require.FailNow(t, "sink did not flush")
		}
	}
	assert.Equal(t, 2, total)
}

func TestMongoSinkConcurrentClose(t *testing.T) {
	var closers sync.WaitGroup
	sink := newMongoSink(func(context.Context, []any) error { return nil })
	go sink.drainLoop()
	sink.enqueue(LogDocument{Time: time.Now(), Msg: "a"})

	for i := 0; i < 8; i++ {
		closers.Add(1)
		go func() {
			defer closers.Done()
			sink.Close()
		}()
	}
	closers.Wait()

	select {
	case <-sink.closed:
	default:
		t.Fatal("drain loop still running after Close")
	}
	sink.Close()
}
