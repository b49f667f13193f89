package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Caller    string    `bson:"caller,omitempty"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Fields    bson.M    `bson:"fields,omitempty"`
}

// MongoSink batches log documents into a MongoDB collection from a single
// background goroutine. Entries are dropped when the queue is full; logging
// never blocks a request.
type MongoSink struct {
	client *mongo.Client
	insert func(ctx context.Context, docs []any) error
	queue  chan LogDocument
	done   chan struct{}
	closed chan struct{}
	once   sync.Once
}

// NewMongoSink connects to uri and starts the drain loop. Call Close on
// shutdown to flush what is still queued.
func NewMongoSink(uri, db, collection string) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("mongo sink: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo sink: ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	s := newMongoSink(func(ctx context.Context, docs []any) error {
		_, err := col.InsertMany(ctx, docs)
		return err
	})
	s.client = client
	go s.drainLoop()
	return s, nil
}

func newMongoSink(insert func(ctx context.Context, docs []any) error) *MongoSink {
	return &MongoSink{
		insert: insert,
		queue:  make(chan LogDocument, mongoQueueSize),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Core returns a zapcore.Core that feeds this sink.
func (s *MongoSink) Core(enab zapcore.LevelEnabler) zapcore.Core {
	return &mongoCore{LevelEnabler: enab, sink: s}
}

func (s *MongoSink) enqueue(doc LogDocument) {
	select {
	case s.queue <- doc:
	default:
	}
}

func (s *MongoSink) drainLoop() {
	defer close(s.closed)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]any, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.insert(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending documents and disconnects. Concurrent and repeated
// calls return once the first one has finished.
func (s *MongoSink) Close() {
	s.once.Do(func() {
		close(s.done)
		<-s.closed
		if s.client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.client.Disconnect(ctx)
		}
	})
}

type mongoCore struct {
	zapcore.LevelEnabler
	sink   *MongoSink
	fields []zapcore.Field
}

func (c *mongoCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &mongoCore{LevelEnabler: c.LevelEnabler, sink: c.sink, fields: merged}
}

func (c *mongoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *mongoCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	doc := LogDocument{
		Time:  ent.Time,
		Level: ent.Level.String(),
		Msg:   ent.Message,
	}
	if ent.Caller.Defined {
		doc.Caller = ent.Caller.TrimmedPath()
	}
	if rid, ok := enc.Fields["request_id"].(string); ok {
		doc.RequestID = rid
		delete(enc.Fields, "request_id")
	}
	if len(enc.Fields) > 0 {
		doc.Fields = bson.M(enc.Fields)
	}

	c.sink.enqueue(doc)
	return nil
}

func (c *mongoCore) Sync() error { return nil }
