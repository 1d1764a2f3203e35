package log

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultRemoteBatchSize = 64

type RemoteOptions struct {
	URL       string
	Token     string
	BatchSize int

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// RemoteCore ships JSON encoded entries to a log aggregator in batches.
// Delivery failures are reported to the fallback logger and never returned to the caller.
type RemoteCore struct {
	zapcore.LevelEnabler
	enc  zapcore.Encoder
	sink *remoteSink
}

type remoteSink struct {
	client    *resty.Client
	url       string
	token     string
	batchSize int
	fallback  *zap.Logger

	mu      sync.Mutex
	pending [][]byte

	sent    atomic.Int64
	dropped atomic.Int64
}

func NewRemoteCore(opts RemoteOptions, level zapcore.LevelEnabler, fallback *zap.Logger) *RemoteCore {
	client := resty.New()
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	}
	client.SetTimeout(5 * time.Second)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRemoteBatchSize
	}

	return &RemoteCore{
		LevelEnabler: level,
		enc:          zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink: &remoteSink{
			client:    client,
			url:       opts.URL,
			token:     opts.Token,
			batchSize: batchSize,
			fallback:  fallback,
		},
	}
}

func (c *RemoteCore) With(fields []zapcore.Field) zapcore.Core {
	enc := c.enc.Clone()
	for _, field := range fields {
		field.AddTo(enc)
	}
	return &RemoteCore{
		LevelEnabler: c.LevelEnabler,
		enc:          enc,
		sink:         c.sink,
	}
}

func (c *RemoteCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *RemoteCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	line := bytes.TrimSpace(buf.Bytes())
	record := make([]byte, len(line))
	copy(record, line)
	buf.Free()

	if c.sink.add(record) {
		c.sink.flush()
	}
	return nil
}

func (c *RemoteCore) Sync() error {
	c.sink.flush()
	return nil
}

// Sent and Dropped count delivered and lost entries.
func (c *RemoteCore) Sent() int64 {
	return c.sink.sent.Load()
}

func (c *RemoteCore) Dropped() int64 {
	return c.sink.dropped.Load()
}

func (s *remoteSink) add(record []byte) (full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, record)
	return len(s.pending) >= s.batchSize
}

func (s *remoteSink) flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	body := make([]byte, 0, 2+len(batch)*128)
	body = append(body, '[')
	body = append(body, bytes.Join(batch, []byte{','})...)
	body = append(body, ']')

	req := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if len(s.token) > 0 {
		req.SetAuthToken(s.token)
	}

	resp, err := req.Post(s.url)
	if err == nil && !resp.IsSuccess() {
		err = errors.Errorf("Log sink responded with %s", resp.Status())
	}
	if err != nil {
		s.dropped.Add(int64(len(batch)))
		s.fallback.Warn("Failed to ship logs",
			zap.String("url", s.url),
			zap.Int("entries", len(batch)),
			zap.Error(err),
		)
		return
	}
	s.sent.Add(int64(len(batch)))
}
