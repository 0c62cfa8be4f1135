package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rossgrat/iot-telemetry-backend/internal/telemetry"
	"github.com/rossgrat/iot-telemetry-backend/internal/worker"
)

var (
	ErrConnectFailed = errors.New("broker connect failed")
	ErrRecordFailed  = errors.New("event record failed")
)

const (
	defaultQueueSize    = 256
	defaultWorkers      = 4
	defaultDrainTimeout = 10 * time.Second
)

type recorder interface {
	RecordEvent(ctx context.Context, event telemetry.ValidatedEvent) (int64, error)
}

type Config struct {
	BrokerURL    string
	Topic        string
	ClientID     string
	QueueSize    int
	Workers      int
	DrainTimeout time.Duration
	Store        recorder
	// MessageLog receives one durable entry per rejected message and
	// per failed persistence attempt, with full payload context.
	MessageLog *slog.Logger
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Received  int64
	Rejected  int64
	Dropped   int64
	Persisted int64
	Failed    int64
}

// Ingestor subscribes to the telemetry topic and persists validated
// readings. A bounded queue decouples the broker callback from storage:
// the callback only validates and enqueues, the worker pool drains, so
// slow storage can never stall message delivery. When the queue is full
// messages are dropped and counted rather than blocking the broker
// connection.
type Ingestor struct {
	cfg    Config
	client mqtt.Client
	queue  chan telemetry.ValidatedEvent
	msgLog *slog.Logger
	wg     sync.WaitGroup

	received  atomic.Int64
	rejected  atomic.Int64
	dropped   atomic.Int64
	persisted atomic.Int64
	failed    atomic.Int64
}

func New(cfg Config) *Ingestor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = defaultDrainTimeout
	}
	msgLog := cfg.MessageLog
	if msgLog == nil {
		msgLog = slog.Default()
	}
	return &Ingestor{
		cfg:    cfg,
		queue:  make(chan telemetry.ValidatedEvent, cfg.QueueSize),
		msgLog: msgLog,
	}
}

// Run connects to the broker, subscribes, and blocks until ctx is
// cancelled, then drains in-flight messages before returning. The
// storage handle must stay open until Run returns.
func (i *Ingestor) Run(ctx context.Context) error {
	const fn = "Ingestor:Run"

	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.BrokerURL).
		SetClientID(i.cfg.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(time.Second).
		SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		slog.InfoContext(ctx, "Broker connected, subscribing...", "topic", i.cfg.Topic)
		// qos 0: at-most-once, matching the transport contract
		if token := c.Subscribe(i.cfg.Topic, 0, i.onMessage); token.Wait() && token.Error() != nil {
			slog.ErrorContext(ctx, "Subscribe failed", "topic", i.cfg.Topic, "error", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		slog.ErrorContext(ctx, "Broker connection lost", "error", err)
	}

	i.client = mqtt.NewClient(opts)
	if err := i.connect(ctx); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrConnectFailed, err)
	}

	// Workers run on their own context so they can keep draining after
	// ctx is cancelled; drainCancel is the hard stop.
	drainCtx, drainCancel := context.WithCancel(context.Background())
	defer drainCancel()
	for n := 0; n < i.cfg.Workers; n++ {
		w := worker.New(worker.Config{
			Name:      fmt.Sprintf("persist-worker-%d", n),
			Processor: i,
		})
		i.wg.Go(func() {
			w.Run(drainCtx)
		})
	}

	<-ctx.Done()
	i.shutdown(drainCancel)
	return nil
}

// connect waits for the initial broker connection, honoring ctx. The
// client itself retries with capped backoff.
func (i *Ingestor) connect(ctx context.Context) error {
	token := i.client.Connect()
	for !token.WaitTimeout(time.Second) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return token.Error()
}

// onMessage is the broker delivery callback. It never blocks: validate,
// then enqueue or drop.
func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	i.received.Add(1)
	event, err := telemetry.Validate(m.Payload())
	if err != nil {
		i.rejected.Add(1)
		i.msgLog.Error("Message rejected",
			"topic", m.Topic(),
			"payload", string(m.Payload()),
			"reason", err.Error(),
		)
		return
	}
	select {
	case i.queue <- event:
	default:
		i.dropped.Add(1)
		slog.Warn("Persistence queue full, dropping message",
			"device_id", event.DeviceID,
			"dropped_total", i.dropped.Load(),
		)
	}
}

// ProcessMessage drains one event from the queue and persists it. A
// storage failure is logged as a failed ingestion, distinct from a
// validation rejection, and never stops the pipeline.
func (i *Ingestor) ProcessMessage(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return worker.ErrStop
	case event, ok := <-i.queue:
		if !ok {
			return worker.ErrStop
		}
		if _, err := i.cfg.Store.RecordEvent(ctx, event); err != nil {
			i.failed.Add(1)
			i.msgLog.Error("Ingestion failed",
				"device_id", event.DeviceID,
				"sensor_type", event.SensorType,
				"timestamp", event.Timestamp,
				"error", fmt.Errorf("%w:%w", ErrRecordFailed, err).Error(),
			)
			return nil
		}
		i.persisted.Add(1)
	}
	return nil
}

func (i *Ingestor) shutdown(drainCancel context.CancelFunc) {
	slog.Info("Stopping ingestion...")
	if i.client.IsConnected() {
		if token := i.client.Unsubscribe(i.cfg.Topic); token.Wait() && token.Error() != nil {
			slog.Error("Unsubscribe failed", "topic", i.cfg.Topic, "error", token.Error())
		}
		i.client.Disconnect(500)
	}
	// No deliveries past this point; let the workers finish the queue
	close(i.queue)

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(i.cfg.DrainTimeout):
		abandoned := len(i.queue)
		drainCancel()
		<-done
		slog.Warn("Drain timeout exceeded, abandoning queued messages", "count", abandoned)
	}

	s := i.Stats()
	slog.Info("Ingestion stopped",
		"received", s.Received,
		"rejected", s.Rejected,
		"dropped", s.Dropped,
		"persisted", s.Persisted,
		"failed", s.Failed,
	)
}

func (i *Ingestor) Stats() Stats {
	return Stats{
		Received:  i.received.Load(),
		Rejected:  i.rejected.Load(),
		Dropped:   i.dropped.Load(),
		Persisted: i.persisted.Load(),
		Failed:    i.failed.Load(),
	}
}
