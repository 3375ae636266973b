package audit

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Event is one entry in the audit trail. Events are emitted for
// registrations, logins, permission denials and entity mutations, and
// carry the acting tenant so downstream consumers can fan out per
// tenant.
type Event struct {
	Kind     string    `msgpack:"kind"`
	TenantID string    `msgpack:"tenant_id"`
	UserID   string    `msgpack:"user_id"`
	Entity   string    `msgpack:"entity,omitempty"`
	EntityID string    `msgpack:"entity_id,omitempty"`
	Detail   string    `msgpack:"detail,omitempty"`
	At       time.Time `msgpack:"at"`
}

const subjectPrefix = "labtrack.audit."

// Publisher emits audit events onto NATS. A nil Publisher is valid and
// drops everything, so the audit trail can be switched off by simply
// not configuring NATS.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// Connect dials NATS with persistent reconnects. The audit trail is
// best-effort: connection loss is logged, requests are never blocked.
func Connect(url string, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(1 * time.Second),
		nats.ReconnectJitter(500*time.Millisecond, 2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("audit NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("audit NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &Publisher{nc: nc, logger: logger}, nil
}

// Record publishes one event. Failures are logged and swallowed; the
// audit trail never fails a request.
func (p *Publisher) Record(event Event) {
	if p == nil {
		return
	}

	if event.At.IsZero() {
		event.At = time.Now()
	}

	payload, err := msgpack.Marshal(&event)
	if err != nil {
		p.logger.Error("marshal audit event", zap.Error(err))
		return
	}

	if err := p.nc.Publish(subjectPrefix+event.Kind, payload); err != nil {
		p.logger.Error("publish audit event", zap.String("kind", event.Kind), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.nc.Drain()
}
