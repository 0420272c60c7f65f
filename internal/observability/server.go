package observability

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const readHeaderTimeout = 5 * time.Second

// MetricsServer exposes Registry on /metrics. An empty address disables it.
type MetricsServer struct {
	addr   string
	srv    *http.Server
	ln     net.Listener
	done   chan struct{}
	logger *log.Entry
}

func NewMetricsServer(addr string) *MetricsServer {
	return &MetricsServer{
		addr:   addr,
		logger: log.WithField("context", "metrics"),
	}
}

// Addr returns the bound address once started.
func (m *MetricsServer) Addr() string {
	if m.ln == nil {
		return m.addr
	}
	return m.ln.Addr().String()
}

func (m *MetricsServer) Start(context.Context) error {
	if m.addr == "" {
		m.logger.Debug("metrics server disabled")
		return nil
	}
	Register()

	ln, err := net.Listen("tcp", m.addr)
	if err != nil {
		return errors.Wrap(err, "listen metrics")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	m.ln = ln
	m.srv = &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.WithError(err).Error("metrics server failed")
		}
	}()
	m.logger.WithField("addr", m.Addr()).Info("metrics server started")
	return nil
}

func (m *MetricsServer) Stop(ctx context.Context) error {
	if m.srv == nil {
		return nil
	}
	if err := m.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown metrics")
	}
	<-m.done
	return nil
}
