// Package metrics exposes tailer activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/logtailer/internal/tailer"
)

const namespace = "logtailer"

// Observer counts tailer events. Register it on a Tailer alongside other observers.
type Observer struct {
	lines      prometheus.Counter
	bytes      prometheus.Counter
	notFound   prometheus.Counter
	removed    prometheus.Counter
	exceptions prometheus.Counter
	lastLine   prometheus.Gauge
}

var _ tailer.Observer = (*Observer)(nil)

// NewObserver creates the collectors for path and registers them on reg.
func NewObserver(reg prometheus.Registerer, path string) (*Observer, error) {
	labels := prometheus.Labels{"path": path}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	o := &Observer{
		lines:      counter("lines_total", "Lines delivered to observers."),
		bytes:      counter("line_bytes_total", "Bytes of delivered lines, excluding terminators."),
		notFound:   counter("file_not_found_total", "Runs that could not open the file."),
		removed:    counter("file_removed_total", "Runs that ended because the file was removed."),
		exceptions: counter("exceptions_total", "Read, close and wait failures."),
		lastLine: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_line_timestamp_seconds",
			Help:        "Unix time the most recent line was delivered.",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{o.lines, o.bytes, o.notFound, o.removed, o.exceptions, o.lastLine} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return o, nil
}

func (o *Observer) OnLine(line string) {
	o.lines.Inc()
	o.bytes.Add(float64(len(line)))
	o.lastLine.Set(float64(time.Now().UnixNano()) / 1e9)
}

func (o *Observer) OnFileNotFound() { o.notFound.Inc() }

func (o *Observer) OnFileRemoved() { o.removed.Inc() }

func (o *Observer) OnException(error) { o.exceptions.Inc() }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
