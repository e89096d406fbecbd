// MIT License
//
// Copyright 2021 Spatium Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package srv

import (
	"encoding/json"
	"net/http"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "desod",
		Name:      "requests_total",
		Help:      "Number of JSON RPC requests by method.",
	}, []string{"method"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "desod",
		Name:      "request_duration_seconds",
		Help:      "Latency of JSON RPC requests by method.",
		Buckets:   []float64{.01, .1, .5, 1, 5, 15, 30, 60, 120},
	}, []string{"method"})

	submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "desod",
		Name:      "submissions_total",
		Help:      "Number of transactions accepted by the node.",
	}, []string{"type", "confirmed"})

	submitAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "desod",
		Name:      "submit_attempts_total",
		Help:      "Number of submit-transaction attempts, including failures.",
	})

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		requestsTotal,
		requestDuration,
		submissions,
		submitAttempts,
	)
}

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// instrument returns a copy of methods that records the count and latency
// of each call.
func instrument(methods jrpc.MethodMap) jrpc.MethodMap {
	instrumented := make(jrpc.MethodMap, len(methods))
	for name, f := range methods {
		name, f := name, f
		instrumented[name] = func(data json.RawMessage) interface{} {
			start := time.Now()
			defer func() {
				requestsTotal.WithLabelValues(name).Inc()
				requestDuration.WithLabelValues(name).
					Observe(time.Since(start).Seconds())
			}()
			return f(data)
		}
	}
	return instrumented
}

func labelBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
