// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

const (
	sourceLabel      = "source"
	destinationLabel = "destination"
	outcomeLabel     = "outcome"
	chainLabel       = "chain"

	successOutcome = "success"
	failureOutcome = "failure"
)

type metrics struct {
	transfers *prometheus.CounterVec
	duration  prometheus.Histogram
	issued    *prometheus.CounterVec
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Number of transfers attempted",
			},
			[]string{sourceLabel, destinationLabel, outcomeLabel},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_duration_seconds",
			Help:      "Time spent on a transfer, including waiting for acceptance",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		issued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "txs_issued_total",
				Help:      "Number of txs issued",
			},
			[]string{chainLabel},
		),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.transfers),
		registerer.Register(m.duration),
		registerer.Register(m.issued),
	)
	return m, errs.Err
}

func (m *metrics) observe(source, destination string, start time.Time, err error) {
	outcome := successOutcome
	if err != nil {
		outcome = failureOutcome
	}
	m.transfers.WithLabelValues(source, destination, outcome).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}
