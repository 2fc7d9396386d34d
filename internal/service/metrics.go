package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attachment_uploads_total",
			Help: "Attachment upload attempts by result",
		},
		[]string{"result"},
	)

	deletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attachment_deletes_total",
			Help: "Attachment deletions by result",
		},
		[]string{"result"},
	)
)
