package service

import (
	"time"

	"github.com/moderndash/dashboard/internal/core/ports"
)

type nopMetrics struct{}

func (nopMetrics) AuthAttempt(string, time.Duration) {}
func (nopMetrics) SessionRehydration(string)         {}
func (nopMetrics) DatabaseError(string)              {}

func orNop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
