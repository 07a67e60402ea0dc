package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jobmatch/job-matcher/internal/store"
)

// matchStatsCollector exposes aggregate match counts straight from the
// database on every scrape.
type matchStatsCollector struct {
	store         store.Store
	totalMatches  *prometheus.Desc
	totalUsers    *prometheus.Desc
	totalBySource *prometheus.Desc
}

func newMatchStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_matches_%s", jobMatcher, name)
	}

	return &matchStatsCollector{
		store: s,
		totalMatches: prometheus.NewDesc(
			fqName("total"),
			"Total number of persisted job matches.",
			nil,
			prometheus.Labels{},
		),
		totalUsers: prometheus.NewDesc(
			fqName("users_total"),
			"Number of distinct users with at least one match.",
			nil,
			prometheus.Labels{},
		),
		totalBySource: prometheus.NewDesc(
			fqName("by_source_total"),
			"Total matches by job board.",
			[]string{"source"},
			prometheus.Labels{},
		),
	}
}

func RegisterMatchStatsCollector(s store.Store) {
	prometheus.MustRegister(newMatchStatsCollector(s))
}

func (c *matchStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalMatches
	ch <- c.totalUsers
	ch <- c.totalBySource
}

// Collect implements Collector.
func (c *matchStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("match_collector").Errorf("failed to collect match statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalMatches, prometheus.GaugeValue, float64(stats.TotalMatches))
	ch <- prometheus.MustNewConstMetric(c.totalUsers, prometheus.GaugeValue, float64(stats.TotalUsers))

	for source, total := range stats.BySource {
		ch <- prometheus.MustNewConstMetric(c.totalBySource, prometheus.GaugeValue, float64(total), source)
	}
}
