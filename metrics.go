// Copyright 2024 the blockbloom authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blockbloom

import "github.com/prometheus/client_golang/prometheus"

// FilterCollector is a prometheus.Collector exposing a Filter's size and
// load as gauges, so a host service can register it directly instead of
// polling the filter's accessors by hand. It takes no lock of its own, so
// like Contains it is safe only once all writers have quiesced.
type FilterCollector[B block] struct {
	f *Filter[B]

	numBits   *prometheus.Desc
	numBlocks *prometheus.Desc
	onesCount *prometheus.Desc
	loadRatio *prometheus.Desc
}

// NewFilterCollector wraps f for Prometheus registration. Labels, if any,
// are attached to every exposed metric (e.g. a filter name).
func NewFilterCollector[B block](f *Filter[B], labels prometheus.Labels) *FilterCollector[B] {
	return &FilterCollector[B]{
		f: f,
		numBits: prometheus.NewDesc(
			"blockbloom_num_bits", "Total number of bits backing the filter.", nil, labels),
		numBlocks: prometheus.NewDesc(
			"blockbloom_num_blocks", "Total number of blocks backing the filter.", nil, labels),
		onesCount: prometheus.NewDesc(
			"blockbloom_ones_count", "Number of bits currently set in the filter.", nil, labels),
		loadRatio: prometheus.NewDesc(
			"blockbloom_load_ratio", "Fraction of bits currently set in the filter.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *FilterCollector[B]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.numBits
	ch <- c.numBlocks
	ch <- c.onesCount
	ch <- c.loadRatio
}

// Collect implements prometheus.Collector.
func (c *FilterCollector[B]) Collect(ch chan<- prometheus.Metric) {
	numBits := c.f.NumBits()
	ones := c.f.bits.onesCount()

	ch <- prometheus.MustNewConstMetric(c.numBits, prometheus.GaugeValue, float64(numBits))
	ch <- prometheus.MustNewConstMetric(c.numBlocks, prometheus.GaugeValue, float64(c.f.NumBlocks()))
	ch <- prometheus.MustNewConstMetric(c.onesCount, prometheus.GaugeValue, float64(ones))

	var ratio float64
	if numBits > 0 {
		ratio = float64(ones) / float64(numBits)
	}
	ch <- prometheus.MustNewConstMetric(c.loadRatio, prometheus.GaugeValue, ratio)
}
