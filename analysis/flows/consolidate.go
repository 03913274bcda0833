// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flows

import (
	"fmt"

	"github.com/awslabs/ar-go-flows/analysis/classify"
	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"github.com/awslabs/ar-go-flows/internal/formatutil"
)

// A SinkEnricher collects the context of launch sinks (the intent the launch operation is called with)
type SinkEnricher interface {
	Enrich(dom ir.DominatorOracle, sink *ir.Stmt, caller *ir.Method) (*IntentInfo, error)
}

// A Consolidator turns the raw results of the taint analysis into records. A consolidator can be reused for several
// batches; it does not keep any state between calls to Consolidate.
type Consolidator struct {
	resolver   *resolve.Resolver
	classifier *classify.Classifier
	enricher   SinkEnricher
	logger     *config.LogGroup
	printFlows bool
}

// NewConsolidator returns a consolidator resolving sources with resolver. enricher may be nil, in which case launch
// sinks are plain endpoints.
func NewConsolidator(cfg *config.Config, logger *config.LogGroup, resolver *resolve.Resolver,
	enricher SinkEnricher) *Consolidator {
	return &Consolidator{
		resolver:   resolver,
		classifier: resolver.Classifier(),
		enricher:   enricher,
		logger:     logger,
		printFlows: cfg.PrintFlows,
	}
}

// Consolidate returns the records of one batch of raw results, in order:
//
//   - one record for every (sink, source) pair of raw whose statements are calls, in the order of raw. Pairs are not
//     deduplicated, see Dedup.
//   - one record pairing every source of collected that is in no flow with the NoSensitiveSink placeholder
//   - one record pairing every sink of collected that is in no flow with the NoSensitiveSource placeholder
//
// Consolidate does not fail. A pair that cannot be consolidated (e.g. its statements are not in any method of the
// oracle) is logged and skipped; the other pairs are not affected.
func (c *Consolidator) Consolidate(oracle Oracle, raw RawResults, collected Collected) []Record {
	var records []Record
	sourcesInFlows := map[*ir.Stmt]bool{}
	sinksInFlows := map[*ir.Stmt]bool{}

	for _, sink := range raw.Sinks {
		if sink.Stmt == nil || !sink.Stmt.ContainsInvoke() {
			continue
		}
		sinkEndpoint, err := c.sinkEndpoint(oracle, sink.Stmt)
		if err != nil {
			c.logger.Warnf("skipping sink %s: %v", sink.Stmt, err)
			continue
		}
		for _, source := range sink.Sources {
			if source.Stmt == nil || !source.Stmt.ContainsInvoke() {
				continue
			}
			record, err := c.join(oracle, source, sinkEndpoint)
			if err != nil {
				c.logger.Warnf("skipping flow %s -> %s: %v", source.Stmt, sink.Stmt, err)
				continue
			}
			sourcesInFlows[source.Stmt] = true
			sinksInFlows[sink.Stmt] = true
			records = c.emit(records, record)
		}
	}

	seen := map[*ir.Stmt]bool{}
	for _, source := range collected.Sources {
		if source == nil || seen[source] || sourcesInFlows[source] || !source.ContainsInvoke() {
			continue
		}
		seen[source] = true
		signature := source.InvokeExpr().Signature
		if c.classifier.IsSuppressedUnmatchedSource(signature) {
			continue
		}
		endpoint, err := plainEndpoint(oracle, source)
		if err != nil {
			c.logger.Warnf("skipping source %s: %v", source, err)
			continue
		}
		records = c.emit(records, Record{Source: endpoint, Sink: PlaceholderSink()})
	}

	seen = map[*ir.Stmt]bool{}
	for _, sink := range collected.Sinks {
		if sink == nil || seen[sink] || sinksInFlows[sink] || !sink.ContainsInvoke() {
			continue
		}
		seen[sink] = true
		endpoint, err := plainEndpoint(oracle, sink)
		if err != nil {
			c.logger.Warnf("skipping sink %s: %v", sink, err)
			continue
		}
		records = c.emit(records, Record{Source: PlaceholderSource(), Sink: endpoint})
	}

	c.logger.Infof("Found %d results", len(records))
	c.logger.Debugf("%s", Summary(records))
	return records
}

func (c *Consolidator) emit(records []Record, r Record) []Record {
	if c.printFlows {
		c.logger.Infof("%s", formatutil.Flow(r.Source.String(), r.Sink.String()))
	}
	return append(records, r)
}

// join builds the record of one (source, sink) pair. Panics of the resolution are recovered and returned as errors.
func (c *Consolidator) join(oracle Oracle, source RawSource, sink Endpoint) (r Record, err error) {
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("panic during resolution: %v", x)
		}
	}()
	m, ok := oracle.MethodOf(source.Stmt)
	if !ok {
		return Record{}, fmt.Errorf("no method contains the source")
	}
	dom, err := oracle.Dominators(m)
	if err != nil {
		return Record{}, fmt.Errorf("dominators of %s: %w", m.Signature, err)
	}
	path := Project(source.Path, oracle)
	for _, item := range path {
		if item.Index < 0 {
			c.logger.Debugf("path statement %q not found in %q", item.Stmt, item.CallerMethod)
		}
	}
	return Record{
		Source: Endpoint{Signature: c.resolver.ResolveSource(dom, source.Stmt), Caller: m.Signature},
		Sink:   sink,
		Path:   path,
	}, nil
}

// sinkEndpoint builds the endpoint of a sink. Launch sinks are enriched with their intent when an enricher is set;
// a failure of the enricher, or an intent about which nothing is known, leaves the endpoint plain.
func (c *Consolidator) sinkEndpoint(oracle Oracle, sink *ir.Stmt) (Endpoint, error) {
	endpoint, err := plainEndpoint(oracle, sink)
	if err != nil {
		return endpoint, err
	}
	if c.enricher == nil || !c.classifier.IsLaunchSink(endpoint.Signature) {
		return endpoint, nil
	}
	intent, err := c.enrich(oracle, sink)
	if err != nil {
		c.logger.Warnf("could not collect the intent of %s: %v", sink, err)
		return endpoint, nil
	}
	if !intent.IsEmpty() {
		endpoint.Intent = intent
	}
	return endpoint, nil
}

func (c *Consolidator) enrich(oracle Oracle, sink *ir.Stmt) (info *IntentInfo, err error) {
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("panic during intent analysis: %v", x)
		}
	}()
	m, _ := oracle.MethodOf(sink)
	dom, err := oracle.Dominators(m)
	if err != nil {
		return nil, err
	}
	return c.enricher.Enrich(dom, sink, m)
}

// plainEndpoint returns the endpoint of a call statement with the declared signature of the callee
func plainEndpoint(oracle Oracle, s *ir.Stmt) (Endpoint, error) {
	m, ok := oracle.MethodOf(s)
	if !ok {
		return Endpoint{}, fmt.Errorf("no method contains %s", s)
	}
	return Endpoint{Signature: s.InvokeExpr().Signature, Caller: m.Signature}, nil
}
