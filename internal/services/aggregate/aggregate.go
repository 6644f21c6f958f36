// Package aggregate runs a view's query and partitions the records into lanes.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/metrics"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

// Aggregator executes view queries and builds board lanes
type Aggregator struct {
	client  webapi.Retriever
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAggregator creates a new aggregator. m may be nil.
func NewAggregator(client webapi.Retriever, m *metrics.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Aggregate executes fetchXML against the configured entity and returns one lane
// per separator option plus a trailing fallback lane.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	fetchXML string,
	cfg domain.BoardConfiguration,
	separator domain.AttributeMetadata,
	entity domain.EntityMetadata,
) (lanes []domain.BoardLane, err error) {
	start := time.Now()
	records := 0
	defer func() {
		a.metrics.ObserveAggregation(err, time.Since(start), records)
	}()

	a.logger.Debug("executing view query", "entity", cfg.EntityName, "separator", separator.LogicalName)

	var resp struct {
		Value []map[string]any `json:"value"`
	}
	err = a.client.Retrieve(ctx, webapi.Request{
		Kind:       webapi.KindRecords,
		EntityName: cfg.EntityName,
		SetName:    entity.EntitySetName,
		Query:      webapi.FetchXMLQuery(fetchXML),
	}, &resp)
	if err != nil {
		var apiErr *webapi.APIError
		if errors.As(err, &apiErr) {
			return nil, &domain.QueryExecutionError{Entity: cfg.EntityName, Message: apiErr.Message, Err: err}
		}
		return nil, fmt.Errorf("execute view query: %w", err)
	}

	rows := DecodeRecords(resp.Value, cfg.EntityName, entity)
	records = len(rows)

	lanes = Partition(rows, separator, cfg.SwimLaneSource)
	a.logger.Debug("aggregated records", "entity", cfg.EntityName, "records", records, "lanes", len(lanes))
	return lanes, nil
}

// Partition groups records by the value of swimLaneSource. The result holds one
// lane per option in option set order followed by the fallback lane, so it always
// has len(options)+1 entries. Records keep their input order within a lane.
func Partition(records []domain.Record, separator domain.AttributeMetadata, swimLaneSource string) []domain.BoardLane {
	options := separator.Options()
	lanes := make([]domain.BoardLane, 0, len(options)+1)
	index := make(map[int]int, len(options))

	for i := range options {
		opt := options[i]
		// First occurrence wins when an option set repeats a value
		if _, dup := index[opt.Value]; !dup {
			index[opt.Value] = len(lanes)
		}
		lanes = append(lanes, domain.BoardLane{Option: &opt, Records: []domain.Record{}})
	}
	fallback := domain.BoardLane{Records: []domain.Record{}}

	for _, r := range records {
		value, ok := r.IntValue(swimLaneSource)
		if !ok {
			fallback.Records = append(fallback.Records, r)
			continue
		}
		i, ok := index[value]
		if !ok {
			fallback.Records = append(fallback.Records, r)
			continue
		}
		lanes[i].Records = append(lanes[i].Records, r)
	}

	return append(lanes, fallback)
}
