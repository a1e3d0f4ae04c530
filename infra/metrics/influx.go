package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/fieldline/dayboard/core/logger"
	coremetrics "github.com/fieldline/dayboard/core/metrics"
	infralogger "github.com/fieldline/dayboard/infra/logger"
)

// InfluxSink writes board events to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a down instance never blocks
// planning.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAssignments writes each placed job as a point.
func (s *InfluxSink) RecordAssignments(res []coremetrics.AssignmentResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range res {
		p := write.NewPointWithMeasurement("board_assignment").
			AddTag("date", r.Date).
			AddTag("crew_id", r.CrewID).
			AddTag("job_type", r.JobType).
			AddTag("zone", r.Zone).
			AddTag("zone_match", strconv.FormatBool(r.ZoneMatch)).
			AddField("hours", round3(r.Hours)).
			AddField("score", round3(r.Score)).
			AddField("job_number", r.JobNumber).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordPublish writes a point for a finalized document.
func (s *InfluxSink) RecordPublish(ev coremetrics.PublishEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("board_publish").
		AddTag("date", ev.Date).
		AddField("lanes", ev.Lanes).
		AddField("jobs", ev.Jobs).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordUtilization writes a per-crew utilization point.
func (s *InfluxSink) RecordUtilization(crewID string, scheduled, capacity float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("crew_utilization").
		AddTag("crew_id", crewID).
		AddField("scheduled_hours", round3(scheduled)).
		AddField("capacity_hours", round3(capacity)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
