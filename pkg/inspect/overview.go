package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/esadmin/esadmctl/pkg/collector"
	"github.com/esadmin/esadmctl/pkg/elastic"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

// ClusterInspector collects a cluster overview from one Elasticsearch cluster.
// It coordinates multiple collectors in parallel to gather health, node,
// index, shard, and recovery state, then serializes the combined report.
type ClusterInspector struct {
	// Version is the esadmctl version, recorded in the report metadata.
	Version string

	Client *elastic.Client

	// Environment is the name of the environment being inspected.
	Environment string

	// Factory is the collector factory to use. If nil, the default factory
	// backed by Client is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default
	// stdout JSON serializer is used.
	Serializer serializer.Serializer
}

// Report is the combined overview of one cluster.
type Report struct {
	Metadata map[string]string    `json:"metadata"`
	Sections []*collector.Section `json:"sections"`
}

// Inspect collects the overview sections in parallel and serializes the
// report. If any collector fails, the entire operation returns an error.
func (n *ClusterInspector) Inspect(ctx context.Context) error {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory(n.Client)
	}

	slog.Debug("starting cluster overview")

	start := time.Now()
	defer func() {
		overviewCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	report := &Report{Metadata: map[string]string{}}

	g.Go(func() error {
		collectorStart := time.Now()
		defer func() {
			overviewCollectorDuration.WithLabelValues("metadata").Observe(time.Since(collectorStart).Seconds())
		}()
		info, err := n.Client.Ping(ctx)
		if err != nil {
			slog.Error("failed to reach cluster", slog.String("error", err.Error()))
			return fmt.Errorf("failed to reach cluster: %w", err)
		}
		mu.Lock()
		report.Metadata["esadmctl-version"] = n.Version
		report.Metadata["environment"] = n.Environment
		report.Metadata["cluster-name"] = info.ClusterName
		report.Metadata["cluster-version"] = info.Version.Number
		mu.Unlock()
		slog.Debug("obtained cluster metadata",
			slog.String("cluster", info.ClusterName),
			slog.String("version", info.Version.Number),
		)
		return nil
	})

	for name, create := range map[string]func() collector.Collector{
		"health":   n.Factory.CreateHealthCollector,
		"nodes":    n.Factory.CreateNodesCollector,
		"indices":  n.Factory.CreateIndicesCollector,
		"shards":   n.Factory.CreateShardsCollector,
		"recovery": n.Factory.CreateRecoveryCollector,
	} {
		g.Go(func() error {
			collectorStart := time.Now()
			defer func() {
				overviewCollectorDuration.WithLabelValues(name).Observe(time.Since(collectorStart).Seconds())
			}()
			slog.Debug("collecting section", slog.String("section", name))
			section, err := create().Collect(ctx)
			if err != nil {
				slog.Error("failed to collect section",
					slog.String("section", name),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("failed to collect %s: %w", name, err)
			}
			mu.Lock()
			report.Sections = append(report.Sections, section)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		overviewCollectionTotal.WithLabelValues("error").Inc()
		return err
	}

	// completion order is nondeterministic
	sort.Slice(report.Sections, func(i, j int) bool {
		return report.Sections[i].Name < report.Sections[j].Name
	})

	overviewCollectionTotal.WithLabelValues("success").Inc()
	overviewSectionCount.Set(float64(len(report.Sections)))

	slog.Debug("overview collection complete", slog.Int("sections", len(report.Sections)))

	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := n.Serializer.Serialize(ctx, report); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}
