package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esadmin/esadmctl/pkg/collector"
	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

const testClusterURL = "http://es.test.internal:9200"

func respondJSON(status int, body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(status, body)
		res.Header.Set("Content-Type", "application/json")
		res.Header.Set("X-Elastic-Product", "Elasticsearch")
		return res, nil
	}
}

func newTestClient(t *testing.T) (*elastic.Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client, err := elastic.NewClientFromConfig(elasticsearch.Config{
		Addresses: []string{testClusterURL},
		Transport: transport,
	})
	require.NoError(t, err)
	return client, transport
}

func registerOverview(transport *httpmock.MockTransport) {
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/",
		respondJSON(200, `{"name":"node-1","cluster_name":"es-test","version":{"number":"8.14.0"}}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cluster/health",
		respondJSON(200, `{"cluster_name":"es-test","status":"green","number_of_nodes":3}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/nodes",
		respondJSON(200, `[{"name":"node-1","ip":"10.0.0.1"}]`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/indices",
		respondJSON(200, `[{"index":"orders","health":"green"}]`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/shards",
		respondJSON(200, `[{"index":"orders","shard":"0","state":"STARTED"}]`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/recovery",
		respondJSON(200, `[]`))
}

func TestInspectCollectsAllSections(t *testing.T) {
	client, transport := newTestClient(t)
	registerOverview(transport)

	var out bytes.Buffer
	inspector := &ClusterInspector{
		Version:     "1.2.3",
		Client:      client,
		Environment: "test",
		Serializer:  serializer.NewWriter(serializer.FormatJSON, &out),
	}

	require.NoError(t, inspector.Inspect(context.Background()))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, "es-test", report.Metadata["cluster-name"])
	assert.Equal(t, "8.14.0", report.Metadata["cluster-version"])
	assert.Equal(t, "1.2.3", report.Metadata["esadmctl-version"])
	assert.Equal(t, "test", report.Metadata["environment"])

	names := make([]string, 0, len(report.Sections))
	for _, section := range report.Sections {
		names = append(names, section.Name)
	}
	assert.Equal(t, []string{"health", "indices", "nodes", "recovery", "shards"}, names)
}

type failingFactory struct {
	inner collector.Factory
}

type failingCollector struct{}

func (failingCollector) Collect(context.Context) (*collector.Section, error) {
	return nil, adminerrors.New(adminerrors.ErrCodeResponse, "shards unavailable")
}

func (f failingFactory) CreateHealthCollector() collector.Collector {
	return f.inner.CreateHealthCollector()
}

func (f failingFactory) CreateNodesCollector() collector.Collector {
	return f.inner.CreateNodesCollector()
}

func (f failingFactory) CreateIndicesCollector() collector.Collector {
	return f.inner.CreateIndicesCollector()
}

func (f failingFactory) CreateShardsCollector() collector.Collector {
	return failingCollector{}
}

func (f failingFactory) CreateRecoveryCollector() collector.Collector {
	return f.inner.CreateRecoveryCollector()
}

func TestInspectFailsWhenAnyCollectorFails(t *testing.T) {
	client, transport := newTestClient(t)
	registerOverview(transport)

	var out bytes.Buffer
	inspector := &ClusterInspector{
		Client:     client,
		Factory:    failingFactory{inner: collector.NewDefaultFactory(client)},
		Serializer: serializer.NewWriter(serializer.FormatJSON, &out),
	}

	err := inspector.Inspect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shards")
	assert.Zero(t, out.Len())
}
