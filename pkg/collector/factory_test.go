package collector_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jarcoal/httpmock"

	"github.com/esadmin/esadmctl/pkg/collector"
	"github.com/esadmin/esadmctl/pkg/elastic"
)

const testClusterURL = "http://es.test.internal:9200"

func respondJSON(body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(200, body)
		res.Header.Set("Content-Type", "application/json")
		res.Header.Set("X-Elastic-Product", "Elasticsearch")
		return res, nil
	}
}

func newFactory(t *testing.T) (*collector.DefaultFactory, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client, err := elastic.NewClientFromConfig(elasticsearch.Config{
		Addresses: []string{testClusterURL},
		Transport: transport,
	})
	if err != nil {
		t.Fatal(err)
	}
	return collector.NewDefaultFactory(client), transport
}

func TestDefaultFactory_CreateHealthCollector(t *testing.T) {
	factory, transport := newFactory(t)
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cluster/health",
		respondJSON(`{"cluster_name":"es-test","status":"green"}`))

	col := factory.CreateHealthCollector()
	if col == nil {
		t.Fatal("Expected non-nil collector")
	}

	section, err := col.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if section.Name != "health" {
		t.Errorf("Expected section health, got %s", section.Name)
	}
}

func TestDefaultFactory_IndexPatternIsPropagated(t *testing.T) {
	factory, _ := newFactory(t)
	factory.IndexPattern = "logs-*"

	col := factory.CreateIndicesCollector()
	indicesCollector, ok := col.(*collector.IndicesCollector)
	if !ok {
		t.Fatal("Expected *IndicesCollector")
	}
	if indicesCollector.Pattern != "logs-*" {
		t.Errorf("Expected pattern logs-*, got %s", indicesCollector.Pattern)
	}
}

func TestDefaultFactory_CreateRecoveryCollector(t *testing.T) {
	factory, transport := newFactory(t)
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/recovery",
		respondJSON(`[{"index":"orders","shard":"0","stage":"done"}]`))

	section, err := factory.CreateRecoveryCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	shards, ok := section.Data.([]elastic.RecoveryShard)
	if !ok {
		t.Fatalf("Expected []elastic.RecoveryShard, got %T", section.Data)
	}
	if len(shards) != 1 || shards[0].Stage != "done" {
		t.Errorf("Unexpected shards: %v", shards)
	}
}
