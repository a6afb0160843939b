/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// DataStream is one entry of the _data_stream response.
type DataStream struct {
	Name       string `json:"name"`
	Generation int    `json:"generation"`
	Status     string `json:"status"`
	Template   string `json:"template"`
	ILMPolicy  string `json:"ilm_policy"`
	Indices    []struct {
		IndexName string `json:"index_name"`
		IndexUUID string `json:"index_uuid"`
	} `json:"indices"`
}

// BackingIndexNames returns the names of the currently attached backing indices.
func (d DataStream) BackingIndexNames() []string {
	names := make([]string, 0, len(d.Indices))
	for _, idx := range d.Indices {
		names = append(names, idx.IndexName)
	}
	return names
}

type dataStreamsResponse struct {
	DataStreams []DataStream `json:"data_streams"`
}

// DataStreams lists data streams matching the pattern ("" lists everything).
func (c *Client) DataStreams(ctx context.Context, pattern string) ([]DataStream, error) {
	opts := []func(*esapi.IndicesGetDataStreamRequest){
		c.es.Indices.GetDataStream.WithContext(ctx),
		c.es.Indices.GetDataStream.WithExpandWildcards("all"),
	}
	if pattern != "" {
		opts = append(opts, c.es.Indices.GetDataStream.WithName(pattern))
	}

	res, err := c.es.Indices.GetDataStream(opts...)
	var out dataStreamsResponse
	if err := decode(res, err, "listing data streams", &out); err != nil {
		return nil, err
	}
	return out.DataStreams, nil
}

// DataStream returns one data stream by exact name.
func (c *Client) DataStream(ctx context.Context, name string) (DataStream, error) {
	streams, err := c.DataStreams(ctx, name)
	if err != nil {
		return DataStream{}, err
	}
	for _, ds := range streams {
		if ds.Name == name {
			return ds, nil
		}
	}
	return DataStream{}, adminerrors.New(adminerrors.ErrCodeNotFound, "data stream %q not found", name)
}

// DeleteDataStream deletes a data stream and its backing indices. Callers
// confirm before reaching here.
func (c *Client) DeleteDataStream(ctx context.Context, name string) (Acknowledged, error) {
	res, err := c.es.Indices.DeleteDataStream(
		[]string{name},
		c.es.Indices.DeleteDataStream.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "deleting data stream "+name, &ack)
	return ack, err
}

// AddBackingIndex reattaches an index to a data stream via _data_stream/_modify.
func (c *Client) AddBackingIndex(ctx context.Context, stream, index string) (Acknowledged, error) {
	body := modifyDataStreamRequest{
		Actions: []modifyDataStreamAction{
			{AddBackingIndex: &backingIndexTarget{DataStream: stream, Index: index}},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Acknowledged{}, err
	}

	res, err := c.es.Indices.ModifyDataStream(
		bytes.NewReader(payload),
		c.es.Indices.ModifyDataStream.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "adding backing index "+index+" to "+stream, &ack)
	return ack, err
}

type modifyDataStreamRequest struct {
	Actions []modifyDataStreamAction `json:"actions"`
}

type modifyDataStreamAction struct {
	AddBackingIndex *backingIndexTarget `json:"add_backing_index,omitempty"`
}

type backingIndexTarget struct {
	DataStream string `json:"data_stream"`
	Index      string `json:"index"`
}
