/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package kibana

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Agent is one Fleet agent as returned by /api/fleet/agents.
type Agent struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Active         bool   `json:"active"`
	PolicyID       string `json:"policy_id"`
	LastCheckin    string `json:"last_checkin"`
	LocalMetadata  struct {
		Host struct {
			Hostname string `json:"hostname"`
		} `json:"host"`
		Elastic struct {
			Agent struct {
				Version string `json:"version"`
			} `json:"agent"`
		} `json:"elastic"`
	} `json:"local_metadata"`
}

// AgentList is the paged agent listing.
type AgentList struct {
	List    []Agent `json:"list"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"perPage"`
}

// FleetServerHost is one configured fleet server host.
type FleetServerHost struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IsDefault bool     `json:"is_default"`
	HostURLs  []string `json:"host_urls"`
}

// Output is one configured Fleet output.
type Output struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	IsDefault bool     `json:"is_default"`
	Hosts     []string `json:"hosts"`
}

type fleetServerHostsResponse struct {
	Items []FleetServerHost `json:"items"`
}

type outputsResponse struct {
	Items []Output `json:"items"`
}

// Agents lists Fleet agents. kuery filters ("status:offline"); empty lists all.
func (c *Client) Agents(ctx context.Context, kuery string, page, perPage int) (AgentList, error) {
	query := url.Values{}
	if kuery != "" {
		query.Set("kuery", kuery)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("perPage", strconv.Itoa(perPage))
	}

	var out AgentList
	err := c.do(ctx, http.MethodGet, "/api/fleet/agents", query, nil, &out)
	return out, err
}

// BulkUnenrollResult summarizes a bulk unenroll request.
type BulkUnenrollResult struct {
	ActionID string `json:"actionId"`
}

type bulkUnenrollRequest struct {
	Agents []string `json:"agents"`
	Revoke bool     `json:"revoke"`
	Force  bool     `json:"force"`
}

// BulkUnenroll unenrolls the given agents. Callers confirm before reaching
// here. revoke also invalidates the agents' API keys.
func (c *Client) BulkUnenroll(ctx context.Context, agentIDs []string, revoke bool) (BulkUnenrollResult, error) {
	body := bulkUnenrollRequest{Agents: agentIDs, Revoke: revoke}
	var out BulkUnenrollResult
	err := c.do(ctx, http.MethodPost, "/api/fleet/agents/bulk_unenroll", nil, body, &out)
	return out, err
}

// FleetServerHosts lists the configured fleet server hosts.
func (c *Client) FleetServerHosts(ctx context.Context) ([]FleetServerHost, error) {
	var out fleetServerHostsResponse
	err := c.do(ctx, http.MethodGet, "/api/fleet/fleet_server_hosts", nil, nil, &out)
	return out.Items, err
}

// Outputs lists the configured Fleet outputs.
func (c *Client) Outputs(ctx context.Context) ([]Output, error) {
	var out outputsResponse
	err := c.do(ctx, http.MethodGet, "/api/fleet/outputs", nil, nil, &out)
	return out.Items, err
}
