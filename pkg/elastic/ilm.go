/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
)

// ILMStep identifies a position inside an ILM policy execution.
type ILMStep struct {
	Phase  string `json:"phase"`
	Action string `json:"action"`
	Name   string `json:"name"`
}

// ILMIndexExplain is the _ilm/explain entry for one index.
type ILMIndexExplain struct {
	Index          string `json:"index"`
	Managed        bool   `json:"managed"`
	Policy         string `json:"policy"`
	Phase          string `json:"phase"`
	Action         string `json:"action"`
	Step           string `json:"step"`
	FailedStep     string `json:"failed_step,omitempty"`
	PhaseExecution struct {
		Policy string `json:"policy"`
	} `json:"phase_execution"`
}

type ilmExplainResponse struct {
	Indices map[string]ILMIndexExplain `json:"indices"`
}

// ILMRemoveResult is the _ilm/remove response.
type ILMRemoveResult struct {
	HasFailures   bool     `json:"has_failures"`
	FailedIndexes []string `json:"failed_indexes"`
}

// MoveStepRequest is the _ilm/move body. CurrentStep must match what the
// cluster believes, otherwise the move is rejected.
type MoveStepRequest struct {
	CurrentStep ILMStep `json:"current_step"`
	NextStep    ILMStep `json:"next_step"`
}

// ILMPolicies returns the raw _ilm/policy response keyed by policy name.
func (c *Client) ILMPolicies(ctx context.Context) (map[string]json.RawMessage, error) {
	res, err := c.es.ILM.GetLifecycle(
		c.es.ILM.GetLifecycle.WithContext(ctx),
	)
	policies := map[string]json.RawMessage{}
	err = decode(res, err, "listing ILM policies", &policies)
	return policies, err
}

// ILMPolicy returns one raw ILM policy.
func (c *Client) ILMPolicy(ctx context.Context, name string) (json.RawMessage, error) {
	res, err := c.es.ILM.GetLifecycle(
		c.es.ILM.GetLifecycle.WithContext(ctx),
		c.es.ILM.GetLifecycle.WithPolicy(name),
	)
	return consume(res, err, "getting ILM policy "+name)
}

// DeleteILMPolicy deletes an ILM policy. Callers confirm before reaching here.
func (c *Client) DeleteILMPolicy(ctx context.Context, name string) (Acknowledged, error) {
	res, err := c.es.ILM.DeleteLifecycle(
		name,
		c.es.ILM.DeleteLifecycle.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "deleting ILM policy "+name, &ack)
	return ack, err
}

// ILMExplain returns the ILM execution state of indices matching the pattern.
func (c *Client) ILMExplain(ctx context.Context, pattern string) (map[string]ILMIndexExplain, error) {
	res, err := c.es.ILM.ExplainLifecycle(
		pattern,
		c.es.ILM.ExplainLifecycle.WithContext(ctx),
	)
	var out ilmExplainResponse
	if err := decode(res, err, "ILM explain of "+pattern, &out); err != nil {
		return nil, err
	}
	return out.Indices, nil
}

// RemoveILMPolicy strips the ILM association from an index. Required before
// reassigning a policy: assignment alone keeps the stale phase_execution
// metadata of the previous policy.
func (c *Client) RemoveILMPolicy(ctx context.Context, index string) (ILMRemoveResult, error) {
	res, err := c.es.ILM.RemovePolicy(
		index,
		c.es.ILM.RemovePolicy.WithContext(ctx),
	)
	var out ILMRemoveResult
	err = decode(res, err, "removing ILM policy from "+index, &out)
	return out, err
}

// MoveILMStep forces the index's ILM execution from the current step to the
// next step.
func (c *Client) MoveILMStep(ctx context.Context, index string, req MoveStepRequest) (Acknowledged, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Acknowledged{}, err
	}
	res, err := c.es.ILM.MoveToStep(
		index,
		c.es.ILM.MoveToStep.WithContext(ctx),
		c.es.ILM.MoveToStep.WithBody(bytes.NewReader(payload)),
	)
	var ack Acknowledged
	err = decode(res, err, "moving ILM step of "+index, &ack)
	return ack, err
}
