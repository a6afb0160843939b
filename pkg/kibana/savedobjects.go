/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package kibana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// SavedObject is one Kibana saved object.
type SavedObject struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	UpdatedAt  string          `json:"updated_at"`
	Attributes json.RawMessage `json:"attributes"`
}

// Title extracts the display title where the object type carries one.
func (o SavedObject) Title() string {
	var attrs struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(o.Attributes, &attrs); err != nil {
		return ""
	}
	if attrs.Title != "" {
		return attrs.Title
	}
	return attrs.Name
}

// SavedObjectList is the paged _find response.
type SavedObjectList struct {
	SavedObjects []SavedObject `json:"saved_objects"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
}

// Space is one Kibana space.
type Space struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role is one security role.
type Role struct {
	Name     string `json:"name"`
	Metadata struct {
		Reserved bool `json:"_reserved"`
	} `json:"metadata"`
}

// FindSavedObjects searches saved objects of one type.
func (c *Client) FindSavedObjects(ctx context.Context, objectType, search string, perPage int) (SavedObjectList, error) {
	query := url.Values{}
	query.Set("type", objectType)
	if search != "" {
		query.Set("search", search)
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var out SavedObjectList
	err := c.do(ctx, http.MethodGet, "/api/saved_objects/_find", query, nil, &out)
	return out, err
}

type exportRequest struct {
	Type                  []string `json:"type"`
	IncludeReferencesDeep bool     `json:"includeReferencesDeep"`
}

// ExportSavedObjects exports all saved objects of the given types. The
// response is NDJSON, suitable for re-import through the Kibana UI or API.
func (c *Client) ExportSavedObjects(ctx context.Context, types []string) ([]byte, error) {
	body := exportRequest{Type: types, IncludeReferencesDeep: true}
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/api/saved_objects/_export", nil, body, &raw)
	return raw, err
}

// Spaces lists the Kibana spaces.
func (c *Client) Spaces(ctx context.Context) ([]Space, error) {
	var out []Space
	err := c.do(ctx, http.MethodGet, "/api/spaces/space", nil, nil, &out)
	return out, err
}

// Roles lists the security roles.
func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var out []Role
	err := c.do(ctx, http.MethodGet, "/api/security/role", nil, nil, &out)
	return out, err
}

// User is one security user.
type User struct {
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Enabled  bool     `json:"enabled"`
}

// Users lists the security users. The endpoint is internal but stable; there
// is no public equivalent.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/internal/security/users", nil, nil, &out)
	return out, err
}
