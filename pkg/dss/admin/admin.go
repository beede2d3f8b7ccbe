// Package admin implements the administration surface of a DSS instance:
// connections, users, groups, general settings (including impersonation
// rules), code envs, global API keys and compute clusters.
//
// All operations require an API key with admin rights. Entity handles are
// cheap: they hold the transport client and an identifier, and perform no
// request until one of their methods is called.
package admin

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// Client exposes the admin API of a DSS instance.
type Client struct {
	client *dss.Client
}

// NewClient wraps a transport client into an admin API client.
func NewClient(client *dss.Client) *Client {
	return &Client{client: client}
}

// Connection returns a handle on the named connection.
func (a *Client) Connection(name string) *Connection {
	return &Connection{client: a.client, name: name}
}

// User returns a handle on the user with the given login.
func (a *Client) User(login string) *User {
	return &User{client: a.client, login: login}
}

// Group returns a handle on the named group.
func (a *Client) Group(name string) *Group {
	return &Group{client: a.client, name: name}
}

// CodeEnv returns a handle on the code env identified by language and name.
func (a *Client) CodeEnv(envLang, envName string) *CodeEnv {
	return &CodeEnv{client: a.client, envLang: envLang, envName: envName}
}

// GlobalAPIKey returns a handle on the given global API key.
func (a *Client) GlobalAPIKey(key string) *GlobalAPIKey {
	return &GlobalAPIKey{client: a.client, key: key}
}

// Cluster returns a handle on the cluster with the given id.
func (a *Client) Cluster(clusterID string) *Cluster {
	return &Cluster{client: a.client, clusterID: clusterID}
}

// ListConnections returns the definitions of all connections, keyed by
// connection name.
func (a *Client) ListConnections(ctx context.Context) (map[string]map[string]any, error) {
	var connections map[string]map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/connections/", nil, nil, &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

// CreateConnection creates a new connection and returns a handle on it.
func (a *Client) CreateConnection(ctx context.Context, name, connectionType string, params map[string]any) (*Connection, error) {
	body := map[string]any{
		"name":   name,
		"type":   connectionType,
		"params": params,
	}
	if err := a.client.PerformJSON(ctx, "POST", "/admin/connections/", nil, body, nil); err != nil {
		return nil, err
	}
	return a.Connection(name), nil
}

// UserInfo is a typed view over a user record. Fields the view does not
// name are kept in Extra; the raw record on the instance stays
// authoritative.
type UserInfo struct {
	Login       string         `mapstructure:"login"`
	DisplayName string         `mapstructure:"displayName"`
	Email       string         `mapstructure:"email"`
	Groups      []string       `mapstructure:"groups"`
	Profile     string         `mapstructure:"userProfile"`
	Extra       map[string]any `mapstructure:",remain"`
}

// ListUsers returns all users of the instance.
func (a *Client) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var raw []map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/users/", nil, nil, &raw); err != nil {
		return nil, err
	}

	var users []UserInfo
	if err := mapstructure.Decode(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}
	return users, nil
}

// CreateUser creates a new user and returns a handle on it.
func (a *Client) CreateUser(ctx context.Context, login, displayName, password string, groups []string) (*User, error) {
	if groups == nil {
		groups = []string{}
	}
	body := map[string]any{
		"login":       login,
		"displayName": displayName,
		"password":    password,
		"groups":      groups,
	}
	if err := a.client.PerformJSON(ctx, "POST", "/admin/users/", nil, body, nil); err != nil {
		return nil, err
	}
	return a.User(login), nil
}

// ListGroups returns the definitions of all groups.
func (a *Client) ListGroups(ctx context.Context) ([]map[string]any, error) {
	var groups []map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/groups/", nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a new group and returns a handle on it.
func (a *Client) CreateGroup(ctx context.Context, name, description string) (*Group, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
	}
	if err := a.client.PerformJSON(ctx, "POST", "/admin/groups/", nil, body, nil); err != nil {
		return nil, err
	}
	return a.Group(name), nil
}

// ListCodeEnvs returns the definitions of all code envs.
func (a *Client) ListCodeEnvs(ctx context.Context) ([]map[string]any, error) {
	var envs []map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/code-envs/", nil, nil, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// ListGlobalAPIKeys returns the definitions of all global API keys.
func (a *Client) ListGlobalAPIKeys(ctx context.Context) ([]map[string]any, error) {
	var keys []map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/globalAPIKeys/", nil, nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateGlobalAPIKey creates a new global API key and returns its
// definition, including the secret, which is only ever returned here.
func (a *Client) CreateGlobalAPIKey(ctx context.Context, label, description string, admin bool) (map[string]any, error) {
	body := map[string]any{
		"label":       label,
		"description": description,
		"globalPermissions": map[string]any{
			"admin": admin,
		},
	}
	return a.client.PerformRawJSON(ctx, "POST", "/admin/globalAPIKeys/", nil, body)
}

// ListClusters returns the definitions of all clusters.
func (a *Client) ListClusters(ctx context.Context) ([]map[string]any, error) {
	var clusters []map[string]any
	if err := a.client.PerformJSON(ctx, "GET", "/admin/clusters/", nil, nil, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// CreateCluster creates a new cluster and returns a handle on it.
func (a *Client) CreateCluster(ctx context.Context, name, clusterType string, params map[string]any) (*Cluster, error) {
	body := map[string]any{
		"name":   name,
		"type":   clusterType,
		"params": params,
	}
	var created map[string]any
	if err := a.client.PerformJSON(ctx, "POST", "/admin/clusters/", nil, body, &created); err != nil {
		return nil, err
	}

	clusterID := name
	if id, ok := created["id"].(string); ok && id != "" {
		clusterID = id
	}
	return a.Cluster(clusterID), nil
}

// GetGeneralSettings fetches the general settings of the instance. The
// returned document is held in memory until Save is called; fetch failure
// is fatal to the session, there is no retry.
func (a *Client) GetGeneralSettings(ctx context.Context) (*GeneralSettings, error) {
	settings, err := a.client.PerformRawJSON(ctx, "GET", "/admin/general-settings", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general settings: %w", err)
	}
	return &GeneralSettings{client: a.client, settings: settings}, nil
}
