package admin

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// Cluster is a handle on a compute cluster of the DSS instance.
type Cluster struct {
	client    *dss.Client
	clusterID string
}

// ID returns the cluster id.
func (c *Cluster) ID() string {
	return c.clusterID
}

// Delete deletes the cluster without stopping it.
func (c *Cluster) Delete(ctx context.Context) error {
	return c.client.PerformEmpty(ctx, "DELETE", fmt.Sprintf("/admin/clusters/%s", c.clusterID), nil, nil)
}

// GetDefinition returns the cluster's definition.
func (c *Cluster) GetDefinition(ctx context.Context) (map[string]any, error) {
	return c.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/clusters/%s", c.clusterID), nil, nil)
}

// SetDefinition replaces the cluster's definition. The definition should
// come from a call to GetDefinition; the permission, owner and params
// fields can be changed.
func (c *Cluster) SetDefinition(ctx context.Context, cluster map[string]any) (map[string]any, error) {
	return c.client.PerformRawJSON(ctx, "PUT", fmt.Sprintf("/admin/clusters/%s", c.clusterID), nil, cluster)
}

// ClusterStatus is a typed view over a cluster status payload. Fields the
// view does not name are kept in Extra.
type ClusterStatus struct {
	State    string         `mapstructure:"state"`
	Running  bool           `mapstructure:"running"`
	NumNodes int            `mapstructure:"numNodes"`
	Extra    map[string]any `mapstructure:",remain"`
}

// GetStatus returns the cluster's status and usages.
func (c *Cluster) GetStatus(ctx context.Context) (*ClusterStatus, error) {
	raw, err := c.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/clusters/%s/status", c.clusterID), nil, nil)
	if err != nil {
		return nil, err
	}

	var status ClusterStatus
	if err := mapstructure.Decode(raw, &status); err != nil {
		return nil, fmt.Errorf("failed to decode cluster status: %w", err)
	}
	return &status, nil
}

// Start starts the cluster.
func (c *Cluster) Start(ctx context.Context) (map[string]any, error) {
	return c.action(ctx, "start")
}

// Stop stops the cluster.
func (c *Cluster) Stop(ctx context.Context) (map[string]any, error) {
	return c.action(ctx, "stop")
}

func (c *Cluster) action(ctx context.Context, action string) (map[string]any, error) {
	resp, err := c.client.PerformRawJSON(ctx, "POST",
		fmt.Sprintf("/admin/clusters/%s/%s", c.clusterID, action), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := dss.CheckOperationResult("cluster "+action, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
