package admin

import (
	"context"
	"fmt"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// Connection is a handle on a connection of the DSS instance.
type Connection struct {
	client *dss.Client
	name   string
}

// Name returns the connection name.
func (c *Connection) Name() string {
	return c.name
}

// Delete deletes the connection.
func (c *Connection) Delete(ctx context.Context) error {
	return c.client.PerformEmpty(ctx, "DELETE", fmt.Sprintf("/admin/connections/%s", c.name), nil, nil)
}

// GetDefinition returns the connection's definition (type, name, params,
// usage restrictions).
func (c *Connection) GetDefinition(ctx context.Context) (map[string]any, error) {
	return c.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/connections/%s", c.name), nil, nil)
}

// SetDefinition replaces the connection's definition. The definition should
// come from a call to GetDefinition.
func (c *Connection) SetDefinition(ctx context.Context, definition map[string]any) (map[string]any, error) {
	return c.client.PerformRawJSON(ctx, "PUT", fmt.Sprintf("/admin/connections/%s", c.name), nil, definition)
}

// SyncRootACLs resynchronizes root permissions on this connection's path.
// The work happens asynchronously on the instance; the returned future
// tracks it.
func (c *Connection) SyncRootACLs(ctx context.Context) (*Future, error) {
	return c.sync(ctx, true)
}

// SyncDatasetACLs resynchronizes permissions on the datasets in this
// connection's path.
func (c *Connection) SyncDatasetACLs(ctx context.Context) (*Future, error) {
	return c.sync(ctx, false)
}

func (c *Connection) sync(ctx context.Context, root bool) (*Future, error) {
	resp, err := c.client.PerformRawJSON(ctx, "POST",
		fmt.Sprintf("/admin/connections/%s/sync", c.name), nil,
		map[string]any{"root": root})
	if err != nil {
		return nil, err
	}

	jobID, _ := resp["jobId"].(string)
	return NewFuture(c.client, jobID, resp), nil
}
