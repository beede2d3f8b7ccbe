package admin

import (
	"context"
	"fmt"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// Group is a handle on a group of the DSS instance.
type Group struct {
	client *dss.Client
	name   string
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Delete deletes the group.
func (g *Group) Delete(ctx context.Context) error {
	return g.client.PerformEmpty(ctx, "DELETE", fmt.Sprintf("/admin/groups/%s", g.name), nil, nil)
}

// GetDefinition returns the group's definition (name, description, admin
// abilities, type, ldap name mapping).
func (g *Group) GetDefinition(ctx context.Context) (map[string]any, error) {
	return g.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/groups/%s", g.name), nil, nil)
}

// SetDefinition replaces the group's definition. The definition should come
// from a call to GetDefinition.
func (g *Group) SetDefinition(ctx context.Context, definition map[string]any) (map[string]any, error) {
	return g.client.PerformRawJSON(ctx, "PUT", fmt.Sprintf("/admin/groups/%s", g.name), nil, definition)
}
