package admin

import (
	"context"
	"fmt"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// GlobalAPIKey is a handle on a global API key of the DSS instance.
type GlobalAPIKey struct {
	client *dss.Client
	key    string
}

// Key returns the API key identifier.
func (k *GlobalAPIKey) Key() string {
	return k.key
}

// Delete deletes the API key.
func (k *GlobalAPIKey) Delete(ctx context.Context) error {
	return k.client.PerformEmpty(ctx, "DELETE", fmt.Sprintf("/admin/globalAPIKeys/%s", k.key), nil, nil)
}

// GetDefinition returns the API key's definition.
func (k *GlobalAPIKey) GetDefinition(ctx context.Context) (map[string]any, error) {
	return k.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/globalAPIKeys/%s", k.key), nil, nil)
}

// SetDefinition replaces the API key's definition.
func (k *GlobalAPIKey) SetDefinition(ctx context.Context, definition map[string]any) error {
	return k.client.PerformEmpty(ctx, "PUT", fmt.Sprintf("/admin/globalAPIKeys/%s", k.key), nil, definition)
}
