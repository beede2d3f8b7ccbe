package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// CodeEnv is a handle on a code env of the DSS instance, identified by its
// language and name.
type CodeEnv struct {
	client  *dss.Client
	envLang string
	envName string
}

// Lang returns the code env's language.
func (e *CodeEnv) Lang() string {
	return e.envLang
}

// Name returns the code env's name.
func (e *CodeEnv) Name() string {
	return e.envName
}

func (e *CodeEnv) path(suffix string) string {
	return fmt.Sprintf("/admin/code-envs/%s/%s%s", e.envLang, e.envName, suffix)
}

// Delete deletes the code env. The instance reports the outcome in a
// messages envelope; an error flag there, or a missing body, is an error.
func (e *CodeEnv) Delete(ctx context.Context) (map[string]any, error) {
	resp, err := e.client.PerformRawJSON(ctx, "DELETE", e.path(""), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := dss.CheckOperationResult("code env deletion", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetDefinition returns the code env's definition.
func (e *CodeEnv) GetDefinition(ctx context.Context) (map[string]any, error) {
	return e.client.PerformRawJSON(ctx, "GET", e.path(""), nil, nil)
}

// SetDefinition replaces the code env's definition. The definition should
// come from a call to GetDefinition; the permission, spec and jupyter
// related fields can be changed.
func (e *CodeEnv) SetDefinition(ctx context.Context, env map[string]any) (map[string]any, error) {
	return e.client.PerformRawJSON(ctx, "PUT", e.path(""), nil, env)
}

// SetJupyterSupport activates or deactivates jupyter support for the
// code env.
func (e *CodeEnv) SetJupyterSupport(ctx context.Context, active bool) (map[string]any, error) {
	params := map[string]string{"active": strconv.FormatBool(active)}
	resp, err := e.client.PerformRawJSON(ctx, "POST", e.path("/jupyter"), params, nil)
	if err != nil {
		return nil, err
	}
	if err := dss.CheckOperationResult("code env update", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdatePackages updates the code env's packages to match its spec.
func (e *CodeEnv) UpdatePackages(ctx context.Context) (map[string]any, error) {
	resp, err := e.client.PerformRawJSON(ctx, "POST", e.path("/packages"), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := dss.CheckOperationResult("code env update", resp); err != nil {
		return nil, err
	}
	return resp, nil
}
