package admin

import (
	"context"
	"fmt"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// User is a handle on a user of the DSS instance.
type User struct {
	client *dss.Client
	login  string
}

// Login returns the user's login.
func (u *User) Login() string {
	return u.login
}

// Delete deletes the user.
func (u *User) Delete(ctx context.Context) error {
	return u.client.PerformEmpty(ctx, "DELETE", fmt.Sprintf("/admin/users/%s", u.login), nil, nil)
}

// GetDefinition returns the user's definition (login, type, display name,
// permissions, ...).
func (u *User) GetDefinition(ctx context.Context) (map[string]any, error) {
	return u.client.PerformRawJSON(ctx, "GET", fmt.Sprintf("/admin/users/%s", u.login), nil, nil)
}

// SetDefinition replaces the user's definition. The definition should come
// from a call to GetDefinition; the fields that can be changed are email,
// displayName, groups, userProfile and password.
func (u *User) SetDefinition(ctx context.Context, definition map[string]any) (map[string]any, error) {
	return u.client.PerformRawJSON(ctx, "PUT", fmt.Sprintf("/admin/users/%s", u.login), nil, definition)
}
