package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

func newTestAdminClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	client, err := dss.New(&dss.Config{
		BaseURL: mockServer.URL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)

	return NewClient(client), mockServer
}

func TestClient_GetGeneralSettings_SaveRoundTrip(t *testing.T) {
	document := map[string]any{
		"impersonation": map[string]any{
			"userRules": []any{
				map[string]any{"type": "IDENTITY", "scope": "GLOBAL"},
			},
			"groupRules": []any{},
		},
		"limits": map[string]any{"maxRunningActivities": float64(5)},
	}

	var saved map[string]any
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/general-settings", r.URL.Path)
		switch r.Method {
		case "GET":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(document)
		case "PUT":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	ctx := context.Background()
	settings, err := admin.GetGeneralSettings(ctx)
	require.NoError(t, err)

	// Saving without mutating writes back exactly what was fetched.
	require.NoError(t, settings.Save(ctx))
	assert.Equal(t, document, saved)

	// Mutations through the rule API are part of the next save.
	settings.AddImpersonationRule(NewUserImpersonationRule().Single("alice", "u_alice", ""))
	require.NoError(t, settings.Save(ctx))

	imp := saved["impersonation"].(map[string]any)
	assert.Len(t, imp["userRules"], 2)
}

func TestClient_GetGeneralSettings_FetchFailure(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := admin.GetGeneralSettings(context.Background())
	require.Error(t, err)

	var apiErr *dss.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClient_ListUsers(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/admin/users/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"login":       "alice",
				"displayName": "Alice",
				"email":       "alice@example.com",
				"groups":      []string{"administrators"},
				"userProfile": "DATA_SCIENTIST",
				"sourceType":  "LOCAL",
			},
		})
	}))

	users, err := admin.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, "alice", users[0].Login)
	assert.Equal(t, "Alice", users[0].DisplayName)
	assert.Equal(t, []string{"administrators"}, users[0].Groups)
	assert.Equal(t, "DATA_SCIENTIST", users[0].Profile)
	assert.Equal(t, "LOCAL", users[0].Extra["sourceType"],
		"fields outside the typed view stay reachable")
}

func TestClient_CreateUser(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/admin/users/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bob", body["login"])
		assert.Equal(t, "Bob", body["displayName"])
		assert.Equal(t, []any{"readers"}, body["groups"])

		w.WriteHeader(http.StatusOK)
	}))

	user, err := admin.CreateUser(context.Background(), "bob", "Bob", "secret", []string{"readers"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Login())
}

func TestUser_Definition(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users/alice", r.URL.Path)
		switch r.Method {
		case "GET":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"login": "alice", "displayName": "Alice"})
		case "PUT":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Alice B.", body["displayName"])
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(body)
		}
	}))

	ctx := context.Background()
	user := admin.User("alice")

	definition, err := user.GetDefinition(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", definition["login"])

	definition["displayName"] = "Alice B."
	updated, err := user.SetDefinition(ctx, definition)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated["displayName"])
}

func TestCodeEnv_Delete_ErrorEnvelope(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/admin/code-envs/python/ml-env", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"messages": map[string]any{
				"error": true,
				"messages": []any{
					map[string]any{"severity": "ERROR", "message": "env is in use by project P1"},
				},
			},
		})
	}))

	_, err := admin.CodeEnv("python", "ml-env").Delete(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env is in use by project P1")
}

func TestCodeEnv_SetJupyterSupport(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/admin/code-envs/python/ml-env/jupyter", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"messages": map[string]any{"error": false},
		})
	}))

	_, err := admin.CodeEnv("python", "ml-env").SetJupyterSupport(context.Background(), true)
	require.NoError(t, err)
}

func TestCluster_StatusAndActions(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/clusters/spark-1/status":
			json.NewEncoder(w).Encode(map[string]any{
				"state":    "RUNNING",
				"running":  true,
				"numNodes": 4,
				"usages":   []any{},
			})
		case "/admin/clusters/spark-1/stop":
			assert.Equal(t, "POST", r.Method)
			json.NewEncoder(w).Encode(map[string]any{
				"messages": map[string]any{"error": false},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()
	cluster := admin.Cluster("spark-1")

	status, err := cluster.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", status.State)
	assert.True(t, status.Running)
	assert.Equal(t, 4, status.NumNodes)
	assert.Contains(t, status.Extra, "usages")

	_, err = cluster.Stop(ctx)
	require.NoError(t, err)
}

func TestConnection_SyncRootACLs(t *testing.T) {
	polls := 0
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/connections/hdfs-main/sync":
			assert.Equal(t, "POST", r.Method)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, true, body["root"])
			json.NewEncoder(w).Encode(map[string]any{"jobId": "job-42"})
		case "/futures/job-42":
			assert.Equal(t, "true", r.URL.Query().Get("withResult"))
			polls++
			if polls < 2 {
				json.NewEncoder(w).Encode(map[string]any{"alive": true, "hasResult": false})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"alive":     false,
				"hasResult": true,
				"result":    map[string]any{"updated": float64(12)},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()
	future, err := admin.Connection("hdfs-main").SyncRootACLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-42", future.JobID())
	assert.Equal(t, "job-42", future.Peek()["jobId"])

	future.pollInterval = time.Millisecond
	result, err := future.WaitForResult(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"updated": float64(12)}, result)
	assert.Equal(t, 2, polls)
}

func TestFuture_TerminatedWithoutResult(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"alive": false, "hasResult": false})
	}))

	future := NewFuture(adminTransport(admin), "job-7", nil)
	_, err := future.WaitForResult(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job-7")
}

func TestGlobalAPIKey_Delete(t *testing.T) {
	admin, _ := newTestAdminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/admin/globalAPIKeys/key-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, admin.GlobalAPIKey("key-1").Delete(context.Background()))
}

// adminTransport exposes the underlying transport client for tests that
// build handles directly.
func adminTransport(a *Client) *dss.Client {
	return a.client
}
