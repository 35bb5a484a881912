package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"zoomdocs/internal/models"
)

func testIdentity() models.Identity {
	return models.Identity{AuthID: "auth-123", UserID: "user-456"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	return client, srv
}

func TestClient_GenerateUser_DecodesIdentityPair(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/user/generate", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		json.NewEncoder(w).Encode(map[string]string{
			"zoomdocs_auth_id": "auth-123",
			"zoomdocs_user_id": "user-456",
		})
	})

	res, err := client.GenerateUser(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "auth-123", res.AuthID)
	assert.Equal(t, "user-456", res.UserID)
}

func TestClient_Non200IsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient credits"})
	})

	res, err := client.GenerateDocument(context.Background(), GenerateRequest{
		DocumentType: "complaint_letter",
		UserInputs:   map[string]string{"reason": "billing"},
		AuthID:       "auth-123",
		UserID:       "user-456",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "insufficient credits", res.Error)
}

func TestClient_Non200JunkBodyIsTolerated(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	res, err := client.CheckUser(context.Background(), testIdentity())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.False(t, res.Status)
}

func TestClient_200MalformedBodyIsAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.CheckUser(context.Background(), testIdentity())
	assert.Error(t, err)
}

func TestClient_GenerateDocument_PathAndBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/types/complaint_letter/generate", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "auth-123", body["zoomdocs_auth_id"])
		assert.Equal(t, float64(4), body["tone_level"])
		inputs := body["user_inputs"].(map[string]interface{})
		assert.Equal(t, "billing", inputs["reason"])
		json.NewEncoder(w).Encode(map[string]string{"letter": "Dear sir,"})
	})

	res, err := client.GenerateDocument(context.Background(), GenerateRequest{
		DocumentType: "complaint_letter",
		ToneLevel:    4,
		UserInputs:   map[string]string{"reason": "billing"},
		AuthID:       "auth-123",
		UserID:       "user-456",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Dear sir,", res.Letter)
}

func TestClient_GenerateDocument_ValidatesRequest(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused", APIKey: "k"}, nil)

	_, err := client.GenerateDocument(context.Background(), GenerateRequest{
		DocumentType: "complaint_letter",
		UserInputs:   map[string]string{},
		AuthID:       "auth-123",
		UserID:       "user-456",
	})
	assert.Error(t, err)

	_, err = client.GenerateDocument(context.Background(), GenerateRequest{
		DocumentType: "complaint_letter",
		UserInputs:   map[string]string{"reason": "billing"},
	})
	assert.Error(t, err)
}

func TestClient_FetchArtifact_SendsIdentityHeaders(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/generated/html/doc.html", r.URL.Path)
		assert.Equal(t, "auth-123", r.Header.Get("X-Zoomdocs-Auth-Id"))
		assert.Equal(t, "user-456", r.Header.Get("X-Zoomdocs-User-Id"))
		w.Write([]byte("<html>doc</html>"))
	})

	res, err := client.FetchArtifact(context.Background(), "html", "doc.html", testIdentity())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []byte("<html>doc</html>"), res.Data)
}

func TestClient_ListGeneratedDocuments_DefaultsRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["records"])
		json.NewEncoder(w).Encode(map[string]interface{}{"documents": []interface{}{}})
	})

	res, err := client.ListGeneratedDocuments(context.Background(), testIdentity(), 0)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestClient_IdentityRequiredOnAuthenticatedCalls(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused", APIKey: "k"}, nil)

	_, err := client.CheckUser(context.Background(), models.Identity{AuthID: "only-auth"})
	assert.Error(t, err)

	_, err = client.GetCredits(context.Background(), models.Identity{})
	assert.Error(t, err)

	_, err = client.HelpMeDecide(context.Background(), models.Identity{}, "s", "e")
	assert.Error(t, err)
}
