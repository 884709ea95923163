package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("Authorization")))
	}))
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestBearerTransport_InjectsOnAPIRequests(t *testing.T) {
	srv := echoAuthServer(t)
	defer srv.Close()

	client := New(func() string { return "tok-1" })

	assert.Equal(t, "Bearer tok-1", get(t, client, srv.URL+"/api/me"))
}

func TestBearerTransport_SkipsNonAPIPaths(t *testing.T) {
	srv := echoAuthServer(t)
	defer srv.Close()

	client := New(func() string { return "tok-1" })

	assert.Empty(t, get(t, client, srv.URL+"/about"))
}

func TestBearerTransport_KeepsExplicitHeader(t *testing.T) {
	srv := echoAuthServer(t)
	defer srv.Close()

	client := New(func() string { return "tok-1" })

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer explicit")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	assert.Equal(t, "Bearer explicit", string(buf[:n]))
}

func TestBearerTransport_EmptyTokenDisablesInjection(t *testing.T) {
	srv := echoAuthServer(t)
	defer srv.Close()

	client := New(func() string { return "" })

	assert.Empty(t, get(t, client, srv.URL+"/api/me"))
}
