package factservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPService_Fetch(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("42 is a boring number."))
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL + "/")
	fact, err := svc.Fetch(context.Background(), "42", "trivia")

	require.NoError(t, err)
	assert.Equal(t, "42 is a boring number.", fact)
	assert.Equal(t, "/42/trivia", gotPath)
	assert.Equal(t, "text/plain", gotAccept)
}

func TestHTTPService_BodyReturnedVerbatimOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Invalid url"))
	}))
	defer srv.Close()

	fact, err := NewHTTPService(srv.URL).Fetch(context.Background(), "abc", "math")
	require.NoError(t, err)
	assert.Equal(t, "Invalid url", fact)
}

func TestHTTPService_EscapesSegments(t *testing.T) {
	var gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.EscapedPath()
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := NewHTTPService(srv.URL).Fetch(context.Background(), "1 2/3", "trivia")
	require.NoError(t, err)
	assert.Equal(t, "/1%202%2F3/trivia", gotRaw)
}

func TestHTTPService_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"://nope", "ftp://example.com", "http://"} {
		t.Run(endpoint, func(t *testing.T) {
			_, err := NewHTTPService(endpoint).Fetch(context.Background(), "1", "math")

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "Invalid URL", fe.Message)
			assert.Equal(t, "Invalid URL", err.Error())
		})
	}
}

func TestHTTPService_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPService(url).Fetch(context.Background(), "1", "year")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Could not connect to the server.", fe.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestHTTPService_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	svc := NewHTTPService(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := svc.Fetch(context.Background(), "1", "trivia")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "The request timed out.", fe.Message)
}

func TestHTTPService_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unreachable"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPService(srv.URL).Fetch(ctx, "1", "trivia")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "The request was cancelled.", fe.Message)
}

func TestHTTPService_NonUTF8Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	_, err := NewHTTPService(srv.URL).Fetch(context.Background(), "1", "trivia")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "The response could not be decoded.", fe.Message)
}

func TestNewHTTPService_Defaults(t *testing.T) {
	svc := NewHTTPService("")
	assert.Equal(t, DefaultEndpoint, svc.Endpoint())
	assert.Zero(t, svc.client.Timeout, "no timeout unless configured")

	withClient := NewHTTPService("http://x", WithHTTPClient(&http.Client{Timeout: time.Second}))
	assert.Equal(t, time.Second, withClient.client.Timeout)
}
