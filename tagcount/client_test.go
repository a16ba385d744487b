package tagcount

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

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListArticleTagCountsEnvelope(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"code":200,"message":"ok","data":[{"tag":"rust","count":1},{"tag":"go","count":9},{"tag":"数据库","count":3}]}`)

	counts, err := New(srv.URL + "/").ListArticleTagCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Count{{"rust", 1}, {"go", 9}, {"数据库", 3}}, counts)
}

func TestListArticleTagCountsBareArray(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[{"tag":"go","count":2}]`)

	counts, err := New(srv.URL).ListArticleTagCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Count{{"go", 2}}, counts)
}

func TestListArticleTagCountsEmpty(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"code":200,"message":"ok","data":[]}`)

	counts, err := New(srv.URL).ListArticleTagCounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestListArticleTagCountsErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := newServer(t, http.StatusBadGateway, "upstream down")
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadGateway, se.StatusCode)
		assert.Equal(t, "upstream down", se.Body)
	})

	t.Run("envelope code", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `{"code":500,"message":"db error","data":null}`)
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `{"code":`)
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("zero envelope code", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `{"code":0,"message":"db down","data":null}`)
		counts, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Nil(t, counts)
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("object without envelope", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `{"error":"nope"}`)
		counts, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Nil(t, counts)
	})

	t.Run("null body", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `null`)
		counts, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Nil(t, counts)
	})

	t.Run("missing data", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `{"code":200,"message":"ok"}`)
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without data")
	})

	t.Run("invalid item", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `[{"tag":"","count":1}]`)
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 0")
	})

	t.Run("negative count", func(t *testing.T) {
		srv := newServer(t, http.StatusOK, `[{"tag":"go","count":-1}]`)
		_, err := New(srv.URL).ListArticleTagCounts(context.Background())
		require.Error(t, err)
	})
}

func TestListArticleTagCountsHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL).ListArticleTagCounts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
