package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("render", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.AddPosts(1, 1)
	r.AddSkippedDocuments(1)
	r.IncBuildOutcome(OutcomeSuccess)
}

func TestPrometheusRecorderCounts(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.AddPosts(3, 1)
	pr.AddPosts(2, 0)
	pr.AddSkippedDocuments(2)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncBuildOutcome(OutcomeFailed)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.ObserveStageDuration("render", 20*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(pr.posts.WithLabelValues("published")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.posts.WithLabelValues("draft")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pr.skipped))
	assert.Equal(t, 2.0, testutil.ToFloat64(pr.outcomes.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(pr.stageDuration))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(OutcomeSuccess)
	path := filepath.Join(t.TempDir(), "blogbuilder.prom")

	require.NoError(t, pr.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `blogbuilder_build_outcomes_total{outcome="success"} 1`)
}

func TestHTTPHandler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.AddSkippedDocuments(4)

	rec := httptest.NewRecorder()
	pr.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "blogbuilder_skipped_documents_total 4"))
}
