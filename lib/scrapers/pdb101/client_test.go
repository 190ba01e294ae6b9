package pdb101

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"motm-scrapers/lib/restyutil"
	"motm-scrapers/lib/retry"
	"motm-scrapers/lib/telemetry"
	"motm-scrapers/lib/testutil"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseUrl string, timer *testutil.RecordingTimer) *Client {
	t.Helper()
	policy := retry.DefaultPolicy()
	policy.Timer = timer
	client, err := NewClient(ClientOptions{
		BaseUrl:                 baseUrl,
		Retry:                   policy,
		DisableBrowserTransport: true,
	})
	require.NoError(t, err)
	return client
}

func TestFetchMoleculePage(t *testing.T) {
	telemetry.SetupForTesting(t, "test:scrapers/pdb101")

	srv := testutil.NewPageServer(t, map[string]testutil.Route{
		"/motm/41": {Body: `<h1>Molecule of the Month: Hemoglobin</h1>`},
	})
	timer := testutil.NewRecordingTimer()
	client := newTestClient(t, srv.URL, timer)

	page, err := client.FetchMoleculePage(context.Background(), 41)
	require.NoError(t, err)
	require.Contains(t, page, "Hemoglobin")
	require.Equal(t, 1, srv.Hits("/motm/41"))
	require.Empty(t, timer.Waits())
}

func TestFetchMoleculePageExhaustsRetries(t *testing.T) {
	telemetry.SetupForTesting(t, "test:scrapers/pdb101")

	testCases := []struct {
		name  string
		route testutil.Route
	}{
		{name: "server error", route: testutil.Route{Status: http.StatusInternalServerError}},
		{name: "not found", route: testutil.Route{Status: http.StatusNotFound}},
		{name: "connection dropped", route: testutil.Route{Hijack: true}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			srv := testutil.NewPageServer(t, map[string]testutil.Route{
				"/motm/300": test.route,
			})
			timer := testutil.NewRecordingTimer()
			client := newTestClient(t, srv.URL, timer)

			page, err := client.FetchMoleculePage(context.Background(), 300)
			require.Error(t, err)
			require.Empty(t, page)
			require.Equal(t, 3, srv.Hits("/motm/300"))
			require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.Waits())
		})
	}
}

func TestFetchMoleculePageRecovers(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`<h1>Insulin</h1>`))
	}))
	defer srv.Close()

	timer := testutil.NewRecordingTimer()
	client := newTestClient(t, srv.URL, timer)

	page, err := client.FetchMoleculePage(context.Background(), 14)
	require.NoError(t, err)
	require.Contains(t, page, "Insulin")
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.Equal(t, []time.Duration{time.Second}, timer.Waits())
}

func TestFetchMoleculePageStatusError(t *testing.T) {
	srv := testutil.NewPageServer(t, map[string]testutil.Route{
		"/motm/1": {Status: http.StatusServiceUnavailable},
	})
	client := newTestClient(t, srv.URL, testutil.NewRecordingTimer())

	_, err := client.FetchMoleculePage(context.Background(), 1)
	var statusErr restyutil.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestMoleculeUrl(t *testing.T) {
	client, err := NewClient(ClientOptions{
		BaseUrl:                 "https://pdb101.rcsb.org/",
		DisableBrowserTransport: true,
	})
	require.NoError(t, err)
	require.Equal(t, "https://pdb101.rcsb.org/motm/313", client.MoleculeUrl(313))
}
