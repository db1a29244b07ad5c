package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
	"github.com/ChristoforosMylona/ham-sandwich-cut/test/mock"
)

var (
	red  = []viewport.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	blue = []viewport.Point{{X: -1, Y: 0.5}}
)

func newTestClient(srv *mock.Server, alg Algorithm) *Client {
	c := NewClient(srv.URL+"/", alg, 2*time.Second)
	c.Backoff = time.Millisecond
	return c
}

func TestCutSlopedLine(t *testing.T) {
	srv := mock.NewServer(mock.Options{Cut: mock.Cut{Slope: 0.5, YIntercept: -1}})
	defer srv.Close()

	line, err := newTestClient(srv, Default).Cut(context.Background(), red, blue)
	require.NoError(t, err)
	require.True(t, line.Valid())
	assert.False(t, line.IsVertical)
	assert.Equal(t, 0.5, *line.Slope)
	assert.Equal(t, -1.0, *line.Intercept)

	gotRed, gotBlue := srv.LastPayload()
	assert.Equal(t, [][2]float64{{1, 2}, {3, 4}}, gotRed)
	assert.Equal(t, [][2]float64{{-1, 0.5}}, gotBlue)
	assert.Equal(t, 1, srv.Count("/ham-sandwich-viz/"))
}

func TestCutVerticalLineOnAlgorithmEndpoint(t *testing.T) {
	srv := mock.NewServer(mock.Options{Cut: mock.Cut{IsVertical: true, XIntercept: 2.5}})
	defer srv.Close()

	line, err := newTestClient(srv, BruteForce).Cut(context.Background(), red, blue)
	require.NoError(t, err)
	assert.True(t, line.IsVertical)
	assert.Equal(t, 2.5, *line.XIntercept)
	assert.Equal(t, 1, srv.Count("/brute-force/"))
	assert.Equal(t, 0, srv.Count("/ham-sandwich-viz/"))
}

func TestCutEmptySetSkipsRequest(t *testing.T) {
	srv := mock.NewServer(mock.Options{})
	defer srv.Close()

	_, err := newTestClient(srv, Default).Cut(context.Background(), red, nil)
	assert.Equal(t, ErrEmptyPointSet, err)
	_, err = newTestClient(srv, Default).Teach(context.Background(), nil, blue)
	assert.Equal(t, ErrEmptyPointSet, err)
	assert.Empty(t, srv.RequestIDs())
}

func TestRetriesServerErrorsWithStableRequestID(t *testing.T) {
	srv := mock.NewServer(mock.Options{FailFirst: 2, Cut: mock.Cut{Slope: 1, YIntercept: 0}})
	defer srv.Close()

	_, err := newTestClient(srv, Default).Cut(context.Background(), red, blue)
	require.NoError(t, err)
	ids := srv.RequestIDs()
	require.Len(t, ids, 3)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, ids[0], ids[2])
}

func TestGivesUpAfterThreeServerErrors(t *testing.T) {
	srv := mock.NewServer(mock.Options{FailFirst: 5})
	defer srv.Close()

	_, err := newTestClient(srv, Default).Cut(context.Background(), red, blue)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "unexpected error", apiErr.Message)
	assert.Equal(t, 3, srv.Count("/ham-sandwich-viz/"))
}

func TestSampleFileNotFoundIsNotRetried(t *testing.T) {
	srv := mock.NewServer(mock.Options{Samples: map[string][]byte{"csv": []byte("x,y,type\n1,2,red\n")}})
	defer srv.Close()
	c := newTestClient(srv, Default)

	data, err := c.SampleFile(context.Background(), SampleCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,2,red")

	_, err = c.SampleFile(context.Background(), SampleJSON)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, 1, srv.Count("/get-sample-file/json"))

	_, err = c.SampleFile(context.Background(), SampleKind("pdf"))
	assert.Error(t, err)
}

func TestSampleFileRequestPath(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", Default, 2*time.Second)
	for _, kind := range []SampleKind{SampleCSV, SampleJSON, SampleExcel} {
		_, err := c.SampleFile(context.Background(), kind)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"/get-sample-file/csv", "/get-sample-file/json", "/get-sample-file/excel"}, paths)
}

func TestTeachPrependsInitialStep(t *testing.T) {
	seq := []steps.Step{
		{ID: 1, Type: steps.DualLinesCalculation, Description: "duals",
			Data: steps.StepData{DualLines: &steps.DualLines{Red: []steps.DualLine{{M: 1, B: -2}}}}},
		{ID: 2, Type: steps.ComputeCut, Description: "cut",
			Data: steps.StepData{Cut: steps.NewCut(1, 2)}},
	}
	srv := mock.NewServer(mock.Options{Steps: seq})
	defer srv.Close()

	got, err := newTestClient(srv, Default).Teach(context.Background(), red, blue)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, steps.InitialGraph, got[0].Type)
	assert.Equal(t, "Initial Graph", got[0].Description)
	assert.Equal(t, seq[1].Data.Cut, got[2].Data.Cut)
	assert.Equal(t, 1, srv.Count("/teach-ham-sandwich-viz/"))
}

func TestContextCancelStopsRequest(t *testing.T) {
	srv := mock.NewServer(mock.Options{Delay: 500 * time.Millisecond})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newTestClient(srv, Default).Cut(ctx, red, blue)
	require.Error(t, err)
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, Default, a)
	a, err = ParseAlgorithm(" MLP ")
	require.NoError(t, err)
	assert.Equal(t, "ham-sandwich-mlp/", a.Endpoint())
	_, err = ParseAlgorithm("simplex")
	assert.Equal(t, ErrUnknownAlgorithm, errors.Cause(err))
	assert.Equal(t, 50, MaxPointsFor(MLP))
	assert.Equal(t, "xlsx", SampleExcel.Extension())
}

func TestTrackerDropsStaleGenerations(t *testing.T) {
	var tr Tracker
	first := tr.Begin()
	second := tr.Begin()
	assert.False(t, tr.IsCurrent(first))
	assert.True(t, tr.IsCurrent(second))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); tr.Begin() }()
	}
	wg.Wait()
	assert.Equal(t, uint64(52), tr.Current())
}
