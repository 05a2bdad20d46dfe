package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	rawdatamock "github.com/riskibarqy/sportsbet-api/internal/mocks/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPayload(page int) rawdata.Payload {
	return rawdata.NewPayload(rawdata.SourceSportmonks, "/livescores/inplay", page, []byte(`{"data":[]}`),
		time.Date(2024, 7, 13, 15, 0, 0, 0, time.UTC))
}

func batchOf(n int) any {
	return mock.MatchedBy(func(items []rawdata.Payload) bool { return len(items) == n })
}

func newTestArchiver(repo rawdata.Repository, batchSize int) *PayloadArchiver {
	return NewPayloadArchiver(repo, PayloadArchiverConfig{
		Logger:        logging.NewNop(),
		BufferSize:    16,
		BatchSize:     batchSize,
		FlushInterval: time.Hour,
	})
}

func TestPayloadArchiver_FlushesFullBatch(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	repo.On("InsertMany", mock.Anything, batchOf(2)).Return(nil).Once()

	archiver := newTestArchiver(repo, 2)
	archiver.Archive(context.Background(), testPayload(1))
	archiver.Archive(context.Background(), testPayload(2))

	require.NoError(t, archiver.Close(context.Background()))
}

func TestPayloadArchiver_CloseFlushesPending(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	repo.On("InsertMany", mock.Anything, batchOf(3)).Return(nil).Once()

	archiver := newTestArchiver(repo, 10)
	for page := 1; page <= 3; page++ {
		archiver.Archive(context.Background(), testPayload(page))
	}

	require.NoError(t, archiver.Close(context.Background()))
	assert.Zero(t, archiver.Dropped())
}

func TestPayloadArchiver_WriteErrorIsNotPropagated(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	repo.On("InsertMany", mock.Anything, batchOf(1)).Return(errors.New("connection refused")).Once()

	archiver := newTestArchiver(repo, 10)
	archiver.Archive(context.Background(), testPayload(1))

	require.NoError(t, archiver.Close(context.Background()))
}

func TestPayloadArchiver_IgnoresPagesAfterClose(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	archiver := newTestArchiver(repo, 10)
	require.NoError(t, archiver.Close(context.Background()))

	archiver.Archive(context.Background(), testPayload(1))
	require.NoError(t, archiver.Close(context.Background()))
	repo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestPayloadArchiver_FlushesOnInterval(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	flushed := make(chan struct{})
	repo.On("InsertMany", mock.Anything, batchOf(1)).Return(nil).Once().Run(func(mock.Arguments) {
		close(flushed)
	})

	archiver := NewPayloadArchiver(repo, PayloadArchiverConfig{
		Logger:        logging.NewNop(),
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
	})
	archiver.Archive(context.Background(), testPayload(1))

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected interval flush")
	}
	require.NoError(t, archiver.Close(context.Background()))
}
