// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package data

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/connectivity"
)

func TestGetDataCreatesSlotLazily(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)
	ctx := context.Background()

	require.Equal(t, 0, ds.testRegistrySize(), "no channel before first use")

	stub, err := ds.GetData(ctx)
	require.NoError(t, err)
	require.NotNil(t, stub)
	require.Equal(t, 1, ds.testRegistrySize())

	slot := ds.testSlot(defaultWorker)
	require.NotNil(t, slot)
	assert.NotNil(t, slot.conn, "slot must be fully populated")
	assert.NotNil(t, slot.dataStub)
	assert.NotNil(t, slot.parseStub)

	// Second call reuses the same channel.
	_, err = ds.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.testRegistrySize())
	assert.Equal(t, slot.id, ds.testSlot(defaultWorker).id)
}

func TestGetParseSharesWorkerChannel(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, &fakeParseServer{})
	ctx := context.Background()

	_, err := ds.GetData(ctx)
	require.NoError(t, err)
	_, err = ds.GetParse(ctx)
	require.NoError(t, err)

	// Both stubs derive from the one channel of the worker.
	assert.Equal(t, 1, ds.testRegistrySize())
}

func TestDistinctChannelsPerWorker(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)

	const workers = 8
	var wg sync.WaitGroup
	ids := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := WithWorker(context.Background(), string(rune('a'+i)))
			_, err := ds.GetData(ctx)
			assert.NoError(t, err)
			ids[i] = ds.testSlot(string(rune('a' + i))).id
		}(i)
	}
	wg.Wait()

	require.Equal(t, workers, ds.testRegistrySize())
	seen := make(map[string]bool)
	for _, id := range ids {
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "channel %s shared across workers", id)
		seen[id] = true
	}
}

func TestCloseChannelRecreates(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)
	ctx := context.Background()

	_, err := ds.GetData(ctx)
	require.NoError(t, err)
	old := ds.testSlot(defaultWorker)
	require.NotNil(t, old)

	ds.CloseChannel(ctx)
	assert.Nil(t, ds.testSlot(defaultWorker))
	assert.Equal(t, 0, ds.testRegistrySize())
	assert.Equal(t, connectivity.Shutdown, old.conn.GetState(), "old channel must be closed")

	// Next call opens a fresh channel with a new identity.
	_, err = ds.GetData(ctx)
	require.NoError(t, err)
	fresh := ds.testSlot(defaultWorker)
	require.NotNil(t, fresh)
	assert.NotEqual(t, old.id, fresh.id)
	assert.NotSame(t, old.conn, fresh.conn)
}

func TestCloseChannelWithoutOpenChannel(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)

	// Must be a no-op, not a panic: the failure path calls this
	// unconditionally.
	ds.CloseChannel(context.Background())
	assert.Equal(t, 0, ds.testRegistrySize())
}

func TestShutdownClosesEveryChannel(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)

	// A short-lived worker opens a channel and exits without closing.
	var exited *channelSlot
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx := WithWorker(context.Background(), "ephemeral")
		_, err := ds.GetData(ctx)
		assert.NoError(t, err)
		exited = ds.testSlot("ephemeral")
	}()
	<-done

	_, err := ds.GetData(context.Background())
	require.NoError(t, err)
	current := ds.testSlot(defaultWorker)
	require.Equal(t, 2, ds.testRegistrySize())

	ds.Shutdown()
	assert.Equal(t, 0, ds.testRegistrySize())
	assert.Equal(t, connectivity.Shutdown, exited.conn.GetState(),
		"channel of exited worker must be closed")
	assert.Equal(t, connectivity.Shutdown, current.conn.GetState())

	// Idempotent: the second call finds nothing to close.
	ds.Shutdown()
	assert.Equal(t, 0, ds.testRegistrySize())
}

func TestUseAfterShutdownFailsLoudly(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)
	ds.Shutdown()

	_, err := ds.GetData(context.Background())
	require.ErrorIs(t, err, ErrServiceClosed)
	_, err = ds.GetParse(context.Background())
	require.ErrorIs(t, err, ErrServiceClosed)
}

func TestShutdownAfterWorkerClosedOwnChannel(t *testing.T) {
	ds := newTestService(t, &fakeDataServer{}, nil)
	ctx := context.Background()

	_, err := ds.GetData(ctx)
	require.NoError(t, err)
	ds.CloseChannel(ctx)

	// Shutdown must tolerate channels already closed by their worker.
	ds.Shutdown()
	assert.Equal(t, 0, ds.testRegistrySize())
}

func TestString(t *testing.T) {
	ds := NewDataService("localhost:10301")
	assert.Equal(t, "DataService(localhost:10301)", ds.String())
}
