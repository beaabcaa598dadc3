// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/treekit/bptree"
)

type result struct {
	name     string
	insertNs int64 // per inserted key
	lookupNs int64 // per point lookup
	scanNs   int64 // per scanned entry
	heapMB   uint64
}

// heapMB reports live heap after a forced GC, so we measure retained data
// rather than garbage.
func heapMB() uint64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return m.Alloc / 1024 / 1024
}

func shuffledKeys(n int, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(i)
	}
	rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}

func benchMap(n, order int, seed int64) (result, error) {
	opts := []bptree.Option{}
	if order > 0 {
		opts = append(opts, bptree.WithOrder(order))
	}
	m := bptree.New[int64, int64](opts...)
	keys := shuffledKeys(n, seed)

	start := time.Now()
	for _, k := range keys {
		m.Insert(k, k)
	}
	insertNs := time.Since(start).Nanoseconds() / int64(n)
	heap := heapMB()

	start = time.Now()
	for _, k := range keys {
		if _, found := m.Get(k); !found {
			return result{}, fmt.Errorf("map lost key %d", k)
		}
	}
	lookupNs := time.Since(start).Nanoseconds() / int64(n)

	start = time.Now()
	scanned := 0
	for range m.Range(bptree.Unbounded[int64](), bptree.Unbounded[int64]()) {
		scanned++
	}
	scanNs := time.Since(start).Nanoseconds() / int64(n)
	if scanned != n {
		return result{}, fmt.Errorf("map scan visited %d of %d entries", scanned, n)
	}

	return result{name: "bptree", insertNs: insertNs, lookupNs: lookupNs, scanNs: scanNs, heapMB: heap}, nil
}

func benchPebble(n int, seed int64) (result, error) {
	dir, err := os.MkdirTemp("", "bptree-bench-pebble")
	if err != nil {
		return result{}, err
	}
	defer os.RemoveAll(dir)

	db, err := pebble.Open(dir, &pebble.Options{
		MemTableSize:          64 << 20,
		L0CompactionThreshold: 4,
	})
	if err != nil {
		return result{}, fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	keys := shuffledKeys(n, seed)
	value := []byte("v")

	start := time.Now()
	for _, k := range keys {
		if err := db.Set(encodeKey(k), value, pebble.NoSync); err != nil {
			return result{}, fmt.Errorf("set: %w", err)
		}
	}
	insertNs := time.Since(start).Nanoseconds() / int64(n)
	heap := heapMB()

	start = time.Now()
	for _, k := range keys {
		val, closer, err := db.Get(encodeKey(k))
		if err != nil {
			return result{}, fmt.Errorf("get %d: %w", k, err)
		}
		_ = val
		closer.Close()
	}
	lookupNs := time.Since(start).Nanoseconds() / int64(n)

	start = time.Now()
	it, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return result{}, fmt.Errorf("iter: %w", err)
	}
	scanned := 0
	for it.First(); it.Valid(); it.Next() {
		scanned++
	}
	if err := it.Close(); err != nil {
		return result{}, err
	}
	scanNs := time.Since(start).Nanoseconds() / int64(n)
	if scanned != n {
		return result{}, fmt.Errorf("pebble scan visited %d of %d entries", scanned, n)
	}

	return result{name: "pebble", insertNs: insertNs, lookupNs: lookupNs, scanNs: scanNs, heapMB: heap}, nil
}

// encodeKey encodes an int64 big-endian so byte order matches key order.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k))
	return b
}
