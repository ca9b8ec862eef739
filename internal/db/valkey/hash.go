package valkey

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/parksite/internal/db"
)

// replaceMulti rewrites each hash (DEL + HSET) in a single DoMulti round-trip,
// so columns absent from the new row do not survive as stale fields.
func (s *Store) replaceMulti(ctx context.Context, keys []string, rows []db.Row) error {
	if len(keys) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(keys)*2)
	for i, key := range keys {
		cmds = append(cmds, s.b().Del().Key(key).Build())
		hset := s.b().Hset().Key(key).FieldValue()
		cols := make([]string, 0, len(rows[i]))
		for k := range rows[i] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
		for _, k := range cols {
			hset = hset.FieldValue(k, rows[i][k])
		}
		cmds = append(cmds, hset.Build())
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("key %s: %w", keys[i/2], err)}
		}
	}
	return nil
}

// hGetAll returns all fields of a hash.
func (s *Store) hGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}

// hGetAllMulti fetches all fields for multiple hashes in a single DoMulti round-trip.
func (s *Store) hGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Hgetall().Key(key).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]map[string]string, len(results))

	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		out[i] = m
	}

	return out, nil
}

// scan iterates keys matching a pattern and returns them sorted.
func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}
