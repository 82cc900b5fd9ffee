package index

import (
	"context"

	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// ReadAsync offloads Read to a background goroutine so an event loop is never
// blocked on index I/O. The channel delivers exactly one result and is closed
// afterwards; a cancelled context resolves to domain.ErrBackgroundTask.
func (s *Store) ReadAsync(ctx context.Context, path string) <-chan ports.CacheReadResult {
	out := make(chan ports.CacheReadResult, 1)

	go func() {
		defer close(out)

		done := make(chan ports.CacheReadResult, 1)
		go func() {
			cache, err := s.Read(path)
			done <- ports.CacheReadResult{Cache: cache, Err: err}
		}()

		select {
		case res := <-done:
			out <- res
		case <-ctx.Done():
			out <- ports.CacheReadResult{Err: zerr.Wrap(ctx.Err(), domain.ErrBackgroundTask.Error())}
		}
	}()

	return out
}

// WriteAsync offloads Write to a background goroutine.
func (s *Store) WriteAsync(ctx context.Context, cache *domain.CompilerCache, path string) <-chan error {
	out := make(chan error, 1)

	go func() {
		defer close(out)

		done := make(chan error, 1)
		go func() {
			done <- s.Write(cache, path)
		}()

		select {
		case err := <-done:
			out <- err
		case <-ctx.Done():
			out <- zerr.Wrap(ctx.Err(), domain.ErrBackgroundTask.Error())
		}
	}()

	return out
}
