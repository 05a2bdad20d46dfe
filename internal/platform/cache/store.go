package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store caches encoded response payloads by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	GetOrLoad(ctx context.Context, key string, loader Loader) (Lookup, error)
}

type Loader func(ctx context.Context) ([]byte, error)

// Lookup is the outcome of GetOrLoad. BackendErr is a Get or Set failure that was worked
// around by running the loader; Value is still valid when it is set.
type Lookup struct {
	Value      []byte
	BackendErr error
}

var errNilLoader = errors.New("loader is required")

type flightResult struct {
	value      []byte
	backendErr error
}

// loadThrough implements GetOrLoad on top of Get/Set. Concurrent misses on one key share a
// single loader call that runs detached from any one caller's cancellation; each caller
// stops waiting when its own ctx is done. Backend failures fall through to the loader and
// are reported in Lookup.BackendErr.
func loadThrough(ctx context.Context, s Store, flight *singleflight.Group, key string, loader Loader) (Lookup, error) {
	if loader == nil {
		return Lookup{}, errNilLoader
	}
	if key == "" {
		value, err := loader(ctx)
		if err != nil {
			return Lookup{}, err
		}
		return Lookup{Value: value}, nil
	}

	value, ok, getErr := s.Get(ctx, key)
	if getErr == nil && ok {
		return Lookup{Value: value}, nil
	}

	shared := flight.DoChan(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)

		cached, ok, err := s.Get(flightCtx, key)
		if err == nil && ok {
			return flightResult{value: cached}, nil
		}
		backendErr := err

		loaded, loadErr := loader(flightCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		if err := s.Set(flightCtx, key, loaded); err != nil && backendErr == nil {
			backendErr = err
		}
		return flightResult{value: loaded, backendErr: backendErr}, nil
	})

	select {
	case <-ctx.Done():
		return Lookup{}, ctx.Err()
	case res := <-shared:
		if res.Err != nil {
			return Lookup{}, res.Err
		}
		out, _ := res.Val.(flightResult)
		if getErr != nil {
			out.backendErr = getErr
		}
		return Lookup{Value: out.value, BackendErr: out.backendErr}, nil
	}
}

// Nop never stores anything; every GetOrLoad hits the loader.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte) error { return nil }

func (Nop) GetOrLoad(ctx context.Context, _ string, loader Loader) (Lookup, error) {
	if loader == nil {
		return Lookup{}, errNilLoader
	}
	value, err := loader(ctx)
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{Value: value}, nil
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
