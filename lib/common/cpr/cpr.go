// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cpr contains concurrency primitives.
package cpr

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Push sends the values on the channel, unless the context is canceled first.
func Push[T any](ctx context.Context, ch chan<- T, ts ...T) error {
	for _, t := range ts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- t:
		}
	}
	return nil
}

// Pop receives a value from the channel, unless the context is canceled first.
func Pop[T any](ctx context.Context, ch <-chan T) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case t, ok := <-ch:
		return t, ok, nil
	}
}

// Consume calls f for every value received on the channel until the channel
// is closed or f fails.
func Consume[T any](ctx context.Context, ch <-chan T, f func(T) error) error {
	for {
		t, ok, err := Pop(ctx, ch)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(t); err != nil {
			return err
		}
	}
}

// Map applies f to every element of ts using at most workers goroutines. The
// result slice is in input order. The first error cancels the remaining work.
func Map[T, R any](ctx context.Context, workers int, ts []T, f func(context.Context, int, T) (R, error)) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	res := make([]R, len(ts))
	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan int)
	g.Go(func() error {
		defer close(ch)
		for i := range ts {
			if err := Push(ctx, ch, i); err != nil {
				return err
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return Consume(ctx, ch, func(i int) error {
				r, err := f(ctx, i, ts[i])
				if err != nil {
					return err
				}
				res[i] = r
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
