package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

var errFetch = errors.New("failed to fetch file")

func fetchGet(ctx context.Context, path string) ([]byte, error) {
	var b []byte
	var errored bool
	chErr := make(chan error, 1)

	var funcs []js.Func
	fn := func(f func(this js.Value, args []js.Value) interface{}) js.Func {
		cb := js.FuncOf(f)
		funcs = append(funcs, cb)
		return cb
	}
	defer func() {
		for _, cb := range funcs {
			cb.Release()
		}
	}()

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}).Call("then",
		fn(func(this js.Value, args []js.Value) interface{} {
			if !args[0].Get("ok").Bool() {
				chErr <- fmt.Errorf("%w: %s: %d %s",
					errFetch, path, args[0].Get("status").Int(), args[0].Get("statusText").String(),
				)
				errored = true
				return nil
			}
			return args[0].Call("arrayBuffer")
		}),
		fn(func(this js.Value, args []js.Value) interface{} {
			chErr <- fmt.Errorf("%w: %s", errFetch, path)
			errored = true
			return nil
		}),
	).Call("then",
		fn(func(this js.Value, args []js.Value) interface{} {
			if errored {
				return nil
			}
			array := js.Global().Get("Uint8Array").New(args[0])
			n := array.Get("byteLength").Int()
			b = make([]byte, n)
			js.CopyBytesToGo(b, array)
			chErr <- nil
			return nil
		}),
		fn(func(this js.Value, args []js.Value) interface{} {
			chErr <- errors.New("failed to handle received data")
			return nil
		}),
	)

	select {
	case err := <-chErr:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		// Promise callbacks may still fire; keep them alive.
		funcs = nil
		return nil, ctx.Err()
	}

	return b, nil
}
