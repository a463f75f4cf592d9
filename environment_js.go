package main

import (
	"context"
	"errors"
	"syscall/js"
)

var errImageLoad = errors.New("failed to load environment image")

type envImage js.Value

func (m envImage) Width() int {
	return js.Value(m).Get("width").Int()
}

func (m envImage) Height() int {
	return js.Value(m).Get("height").Int()
}

func (m envImage) Interface() interface{} {
	return js.Value(m)
}

func loadImage(ctx context.Context, src string) (envImage, error) {
	img := js.Global().Get("Image").New()
	img.Set("crossOrigin", "anonymous")

	chOK := make(chan bool, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- true
		return nil
	})
	onError := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- false
		return nil
	})
	img.Call("addEventListener", "load", onLoad)
	img.Call("addEventListener", "error", onError)
	release := func() {
		img.Call("removeEventListener", "load", onLoad)
		img.Call("removeEventListener", "error", onError)
		onLoad.Release()
		onError.Release()
	}
	img.Set("src", src)

	select {
	case ok := <-chOK:
		release()
		if !ok {
			return envImage(js.Null()), errImageLoad
		}
		return envImage(img), nil
	case <-ctx.Done():
		release()
		img.Set("src", "")
		return envImage(js.Null()), ctx.Err()
	}
}
