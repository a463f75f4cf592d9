package input

import (
	"sync"
	"syscall/js"
)

// ListenKeyDown adds a keydown listener on window passing
// KeyboardEvent.key to fn. The returned function removes the listener and
// releases the callback; only its first call has an effect.
func ListenKeyDown(fn func(key string)) (release func()) {
	return listen(js.Global(), "keydown", func(event js.Value) {
		fn(event.Get("key").String())
	})
}

// ListenPageHide calls fn when the page is being unloaded.
func ListenPageHide(fn func()) (release func()) {
	return listen(js.Global(), "pagehide", func(js.Value) {
		fn()
	})
}

func listen(target js.Value, name string, fn func(event js.Value)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(args[0])
		return nil
	})
	target.Call("addEventListener", name, cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			target.Call("removeEventListener", name, cb)
			cb.Release()
		})
	}
}
