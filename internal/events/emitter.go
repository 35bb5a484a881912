package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var Emit = func(ctx context.Context, name string, evt Event) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.RunKey == "" {
			if run := RunFromContext(ctx); run != "" {
				evt.RunKey = run
			}
		}

		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		Emit = func(context.Context, string, Event) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.RunKey == "" {
			if run := RunFromContext(ctx); run != "" {
				evt.RunKey = run
			}
		}
		f(ctx, name, evt)
	}
}
