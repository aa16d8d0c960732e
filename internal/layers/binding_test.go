package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PixPMusic/gopher-surface/internal/surface"
)

func TestBindingLight(t *testing.T) {
	on := true
	guard := func() bool { return on }

	tests := []struct {
		name  string
		opts  []Option
		guard bool
		want  surface.Value
	}{
		{"nothing", nil, true, surface.Off},
		{"plain guard true", []Option{WithGuard(guard)}, true, surface.Bool(true)},
		{"plain guard false", []Option{WithGuard(guard)}, false, surface.Off},
		{"colored true", []Option{WithGuard(guard), WithColors(surface.Green, surface.Red)}, true, surface.Lit(surface.Green)},
		{"colored false", []Option{WithGuard(guard), WithColors(surface.Green, surface.Red)}, false, surface.Lit(surface.Red)},
		{"black off color", []Option{WithGuard(guard), WithColors(surface.Green, surface.Black)}, false, surface.Off},
		{
			"supplier wins",
			[]Option{WithGuard(guard), WithLight(func() surface.Value { return surface.Lit(surface.Blue) })},
			false,
			surface.Lit(surface.Blue),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on = tt.guard
			b := newBinding(nil, nil, tt.opts)
			assert.Equal(t, tt.want, b.Light())
		})
	}
}

func TestBindingHandle(t *testing.T) {
	var log []string
	b := newBinding(nil, nil, []Option{
		OnPress(func() { log = append(log, "press") }),
		OnAdjust(func(d int) { log = append(log, "adjust") }),
	})

	assert.True(t, b.Handles(surface.Press()))
	assert.False(t, b.Handles(surface.Release()))
	assert.True(t, b.Handle(surface.Press()))
	assert.False(t, b.Handle(surface.Release()))
	assert.True(t, b.Handle(surface.Adjust(-2)))
	assert.Equal(t, []string{"press", "adjust"}, log)
}
