package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/nest/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info level",
			minLevel:   slog.LevelInfo,
			level:      slog.LevelInfo,
			msg:        "information message",
			goldenName: "handler_info",
		},
		{
			name:       "warn level",
			minLevel:   slog.LevelInfo,
			level:      slog.LevelWarn,
			msg:        "warning message",
			goldenName: "handler_warn",
		},
		{
			name:       "error level",
			minLevel:   slog.LevelInfo,
			level:      slog.LevelError,
			msg:        "error message",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			minLevel:   slog.LevelInfo,
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_filtered",
		},
		{
			name:       "debug level enabled",
			minLevel:   slog.LevelDebug,
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: tt.minLevel,
			})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single attribute",
			attrs:      []slog.Attr{slog.String("key", "value")},
			msg:        "single attr message",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple attributes",
			attrs:      []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			msg:        "multi attr message",
			goldenName: "handler_attrs_multi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}).WithAttrs(tt.attrs)
			lg := slog.New(handler)

			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil).WithGroup("request")

	lg := slog.New(handler)
	lg.Info("single group message", "id", "123")

	g := goldie.New(t)
	g.Assert(t, "handler_group_single", buf.Bytes())
}

func TestPrettyHandler_Groups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		log  func(lg *slog.Logger)
		want string
	}{
		{
			name: "nested groups",
			log: func(lg *slog.Logger) {
				lg.WithGroup("project").With("id", "demo").WithGroup("paths").Info("loaded", "build", "_build")
			},
			want: "loaded project.id=demo project.paths.build=_build\n",
		},
		{
			name: "empty group name is ignored",
			log:  func(lg *slog.Logger) { lg.WithGroup("").Info("loaded", "id", "demo") },
			want: "loaded id=demo\n",
		},
		{
			name: "inline group attribute",
			log:  func(lg *slog.Logger) { lg.Info("loaded", slog.Group("frame", "depth", 2)) },
			want: "loaded frame.depth=2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.log(slog.New(logger.NewPrettyHandler(buf, nil)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	assert.NotNil(t, logger.NewPrettyHandler(nil, nil))
}
