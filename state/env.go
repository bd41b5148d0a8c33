// Package state defines shared program state.
package state

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tprint/common"
	"tprint/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by print and preview subcommands
	Overwrite bool
	JobName   string
	DemoText  string

	display       atomic.Int32
	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// DisplayMode returns display mode to be used by the next pagination session.
// Until set explicitly it follows configuration.
func (e *LocalEnv) DisplayMode() common.DisplayContent {
	if d := common.DisplayContent(e.display.Load()); d.IsValid() {
		return d
	}
	if e.Cfg != nil {
		return e.Cfg.Print.Display
	}
	return common.DisplayContentTextAndImages
}

// SetDisplayMode changes display mode for sessions started afterwards, sessions
// already built keep their layout.
func (e *LocalEnv) SetDisplayMode(d common.DisplayContent) {
	e.display.Store(int32(d))
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
