// Package cron schedules recurring discovery sweeps.
package cron

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		job(r.baseCtx)
	})
}

func (r *Runner) Start() {
	if r.logger != nil {
		r.logger.Info("cron started")
	}
	r.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	if r.logger != nil {
		r.logger.Info("cron stopped")
	}
}

// City is one scheduled sweep target.
type City struct {
	Name  string
	State string
}

// ParseCity parses a "City,ST" config entry.
func ParseCity(entry string) (City, error) {
	parts := strings.SplitN(entry, ",", 2)
	if len(parts) != 2 {
		return City{}, fmt.Errorf("invalid city entry %q, expected \"City,ST\"", entry)
	}
	name := strings.TrimSpace(parts[0])
	state := strings.ToUpper(strings.TrimSpace(parts[1]))
	if name == "" || state == "" {
		return City{}, fmt.Errorf("invalid city entry %q, expected \"City,ST\"", entry)
	}
	return City{Name: name, State: state}, nil
}
