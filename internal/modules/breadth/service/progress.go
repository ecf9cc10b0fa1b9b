package service

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Progress — счётчики хода прогона; только атомики, без локов.
type Progress struct {
	startedAt time.Time

	processed atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
}

func NewProgress() *Progress {
	return &Progress{startedAt: time.Now()}
}

func (p *Progress) MarkProcessed() { p.processed.Add(1) }
func (p *Progress) MarkSkipped()   { p.skipped.Add(1) }
func (p *Progress) MarkFailed()    { p.failed.Add(1) }

func (p *Progress) Processed() int64 { return p.processed.Load() }
func (p *Progress) Skipped() int64   { return p.skipped.Load() }
func (p *Progress) Failed() int64    { return p.failed.Load() }

func (p *Progress) Summary() string {
	return fmt.Sprintf("processed=%d skipped=%d failed=%d elapsed=%s",
		p.processed.Load(), p.skipped.Load(), p.failed.Load(),
		time.Since(p.startedAt).Round(time.Second),
	)
}
