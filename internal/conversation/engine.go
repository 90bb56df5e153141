// internal/conversation/engine.go

// Package conversation drives the interactive intake: an ordered sequence of
// question/answer steps over the update feed, each with its own timeout,
// reminder cadence and cooperative cancellation.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/types"
)

// wordsPerMinute is the narration pace used for the duration estimate.
const wordsPerMinute = 150.0

// Outcome is how a conversation (or one wait within it) ended. Timeout and
// cancellation are distinct terminations: a timeout is silent abandonment, a
// cancellation is an explicit operator directive with a persisted marker.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeTimedOut
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Options tune the wait loops. Zero fields take production defaults.
type Options struct {
	StepTimeout   time.Duration // single-line steps
	ScriptTimeout time.Duration // script step, long-form
	PollWait      time.Duration // wait budget per long-poll call
	CancelEvery   time.Duration // cancel-check interval within a wait
	RemindEvery   time.Duration // reminder interval within a wait
	StepPause     time.Duration // pause between steps
}

func (o *Options) applyDefaults() {
	if o.StepTimeout == 0 {
		o.StepTimeout = 10 * time.Minute
	}
	if o.ScriptTimeout == 0 {
		o.ScriptTimeout = 15 * time.Minute
	}
	if o.PollWait == 0 {
		o.PollWait = 10 * time.Second
	}
	if o.CancelEvery == 0 {
		o.CancelEvery = 5 * time.Second
	}
	if o.RemindEvery == 0 {
		o.RemindEvery = 2 * time.Minute
	}
}

// Engine runs one intake conversation: title, description, tags, script.
type Engine struct {
	feed        types.Feed
	notifier    types.Notifier
	fetcher     types.ContentFetcher
	productions *state.ProductionStore
	watch       *Watch
	opts        Options

	cursor int64
}

// New creates an Engine. The marker store backs the cancellation watch.
func New(feed types.Feed, notifier types.Notifier, fetcher types.ContentFetcher,
	productions *state.ProductionStore, marker *state.MarkerStore, opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{
		feed:        feed,
		notifier:    notifier,
		fetcher:     fetcher,
		productions: productions,
		watch:       NewWatch(feed, marker, notifier),
		opts:        opts,
	}
}

// Run executes the conversation to completion. A nil record is returned for
// every outcome but OutcomeCompleted. The error is set only for
// OutcomeFailed.
func (e *Engine) Run(ctx context.Context) (Outcome, *types.ProductionRecord, error) {
	session := types.NewSessionID()
	slog.Info("conversation started", "session", session)

	// A stale marker from a previous run must not leak into this one.
	if err := e.watch.marker.Clear(); err != nil {
		return OutcomeFailed, nil, err
	}
	e.cursor = e.feed.InitCursor()

	e.notifier.Send(msgIntro)
	e.pause()

	var rec types.ProductionRecord

	steps := []struct {
		name   string
		prompt string
		accept func(string) bool
	}{
		{"title", msgTitlePrompt, func(v string) bool {
			rec.Title = v
			e.notifier.Send(fmt.Sprintf(msgTitleEcho, v))
			return true
		}},
		{"description", msgDescriptionPrompt, func(v string) bool {
			rec.Description = v
			e.notifier.Send(fmt.Sprintf(msgDescriptionEcho, truncate(v, 100)))
			return true
		}},
		{"tags", msgTagsPrompt, func(v string) bool {
			// Input like "," is non-empty text but parses to nothing.
			tags := ParseTags(v)
			if len(tags) == 0 {
				e.notifier.Send(msgTagsEmpty)
				return false
			}
			rec.Tags = tags
			e.notifier.Send(fmt.Sprintf(msgTagsEcho, len(tags)))
			return true
		}},
	}

	for _, step := range steps {
		e.notifier.Send(step.prompt)
		for {
			answer, outcome := e.waitForReply(ctx, e.opts.StepTimeout)
			if outcome != OutcomeCompleted {
				return e.terminate(ctx, step.name, outcome)
			}
			if step.accept(answer) {
				break
			}
		}
		e.pause()
	}

	script, outcome := e.collectScript(ctx, e.opts.ScriptTimeout)
	if outcome != OutcomeCompleted {
		return e.terminate(ctx, "script", outcome)
	}

	now := time.Now()
	words := len(strings.Fields(script))
	rec.ID = types.NewProductionID(now)
	rec.CreatedAt = now
	rec.Script = script
	rec.Status = types.StatusCollected
	rec.WordCount = words
	rec.EstimatedDuration = float64(words) / wordsPerMinute

	path, err := e.productions.Put(&rec)
	if err != nil {
		return OutcomeFailed, nil, err
	}
	slog.Info("production record stored",
		"session", session,
		"id", rec.ID,
		"path", path,
		"words", words,
	)

	e.notifier.Send(summaryMessage(&rec))
	return OutcomeCompleted, &rec, nil
}

// terminate maps a non-complete wait outcome onto the conversation result.
func (e *Engine) terminate(ctx context.Context, step string, outcome Outcome) (Outcome, *types.ProductionRecord, error) {
	switch outcome {
	case OutcomeTimedOut:
		slog.Warn("conversation abandoned", "step", step)
		e.notifier.Send(msgStepTimeout)
		return OutcomeTimedOut, nil, nil
	case OutcomeCancelled:
		slog.Info("conversation cancelled", "step", step)
		return OutcomeCancelled, nil, nil
	default:
		return OutcomeFailed, nil, ctx.Err()
	}
}

// waitForReply blocks until the operator sends a non-empty text reply, the
// step timeout elapses, or a cancel directive arrives. Cancellation checks
// and reminder messages are interleaved on their own fixed cadences.
func (e *Engine) waitForReply(ctx context.Context, timeout time.Duration) (string, Outcome) {
	start := time.Now()
	lastCancelCheck := time.Duration(0)
	lastReminder := 0

	for {
		if ctx.Err() != nil {
			return "", OutcomeFailed
		}
		elapsed := time.Since(start)
		remaining := timeout - elapsed
		if remaining <= 0 {
			return "", OutcomeTimedOut
		}

		if elapsed-lastCancelCheck >= e.opts.CancelEvery {
			cancelled, next := e.watch.CheckOnce(e.cursor)
			e.cursor = next
			if cancelled {
				return "", OutcomeCancelled
			}
			lastCancelCheck = elapsed
		}

		if n := int(elapsed / e.opts.RemindEvery); n > lastReminder {
			e.notifier.Send(fmt.Sprintf(msgReminder, int(remaining.Minutes())))
			lastReminder = n
		}

		events, next := e.feed.Poll(e.cursor, minDuration(e.opts.PollWait, remaining))
		e.cursor = next

		for _, ev := range events {
			if ev.Kind != types.EventText {
				continue
			}
			text := strings.TrimSpace(ev.Text)
			if text == "" {
				continue
			}
			if IsCancelDirective(text) {
				e.watch.Trigger("operator requested cancellation")
				return "", OutcomeCancelled
			}
			return text, OutcomeCompleted
		}
	}
}

func (e *Engine) pause() {
	if e.opts.StepPause > 0 {
		time.Sleep(e.opts.StepPause)
	}
}

// ParseTags splits raw tag input on commas, trimming each token and dropping
// empties.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func summaryMessage(rec *types.ProductionRecord) string {
	segments := int(math.Ceil(rec.EstimatedDuration * 2))
	return fmt.Sprintf(msgSummary,
		rec.WordCount,
		rec.EstimatedDuration,
		segments,
		truncate(rec.Script, 200),
	)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
