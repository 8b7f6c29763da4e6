// Package create runs the item creation workflow: derive the item, voice it,
// publish it if a publisher is configured, and store it.
package create

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rehearsals/internal/model"
	"rehearsals/internal/store"
)

var ErrEmptyText = errors.New("nothing to create: enhanced text is empty")

// Synthesizer converts text to audio bytes and fails explicitly on any
// transport, auth, or quota problem.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Publisher uploads an episode and derives its public URL.
type Publisher interface {
	UploadEpisode(ctx context.Context, audio []byte, title, description string) (string, error)
	EpisodeURL(episodeID string) string
}

// Workflow wires the collaborators of one creation run. Publisher may be nil
// when publishing is unconfigured; everything else is required.
type Workflow struct {
	Store     *store.Store
	Voice     Synthesizer
	Publisher Publisher
	Log       *zap.SugaredLogger
	Now       func() time.Time
}

// Result reports a completed creation. Warning is non-empty when the item
// was stored but publishing failed.
type Result struct {
	Item    *model.Item
	Index   int
	Warning string
}

// Run executes the workflow for the given enhanced text.
//
// A synthesis failure aborts the run and stores nothing: audio is a
// precondition for an item to exist. A publish failure is reported as a
// warning but the item is kept with whatever sub-results succeeded; partial
// side effects are never rolled back.
func (w *Workflow) Run(ctx context.Context, enhanced string) (Result, error) {
	if enhanced == "" {
		return Result{}, ErrEmptyText
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	log := w.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	item := model.New(enhanced, now())

	audio, err := w.Voice.Synthesize(ctx, enhanced)
	if err != nil {
		log.Errorw("voice synthesis failed", "item", item.ID, "error", err)
		return Result{}, fmt.Errorf("voice synthesis failed: %w", err)
	}
	item.Audio = audio

	var warning string
	if w.Publisher != nil {
		episodeID, err := w.Publisher.UploadEpisode(ctx, audio, item.Title(), item.Content)
		if err != nil {
			// The item is still worth keeping; only the reference is lost.
			log.Warnw("episode upload failed", "item", item.ID, "error", err)
			warning = fmt.Sprintf("Publishing failed: %v", err)
		} else {
			item.Published = &model.Episode{
				ID:  episodeID,
				URL: w.Publisher.EpisodeURL(episodeID),
			}
			log.Infow("episode published", "item", item.ID, "episode", episodeID)
		}
	}

	index := w.Store.Add(item)
	log.Infow("rehearsal created", "item", item.ID, "index", index, "audioBytes", len(audio))
	return Result{Item: item, Index: index, Warning: warning}, nil
}
