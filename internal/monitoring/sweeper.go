package monitoring

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ImageIndex reports which upload filenames are still referenced by a story.
type ImageIndex interface {
	ReferencedImageFilenames() (map[string]bool, error)
}

// minUploadAge protects uploads that precede their story's creation.
const minUploadAge = time.Hour

// Sweeper periodically deletes uploaded images that no travel story
// references. Runs on a standard cron schedule.
type Sweeper struct {
	storySvc    ImageIndex
	uploadsPath string
	schedule    cron.Schedule
	nextRunAt   time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewSweeper creates a sweeper instance. The schedule is a standard
// five-field cron expression.
func NewSweeper(storySvc ImageIndex, uploadsPath, scheduleExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		storySvc:    storySvc,
		uploadsPath: uploadsPath,
		schedule:    schedule,
		nextRunAt:   schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *Sweeper) Run() {
	log.Info().Time("next_run", s.nextRunAt).Msg("Starting upload sweeper")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping upload sweeper")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRunAt) {
				s.Sweep(now)
				s.nextRunAt = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

// Sweep removes orphaned files from the uploads directory. Files younger
// than minUploadAge are kept even when unreferenced.
func (s *Sweeper) Sweep(now time.Time) {
	referenced, err := s.storySvc.ReferencedImageFilenames()
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to list referenced images")
		return
	}

	entries, err := os.ReadDir(s.uploadsPath)
	if err != nil {
		log.Error().Err(err).Str("path", s.uploadsPath).Msg("Sweeper: failed to read uploads directory")
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < minUploadAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadsPath, entry.Name())); err != nil {
			log.Warn().Err(err).Str("filename", entry.Name()).Msg("Sweeper: failed to remove orphaned upload")
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Sweeper: removed orphaned uploads")
	}
}
