package season

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher periodically recomputes the next race through a Cache and hands
// the payload to notify whenever it differs from the previous one.
type Watcher struct {
	cache    *Cache
	interval time.Duration
	notify   func([]byte)
	now      func() time.Time

	last     []byte
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWatcher(cache *Cache, interval time.Duration, notify func([]byte)) *Watcher {
	return &Watcher{
		cache:    cache,
		interval: interval,
		notify:   notify,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	log.Info().Msg("next race watcher stopped")
}

func (w *Watcher) run() {
	defer w.wg.Done()

	w.check()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) check() {
	resp, _ := Next(context.Background(), w.cache, w.now().UTC())
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode next race payload")
		return
	}
	if string(payload) == string(w.last) {
		return
	}
	w.last = payload
	log.Debug().Str("status", resp.Status).Msg("next race changed, notifying")
	w.notify(payload)
}
