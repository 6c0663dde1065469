package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"f1countdown/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	baseURL     = flag.String("url", "http://localhost:8080", "base URL of the countdown server")
	requests    = flag.Int("requests", 500, "total number of GET /api/next requests")
	concurrency = flag.Int("concurrency", 50, "number of concurrent request workers")
	wsClients   = flag.Int("ws-clients", 0, "number of WebSocket clients to hold open on /ws")
	wsHold      = flag.Duration("ws-hold", 10*time.Second, "how long WebSocket clients stay connected")
)

type tally struct {
	ok         atomic.Int64
	seasonOver atomic.Int64
	failed     atomic.Int64
	pushes     atomic.Int64
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	log.Info().Str("url", *baseURL).Int("requests", *requests).Int("concurrency", *concurrency).Int("wsClients", *wsClients).Msg("starting load test")

	var counts tally
	var wg sync.WaitGroup

	wg.Add(*wsClients)
	for i := 0; i < *wsClients; i++ {
		go func(clientID int) {
			defer wg.Done()
			holdWebSocket(clientID, &counts)
		}(i)

		// avoid a thundering herd of handshakes
		time.Sleep(10 * time.Millisecond)
	}

	started := time.Now()
	jobs := make(chan struct{})
	client := &http.Client{Timeout: 30 * time.Second}

	var workers sync.WaitGroup
	workers.Add(*concurrency)
	for i := 0; i < *concurrency; i++ {
		go func() {
			defer workers.Done()
			for range jobs {
				fetchNext(client, &counts)
			}
		}()
	}
	for i := 0; i < *requests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	workers.Wait()
	elapsed := time.Since(started)

	wg.Wait()

	log.Info().
		Int64("ok", counts.ok.Load()).
		Int64("seasonOver", counts.seasonOver.Load()).
		Int64("failed", counts.failed.Load()).
		Int64("pushes", counts.pushes.Load()).
		Dur("elapsed", elapsed).
		Float64("rps", float64(*requests)/elapsed.Seconds()).
		Msg("load test finished")
}

func fetchNext(client *http.Client, counts *tally) {
	resp, err := client.Get(strings.TrimRight(*baseURL, "/") + "/api/next")
	if err != nil {
		counts.failed.Add(1)
		log.Debug().Err(err).Msg("request failed")
		return
	}
	defer resp.Body.Close()

	var payload model.NextResponse
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&payload) != nil {
		counts.failed.Add(1)
		return
	}
	switch payload.Status {
	case model.StatusOK:
		counts.ok.Add(1)
	case model.StatusSeasonOver:
		counts.seasonOver.Add(1)
	default:
		counts.failed.Add(1)
	}
}

func holdWebSocket(clientID int, counts *tally) {
	wsURL := "ws" + strings.TrimPrefix(strings.TrimRight(*baseURL, "/"), "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Warn().Err(err).Int("client", clientID).Msg("failed to connect")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(*wsHold))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Int("client", clientID).Msg("connection closed unexpectedly")
			}
			return
		}
		counts.pushes.Add(1)
	}
}
