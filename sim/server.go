package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/c360/firewatch/cache"
	"github.com/c360/firewatch/errors"
	"github.com/c360/firewatch/pkg/timestamp"
	"github.com/c360/firewatch/query"
	"github.com/c360/firewatch/record"
	"github.com/c360/firewatch/snapshot"
)

// Generator cadences, matching the upstream service.
const (
	DefaultFireInterval         = 20 * time.Second
	DefaultNotificationInterval = 15 * time.Second
)

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithIntervals overrides the generator cadences. Useful in tests.
func WithIntervals(fire, notification time.Duration) Option {
	return func(s *Server) {
		if fire > 0 {
			s.fireInterval = fire
		}
		if notification > 0 {
			s.notifInterval = notification
		}
	}
}

// Server is the in-process mission control backend.
type Server struct {
	store         *cache.Store
	logger        *slog.Logger
	fireInterval  time.Duration
	notifInterval time.Duration
	upgrader      websocket.Upgrader

	mu            sync.Mutex
	telemetrySubs map[*websocket.Conn]struct{}
	notifSubs     map[*websocket.Conn]struct{}
	fireIntensity int

	started atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a server seeded with the demo dataset relative to now.
func NewServer(opts ...Option) *Server {
	s := &Server{
		store:         cache.NewStore(),
		logger:        slog.Default(),
		fireInterval:  DefaultFireInterval,
		notifInterval: DefaultNotificationInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		telemetrySubs: make(map[*websocket.Conn]struct{}),
		notifSubs:     make(map[*websocket.Conn]struct{}),
		fireIntensity: 30,
	}
	for _, opt := range opts {
		opt(s)
	}

	base := timestamp.Now()
	s.store.MergeHistory(seedHistory(base))
	s.store.MergeNotifications(seedNotifications(base)...)
	return s
}

// Handler returns the full HTTP surface: REST API plus WebSocket feeds.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fire-drone/recent/", s.handleRecent)
	mux.HandleFunc("/api/fire-drone/range/", s.handleRange)
	mux.HandleFunc("/api/notifications/recent/", s.handleRecentNotifications)
	mux.HandleFunc("/api/fire-warden/chat/", s.handleChat)
	mux.HandleFunc("/ws/fire-updates/", s.handleTelemetrySocket)
	mux.HandleFunc("/ws/notifications/", s.handleNotificationSocket)
	return mux
}

// Start launches the background generators.
func (s *Server) Start(ctx context.Context) error {
	if s.started.Load() {
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "sim", "Start", "check started state")
	}

	genCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.runFireGenerator(genCtx)
	go s.runNotificationGenerator(genCtx)

	s.started.Store(true)
	return nil
}

// Stop halts the generators and closes every subscriber connection.
func (s *Server) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	s.cancel()

	s.mu.Lock()
	for conn := range s.telemetrySubs {
		_ = conn.Close()
	}
	for conn := range s.notifSubs {
		_ = conn.Close()
	}
	s.telemetrySubs = make(map[*websocket.Conn]struct{})
	s.notifSubs = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// The recent endpoint serves the trailing 24 hours only.
	now := timestamp.Now()
	start := now - day

	writeJSON(w, record.History{
		Fires:  filterFires(s.store.Fires(), start, now),
		Drones: filterDrones(s.store.Drones(), start, now),
	})
}

// rangeResponse mirrors the engine's range query result shape.
type rangeResponse struct {
	Fires    []record.Fire  `json:"fires"`
	Drones   []record.Drone `json:"drones"`
	Totals   rangeTotals    `json:"totals"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type rangeTotals struct {
	Fires  int `json:"fires"`
	Drones int `json:"drones"`
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	now := timestamp.Now()
	start, err := parseInt64(q.Get("start"), now-day)
	if err != nil {
		http.Error(w, "invalid start", http.StatusBadRequest)
		return
	}
	end, err := parseInt64(q.Get("end"), now)
	if err != nil {
		http.Error(w, "invalid end", http.StatusBadRequest)
		return
	}
	if start > end {
		http.Error(w, "start after end", http.StatusBadRequest)
		return
	}
	page, err := parseInt(q.Get("page"), 1)
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	pageSize, err := parseInt(q.Get("page_size"), 0)
	if err != nil || pageSize < 0 {
		http.Error(w, "invalid page_size", http.StatusBadRequest)
		return
	}
	// entity selects one record kind; empty selects both.
	entity := q.Get("entity")
	if entity != "" && entity != query.EntityFires && entity != query.EntityDrones {
		http.Error(w, "invalid entity", http.StatusBadRequest)
		return
	}

	fires := []record.Fire{}
	drones := []record.Drone{}
	if entity == "" || entity == query.EntityFires {
		fires = filterFires(s.store.Fires(), start, end)
	}
	if entity == "" || entity == query.EntityDrones {
		drones = filterDrones(s.store.Drones(), start, end)
	}

	resp := rangeResponse{
		Totals:   rangeTotals{Fires: len(fires), Drones: len(drones)},
		Fires:    paginate(fires, page, pageSize),
		Drones:   paginate(drones, page, pageSize),
		Page:     page,
		PageSize: pageSize,
	}
	writeJSON(w, resp)
}

func (s *Server) handleRecentNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, struct {
		Notifications []record.Notification `json:"notifications"`
	}{s.store.NotificationsByRecency()})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Message is required"})
		return
	}
	message := strings.ToLower(strings.TrimSpace(req.Message))
	if message == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Message is required"})
		return
	}

	writeJSON(w, s.chatResponse(message))
}

// chatResponse is the keyword-driven fire warden. Status and drone answers
// are computed from the live dataset; strategy and weather are canned.
func (s *Server) chatResponse(message string) map[string]any {
	switch {
	case strings.Contains(message, "status") || strings.Contains(message, "situation"):
		latest := s.store.LatestTimestamp()
		sum := snapshot.Summarize(
			snapshot.At(s.store.Fires(), latest),
			snapshot.At(s.store.Drones(), latest),
		)
		return map[string]any{
			"type": "text",
			"content": fmt.Sprintf(
				"Current situation analysis: %d active fires across multiple sectors. "+
					"%d drones are on station. I recommend watching the northeast perimeter.",
				sum.ActiveFires, sum.DronesOnline),
		}

	case strings.Contains(message, "strategy") || strings.Contains(message, "plan"):
		return map[string]any{
			"type":    "plan",
			"content": "I've analyzed the situation and generated a tactical plan:",
			"plan": map[string]any{
				"title": "Sector C Reinforcement Strategy",
				"actions": []string{
					"Redeploy Drones D-15, D-18, D-22, D-24 from Sector A to Sector C",
					"Position drones at coordinates: N42.5°, N43.1°, N43.7°, N44.2°",
					"Increase water drop frequency to every 90 seconds",
					"Establish firebreak along northeastern perimeter",
				},
				"impact": map[string]string{
					"containment":        "40% faster containment",
					"eta":                "2.5 hours",
					"successProbability": "87%",
				},
			},
		}

	case strings.Contains(message, "drone"):
		latest := s.store.LatestTimestamp()
		drones := snapshot.At(s.store.Drones(), latest)
		sum := snapshot.Summarize(nil, drones)
		return map[string]any{
			"type": "text",
			"content": fmt.Sprintf(
				"Drone fleet status: %d of %d drones are currently active. "+
					"Average battery level is %d%%, average water capacity is %d%%.",
				sum.DronesOnline, len(drones), sum.AvgBattery, sum.AvgWater),
		}

	case strings.Contains(message, "weather") || strings.Contains(message, "wind"):
		return map[string]any{
			"type": "text",
			"content": "Current weather conditions: Wind speed is 12 mph from the northeast. " +
				"Forecast shows winds may increase to 18 mph within the next 2 hours. " +
				"Temperature is 85°F with 15% humidity. These conditions favor rapid fire spread.",
		}

	default:
		return map[string]any{
			"type": "text",
			"content": "I understand your query. Based on current fire patterns and resource " +
				"availability, I can provide strategic recommendations. Would you like me to " +
				"analyze a specific sector or generate a comprehensive tactical plan?",
		}
	}
}

func (s *Server) handleTelemetrySocket(w http.ResponseWriter, r *http.Request) {
	s.serveSocket(w, r, s.telemetrySubs)
}

func (s *Server) handleNotificationSocket(w http.ResponseWriter, r *http.Request) {
	s.serveSocket(w, r, s.notifSubs)
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request, subs map[*websocket.Conn]struct{}) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	subs[conn] = struct{}{}
	s.mu.Unlock()

	// Consume (and discard) inbound frames until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(subs, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Server) runFireGenerator(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.fireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.emitFireUpdate()
		}
	}
}

// emitFireUpdate grows the test fire and pushes it to telemetry subscribers.
// The update is merged into the dataset so HTTP queries reflect it too.
func (s *Server) emitFireUpdate() {
	s.mu.Lock()
	if s.fireIntensity < 100 {
		s.fireIntensity += 5
	}
	intensity := s.fireIntensity
	s.mu.Unlock()

	status := "Active"
	if intensity >= 80 {
		status = "Critical"
	}
	fire := record.Fire{
		ID:        "F-TEST",
		Lat:       34.12,
		Lng:       -118.40,
		Intensity: intensity,
		Status:    status,
		Size:      50 + intensity/2,
		Timestamp: timestamp.Now(),
	}
	s.store.MergeFires(fire)

	frame, err := json.Marshal(map[string]any{"type": "fire", "payload": fire})
	if err != nil {
		return
	}
	s.broadcast(s.telemetrySubs, frame)
}

func (s *Server) runNotificationGenerator(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.notifInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.emitNotification()
		}
	}
}

func (s *Server) emitNotification() {
	tmpl := notificationTemplates[rand.Intn(len(notificationTemplates))]

	var title string
	switch tmpl.source {
	case "Fire Detection System":
		title = fmt.Sprintf(tmpl.title, sectors[rand.Intn(len(sectors))])
	case "Weather Monitoring System":
		title = fmt.Sprintf(tmpl.title, 10+rand.Intn(21))
	default:
		if strings.Contains(tmpl.title, "battery") {
			title = fmt.Sprintf(tmpl.title, 1+rand.Intn(20), 5+rand.Intn(91))
		} else {
			title = fmt.Sprintf(tmpl.title, zones[rand.Intn(len(zones))])
		}
	}

	n := record.Notification{
		ID:        uuid.NewString(),
		Timestamp: timestamp.Now(),
		Severity:  severityCycle[rand.Intn(len(severityCycle))],
		Title:     title,
		Message:   "Automated notification from monitoring system.",
		Source:    tmpl.source,
	}
	s.store.MergeNotifications(n)

	frame, err := json.Marshal(n)
	if err != nil {
		return
	}
	s.broadcast(s.notifSubs, frame)
}

// broadcast writes a frame to every subscriber, dropping the ones that fail.
func (s *Server) broadcast(subs map[*websocket.Conn]struct{}, frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range subs {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.logger.Debug("subscriber dropped", "error", err)
			delete(subs, conn)
			_ = conn.Close()
		}
	}
}

func filterFires(fires []record.Fire, start, end int64) []record.Fire {
	out := make([]record.Fire, 0, len(fires))
	for _, f := range fires {
		if f.Timestamp < start || f.Timestamp > end {
			continue
		}
		out = append(out, f)
	}
	return out
}

func filterDrones(drones []record.Drone, start, end int64) []record.Drone {
	out := make([]record.Drone, 0, len(drones))
	for _, d := range drones {
		if d.Timestamp < start || d.Timestamp > end {
			continue
		}
		out = append(out, d)
	}
	return out
}

// paginate returns the requested 1-based page. A zero pageSize disables
// pagination.
func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	offset := (page - 1) * pageSize
	if offset >= len(items) {
		return []T{}
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func parseInt64(s string, fallback int64) (int64, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseInt(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
