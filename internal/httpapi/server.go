package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultReservationsLimit = 5

// Server - служебный read-only HTTP API: здоровье, метрики, записи и слоты
type Server struct {
	booking  *service.BookingService
	gatherer prometheus.Gatherer
	val      *validator.Validate
	logger   *zap.Logger
}

// NewServer создаёт API. gatherer == nil означает prometheus.DefaultGatherer.
func NewServer(booking *service.BookingService, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		booking:  booking,
		gatherer: gatherer,
		val:      validator.New(),
		logger:   logger,
	}
}

// Router собирает chi-роутер со всеми маршрутами
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/reservations", s.ListReservations)
		api.Get("/slots", s.GetSlots)
	})

	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type reservationResponse struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	ServiceID    string `json:"service"`
	ServiceLabel string `json:"label"`
}

// ListReservations отдаёт первые limit записей в порядке даты и времени; limit=0 - все
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	limit := defaultReservationsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		limit = v
	}

	recent := s.booking.RecentReservations(limit)
	items := make([]reservationResponse, 0, len(recent))
	for _, rv := range recent {
		items = append(items, reservationResponse{
			Date:         rv.DateKey,
			Time:         rv.TimeKey,
			ServiceID:    rv.ServiceID,
			ServiceLabel: rv.ServiceLabel,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": items,
	})
}

type slotsQuery struct {
	Date    string `validate:"required,datetime=2006-01-02"`
	Service string `validate:"required"`
}

type slotResponse struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// GetSlots отдаёт слоты дня для услуги с отметкой о занятости
func (s *Server) GetSlots(w http.ResponseWriter, r *http.Request) {
	q := slotsQuery{
		Date:    r.URL.Query().Get("date"),
		Service: r.URL.Query().Get("service"),
	}
	if err := s.val.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", validationDetails(err))
		return
	}

	date, err := calendar.ParseKey(q.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if !calendar.IsSelectable(date, s.booking.Today()) {
		writeError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	svc, err := s.booking.Service(q.Service)
	if err != nil {
		writeError(w, http.StatusNotFound, "service not found", nil)
		return
	}

	states, err := s.booking.AvailableSlots(date, svc.ID)
	if err != nil {
		s.logger.Error("Failed to compute slots",
			zap.String("date", q.Date),
			zap.String("service", svc.ID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}

	items := make([]slotResponse, 0, len(states))
	for _, st := range states {
		items = append(items, slotResponse{Time: st.Time, Booked: st.Booked})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date.Key(),
		"service":  svc.ID,
		"duration": svc.Duration,
		"slots":    items,
	})
}

// validationDetails превращает ошибки validator в поле -> правило
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
