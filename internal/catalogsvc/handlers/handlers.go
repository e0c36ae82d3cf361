package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/pokecard-services/internal/apperr"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/service"
)

type Handler struct {
	sets       *service.SetService
	cards      *service.CardService
	tokenAuth  *jwtauth.JWTAuth
	instanceID string
}

func NewHandler(sets *service.SetService, cards *service.CardService, instanceID string) *Handler {
	return &Handler{sets: sets, cards: cards, instanceID: instanceID}
}

// Response is the success envelope. Data is always present.
type Response struct {
	Code  int                    `json:"-"`
	Data  interface{}            `json:"data"`
	SetID string                 `json:"set_id,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Identifier string `json:"identifier,omitempty"`
}

// ErrorResponse never carries data.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	if rsp.Code == 0 {
		rsp.Code = http.StatusOK
	}
	writeJSON(w, rsp.Code, rsp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidParameter:
		return http.StatusBadRequest
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) CreateError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := ErrorBody{Code: kind.String()}

	var e *apperr.Error
	switch {
	case kind == apperr.KindNotFound || kind == apperr.KindInvalidParameter:
		if errors.As(err, &e) {
			body.Message, body.Identifier = e.Message, e.Identifier
		}
		log.Debugf("%s %s: %v", r.Method, r.URL.Path, err)
	case kind == apperr.KindUnavailable:
		body.Message = "storage unavailable"
		log.WithField("request_id", middleware.GetReqID(r.Context())).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	default:
		body.Message = "internal error"
		log.WithField("request_id", middleware.GetReqID(r.Context())).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	writeJSON(w, statusFor(kind), ErrorResponse{Error: body})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Data: map[string]string{"status": "ok", "instance": h.instanceID},
	})
}

func (h *Handler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.sets.ListSets(r.Context(), r.URL.Query().Get("series"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: sets})
}

func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	set, err := h.sets.GetSet(r.Context(), chi.URLParam(r, "set"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: set, SetID: set.ID})
}

func (h *Handler) PullRates(w http.ResponseWriter, r *http.Request) {
	setID, rates, err := h.sets.PullRates(r.Context(), chi.URLParam(r, "set"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: rates, SetID: setID})
}

func (h *Handler) ChaseCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.cards.ChaseCards(r.Context(), chi.URLParam(r, "set"), q.Get("rarity"), q.Get("limit"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}

	rsp := Response{Data: res.Cards, SetID: res.SetID}
	if res.Rarity != "" {
		rsp.Meta = map[string]interface{}{"rarity": res.Rarity}
	}
	h.CreateResponse(w, rsp)
}

func (h *Handler) CardDetail(w http.ResponseWriter, r *http.Request) {
	res, err := h.cards.Detail(r.Context(), chi.URLParam(r, "card"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: res, SetID: res.Card.SetID})
}

func (h *Handler) CardPrice(w http.ResponseWriter, r *http.Request) {
	res, err := h.cards.Price(r.Context(), chi.URLParam(r, "card"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: res, SetID: res.SetID})
}

func (h *Handler) GradedPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.cards.GradedPrices(r.Context(), chi.URLParam(r, "card"))
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Data: prices})
}

func (h *Handler) SearchCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.cards.Search(r.Context(), service.SearchQuery{
		Query:  q.Get("q"),
		Set:    q.Get("set"),
		Rarity: q.Get("rarity"),
		Limit:  q.Get("limit"),
	})
	if err != nil {
		h.CreateError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{
		Data:  res.Cards,
		SetID: res.SetID,
		Meta:  map[string]interface{}{"query": res.Query, "count": res.Count},
	})
}
