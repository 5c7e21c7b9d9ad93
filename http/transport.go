package http

import (
	"encoding/json"
	"errors"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/exchange"
	"go-zel-rate-proxy/unit"
	"io"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"
)

// Server dependencies for HTTP Server functions
type Server struct {
	Service  exchange.Service
	Logger   log.Logger
	router   http.ServeMux
	validate *validator.Validate
}

func NewServer(s exchange.Service, logger log.Logger) *Server {
	server := &Server{
		Service:  s,
		Logger:   logger,
		router:   http.ServeMux{},
		validate: validator.New(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/convert", s.convert())
	s.router.Handle("/api/fiat", s.fiat())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// convert produces HTTP handler for converting a unit to a denomination or fiat currency
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients.
	// Code is a denomination or a fiat rate, e.g. "ZEL" or "350".
	type request struct {
		Amount json.Number    `json:"amount" validate:"required"`
		Code   string         `json:"code" validate:"required"`
		To     proxy.Currency `json:"to" validate:"required"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Exchange proxy.Rate   `json:"exchange"`
		Amount   proxy.Amount `json:"amount"`
		Original unit.Unit    `json:"original"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var request request
		if !s.decode(rw, r, &request) {
			return
		}

		code, err := unit.ParseCode(request.Code)
		if err != nil {
			s.fail(rw, http.StatusBadRequest, "invalid code", err)
			return
		}
		u, err := unit.New(request.Amount.String(), code)
		if err != nil {
			s.fail(rw, http.StatusBadRequest, "invalid amount", err)
			return
		}

		result, err := s.Service.Convert(r.Context(), u, request.To)
		if err != nil {
			s.fail(rw, statusFor(err), "failed conversion", err)
			return
		}

		s.encode(rw, &response{
			Exchange: result.Rate,
			Amount:   result.Amount,
			Original: u,
		})
	}
}

// fiat produces HTTP handler for converting a fiat amount to ZEL
func (s *Server) fiat() http.HandlerFunc {

	type request struct {
		Amount   proxy.Amount   `json:"amount" validate:"gte=0"`
		Currency proxy.Currency `json:"currency" validate:"required,alpha"`
	}

	type response struct {
		Unit     unit.Unit `json:"unit"`
		ZEL      float64   `json:"ZEL"`
		MZEL     float64   `json:"mZEL"`
		Bits     float64   `json:"bits"`
		Satoshis int64     `json:"satoshis"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var request request
		if !s.decode(rw, r, &request) {
			return
		}

		u, err := s.Service.FromFiat(r.Context(), request.Amount, request.Currency)
		if err != nil {
			s.fail(rw, statusFor(err), "failed conversion", err)
			return
		}

		s.encode(rw, &response{
			Unit:     u,
			ZEL:      u.ZEL(),
			MZEL:     u.MZEL(),
			Bits:     u.Bits(),
			Satoshis: u.Satoshis(),
		})
	}
}

// decode reads and validates a POSTed JSON request, writing an error response when it can't
func (s *Server) decode(rw http.ResponseWriter, r *http.Request, request interface{}) bool {
	defer r.Body.Close()

	rw.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		rw.Header().Set("Allow", http.MethodPost)
		s.fail(rw, http.StatusMethodNotAllowed, "method not allowed", nil)
		return false
	}

	bytes, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(rw, http.StatusBadRequest, "invalid request", err)
		return false
	}

	err = json.Unmarshal(bytes, request)
	if err != nil {
		s.fail(rw, http.StatusBadRequest, "invalid json", err)
		return false
	}

	err = s.validate.Struct(request)
	if err != nil {
		s.fail(rw, http.StatusBadRequest, "invalid request", err)
		return false
	}
	return true
}

func (s *Server) encode(rw http.ResponseWriter, response interface{}) {
	bytes, err := json.Marshal(response)
	if err != nil {
		s.fail(rw, http.StatusInternalServerError, "failed json encoding", err)
		return
	}
	bytes = append(bytes, '\n')
	_, _ = rw.Write(bytes)
}

func (s *Server) fail(rw http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		s.Logger.Log("msg", msg, "status", status, "err", err)
	}
	body, _ := json.Marshal(map[string]string{"error": msg})
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(body)
}

// statusFor maps conversion errors to a status; rate source failures are the upstream's fault
func statusFor(err error) int {
	switch {
	case errors.Is(err, exchange.ErrUnknownCurrency),
		errors.Is(err, unit.ErrUnknownCode),
		errors.Is(err, unit.ErrInvalidRate),
		errors.Is(err, unit.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
