// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/alchemorsel/nutriguide/internal/domain/diet"
	"github.com/alchemorsel/nutriguide/internal/domain/health"
	"github.com/alchemorsel/nutriguide/internal/domain/restaurant"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/nutriguide/internal/ports/inbound"
	apperrors "github.com/alchemorsel/nutriguide/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20

	messageHealthDataRequired = "健康データが必要です"
	messageMalformedBody      = "リクエストの形式が正しくありません"
	messageInternalFailure    = "レコメンデーションの処理中にエラーが発生しました"
	internalFailureAdvice     = "データ処理中にエラーが発生しました。一般的な健康的な食事習慣を心がけてください。"
)

// RecommendRequest is the body of POST /api/recommend
type RecommendRequest struct {
	HealthData MetricValues `json:"healthData" validate:"required,min=1"`
	Location   string       `json:"location"`
}

// MetricValues accepts metric values as JSON strings or numbers.
// null becomes an empty value, which counts as absent.
type MetricValues map[string]string

// UnmarshalJSON implements json.Unmarshaler
func (m *MetricValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}

	out := make(MetricValues, len(raw))
	for key, value := range raw {
		var s string
		switch trimmed := bytes.TrimSpace(value); {
		case json.Unmarshal(trimmed, &s) == nil:
			out[key] = s
		case string(trimmed) == "null":
			out[key] = ""
		default:
			out[key] = string(trimmed)
		}
	}
	*m = out
	return nil
}

// RecommendHandler serves the recommendation endpoint
type RecommendHandler struct {
	service  inbound.RecommendationService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecommendHandler creates a new recommend handler
func NewRecommendHandler(service inbound.RecommendationService, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.Named("recommend-handler"),
	}
}

// failureResponse mirrors RecommendationDTO plus the error message
type failureResponse struct {
	Error string `json:"error"`
	inbound.RecommendationDTO
}

// Recommend handles POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			appErr := apperrors.NewInternalError(messageInternalFailure)
			if err, ok := rec.(error); ok {
				appErr = appErr.WithCause(err)
			}
			h.logger.Error("Recommendation failed",
				zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			h.writeJSON(w, appErr.StatusCode(), failureResponse{
				Error: appErr.Message,
				RecommendationDTO: inbound.RecommendationDTO{
					HealthAdvice:    internalFailureAdvice,
					DietSuggestions: diet.ErrorFallback(),
					Restaurants:     []restaurant.Restaurant{},
				},
			})
		}
	}()

	req, appErr := h.decode(w, r)
	if appErr != nil {
		h.logger.Debug("Rejected recommendation request",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(appErr))
		middleware.WriteError(w, r, appErr)
		return
	}

	result := h.service.BuildRecommendation(r.Context(), inbound.RecommendCommand{
		Metrics:  health.Metrics(req.HealthData),
		Location: req.Location,
	})
	h.writeJSON(w, http.StatusOK, result)
}

func (h *RecommendHandler) decode(w http.ResponseWriter, r *http.Request) (*RecommendRequest, *apperrors.AppError) {
	var req RecommendRequest

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, apperrors.NewUnsupportedMediaTypeError(ct)
		}
		mediaType = parsed
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	switch mediaType {
	case "application/json":
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, apperrors.NewBadRequestError(messageMalformedBody).WithCause(err)
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &req); err != nil {
				return nil, apperrors.NewBadRequestError(messageMalformedBody).WithCause(err)
			}
		}
	case "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, apperrors.NewBadRequestError(messageMalformedBody).WithCause(err)
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, apperrors.NewBadRequestError(messageMalformedBody).WithCause(err)
		}
		req = fromForm(form)
	default:
		return nil, apperrors.NewUnsupportedMediaTypeError(mediaType)
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "HealthData" {
			return nil, apperrors.NewValidationError(messageHealthDataRequired, "healthData must contain at least one metric")
		}
		return nil, apperrors.NewValidationError(messageMalformedBody, err.Error())
	}
	return &req, nil
}

// fromForm reads healthData[key]=value pairs and location
func fromForm(form url.Values) RecommendRequest {
	req := RecommendRequest{Location: form.Get("location")}
	for key, values := range form {
		name, ok := strings.CutPrefix(key, "healthData[")
		if !ok || !strings.HasSuffix(name, "]") || len(values) == 0 {
			continue
		}
		if req.HealthData == nil {
			req.HealthData = MetricValues{}
		}
		req.HealthData[strings.TrimSuffix(name, "]")] = values[0]
	}
	return req
}

func (h *RecommendHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
