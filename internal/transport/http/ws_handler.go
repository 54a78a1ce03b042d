package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/quiz"
	"mcq-practice-service/internal/response"
)

type WSHandler struct {
	service  *app.QuizService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler builds the session channel handler. With allowAll set, or no
// origins configured, any Origin is accepted.
func NewWSHandler(service *app.QuizService, log zerolog.Logger, origins []string, allowAll bool) *WSHandler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll || len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type categoryPayload struct {
	Category string `json:"category"`
}

type answerPayload struct {
	Value string `json:"value"`
}

type gotoPayload struct {
	Number int `json:"number"`
}

type resultsPayload struct {
	domain.ResultReport
	Verdict string `json:"verdict"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Code    response.ErrCode `json:"code"`
	Message string           `json:"message"`
}

// ServeWS upgrades to a websocket bound to one practice session. Without a
// sessionId query parameter a new session is started. Every state change is
// pushed as a "state" message, starting with the current state.
func (h *WSHandler) ServeWS(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID, _ = h.service.StartSession(ctx)
	} else if _, err := h.service.Snapshot(ctx, sessionID); err != nil {
		response.Error(c, err)
		return
	}

	updates, cancel, err := h.service.Subscribe(ctx, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	// Loads outlive the request context of a single message but not the connection.
	connCtx, stopLoads := context.WithCancel(context.Background())
	defer stopLoads()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	var loads sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Str("session", sessionID).Msg("ws write failed")
				// keep draining so producers never block on a dead socket
				for range send {
				}
				return
			}
		}
	}()

	emit := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-closeSignals:
		}
	}
	fail := func(err error) {
		_, code, message := response.Classify(err)
		emit(outboundMessage[any]{Type: "error", Payload: errorPayload{Code: code, Message: message}})
	}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				emit(outboundMessage[any]{Type: "state", Payload: snap})
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "selectCategory":
			var p categoryPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				fail(domain.ErrMalformedJSON)
				continue
			}
			// Loads run concurrently so a later category can supersede an earlier one.
			loads.Add(1)
			go func() {
				defer loads.Done()
				_, err := h.service.SelectCategory(connCtx, sessionID, p.Category)
				if err != nil && !errors.Is(err, domain.ErrStaleLoad) {
					fail(err)
				}
			}()
		case "selectAnswer":
			var p answerPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				fail(domain.ErrMalformedJSON)
				continue
			}
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.SelectAnswer(ctx, sessionID, p.Value) })
		case "next":
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.Next(ctx, sessionID) })
		case "previous":
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.Previous(ctx, sessionID) })
		case "goTo":
			var p gotoPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				fail(domain.ErrMalformedJSON)
				continue
			}
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.GoTo(ctx, sessionID, p.Number) })
		case "submit":
			report, _, err := h.service.Submit(ctx, sessionID)
			if err != nil {
				fail(err)
				continue
			}
			emit(outboundMessage[any]{Type: "results", Payload: resultsPayload{ResultReport: report, Verdict: report.Verdict()}})
		case "reset":
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.Reset(ctx, sessionID) })
		case "closeResults":
			reportErr(fail, func() (quiz.Snapshot, error) { return h.service.CloseResults(ctx, sessionID) })
		case "review":
			items, err := h.service.Review(ctx, sessionID)
			if err != nil {
				fail(err)
				continue
			}
			emit(outboundMessage[any]{Type: "review", Payload: items})
		default:
			emit(outboundMessage[any]{Type: "error", Payload: errorPayload{Code: response.ErrInvalidPayload, Message: "unsupported message type"}})
		}
	}

	stopLoads()
	close(closeSignals)
	loads.Wait()
	<-updatesDone
	close(send)
	<-writerDone
}

func reportErr(fail func(error), op func() (quiz.Snapshot, error)) {
	if _, err := op(); err != nil {
		fail(err)
	}
}
