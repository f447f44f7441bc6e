package main

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Rok93/jwp-dashboard-http/directory"
)

// Worker serves a single request on a connection, then closes it.
type Worker struct {
	ctx        context.Context
	router     *Router
	log        zerolog.Logger
	clientConn net.Conn
	reader     *bufio.Reader
	req        *Request
	res        *Response
	err        error
	started    time.Time
}

type stateFunc func(*Worker) stateFunc

func NewWorker(ctx context.Context, router *Router, log zerolog.Logger) *Worker {
	return &Worker{
		ctx:    ctx,
		router: router,
		log:    log.With().Str("conn", uuid.NewString()).Logger(),
	}
}

// Start takes the ownership of conn. It returns the error that ended the
// exchange, if any, after the connection has been closed.
func (w *Worker) Start(conn net.Conn) error {
	w.clientConn = conn
	w.reader = bufio.NewReader(conn)
	w.started = time.Now()
	if addr := conn.RemoteAddr(); addr != nil {
		w.log = w.log.With().Str("remote", addr.String()).Logger()
	}

	for state := waitForRequest; state != nil; {
		state = state(w)
	}
	return w.err
}

// state funcs

func waitForRequest(w *Worker) stateFunc {
	req, err := ReadRequest(w.reader)
	if err != nil {
		w.err = err
		return handleError
	}
	w.req = req
	return dispatch
}

func dispatch(w *Worker) stateFunc {
	h := w.router.Route(w.req.Method(), w.req.Path())
	res, err := h.Handle(w.ctx, w.req)
	if err != nil {
		w.err = err
		return handleError
	}
	w.res = res
	return sendResponse
}

func sendResponse(w *Worker) stateFunc {
	if err := WriteResponse(w.clientConn, w.res); err != nil {
		w.err = errors.Wrap(err, "failed to write response")
		w.log.Error().Err(w.err).Send()
		return finishWorker
	}
	w.log.Info().
		Str("method", w.req.Method()).
		Str("path", w.req.Path()).
		Int("status", w.res.Status).
		Dur("elapsed", time.Since(w.started)).
		Msg("served")
	return finishWorker
}

// handleError answers with a bare status where one makes sense. A taken
// account on registration gets no response at all.
func handleError(w *Worker) stateFunc {
	var res *Response
	switch {
	case errors.Is(w.err, directory.ErrAlreadyRegistered):
		w.log.Warn().Err(w.err).Msg("closing without response")
		return finishWorker
	case errors.Is(w.err, ErrMalformedRequest):
		res = ResponseBadRequest
	case errors.Is(w.err, ErrResourceNotFound):
		res = ResponseNotFound
	default:
		res = ResponseInternalError
	}
	w.log.Error().Err(w.err).Int("status", res.Status).Msg("sending error response")
	if err := WriteResponse(w.clientConn, res); err != nil {
		w.log.Debug().Err(err).Msg("failed to write error response")
	}
	return finishWorker
}

func finishWorker(w *Worker) stateFunc {
	if w.clientConn != nil {
		w.clientConn.Close()
	}
	w.log.Debug().Msg("worker finished")
	return nil
}
