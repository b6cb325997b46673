package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
)

// statusClientClosedRequest is answered when the operator went away mid-request
const statusClientClosedRequest = 499

// translateError maps service and upstream failures onto AppErrors
func translateError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return fromUpstream(upErr)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return apperror.Wrap(statusClientClosedRequest, "Request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.NewUpstreamError("The loyalty API did not answer in time", err)
	}
	return apperror.Wrap(http.StatusInternalServerError, "Internal server error", err)
}

func fromUpstream(e *upstream.Error) *apperror.AppError {
	switch e.Kind {
	case upstream.KindNotFound:
		return apperror.Wrap(http.StatusNotFound, e.Resource+" not found", e)
	case upstream.KindRejected:
		message := e.Message
		if message == "" {
			message = "The loyalty API rejected the request"
		}
		switch {
		case e.Status >= 400 && e.Status < 500:
			return apperror.Wrap(e.Status, message, e)
		case e.Status >= 200 && e.Status < 300:
			// success:false on a 2xx
			return apperror.Wrap(http.StatusUnprocessableEntity, message, e)
		}
		return apperror.NewUpstreamError(message, e)
	}

	last := e.Last()
	message := fmt.Sprintf("Could not reach the loyalty API for %s", e.Resource)
	switch last.Kind {
	case upstream.KindStatus:
		message = fmt.Sprintf("The loyalty API answered %d for %s", last.Status, e.Resource)
	case upstream.KindMalformed:
		message = fmt.Sprintf("The loyalty API sent an unreadable response for %s", e.Resource)
	}
	return apperror.NewUpstreamError(message, e)
}
