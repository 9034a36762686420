package handler

import (
	"context"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/model"
)

func ok[T any](message string, data T) *model.Envelope[T] {
	return &model.Envelope[T]{
		Success: true,
		Message: message,
		Data:    &data,
		Errors:  []string{},
	}
}

// fail turns err into a failed envelope. Expected failures carry their own message and
// field errors. Anything else is logged, reported and answered with internalMessage.
func fail[T any](ctx context.Context, h *Auth, method, internalMessage string, err error) (*model.Envelope[T], error) {
	apiErr := apierror.As(err)

	if apiErr.Kind == apierror.KindInternal {
		h.logger.Error("Auth handler: request failed",
			"method", method,
			"error", err.Error())
		h.reporter.Report(ctx, err)
		return &model.Envelope[T]{
			Message: internalMessage,
			Errors:  []string{},
			Code:    string(apierror.KindInternal),
		}, nil
	}

	h.logger.Info("Auth handler: request rejected",
		"method", method,
		"kind", string(apiErr.Kind))

	errs := apiErr.Errors
	if errs == nil {
		errs = []string{}
	}
	return &model.Envelope[T]{
		Message: apiErr.Message,
		Errors:  errs,
		Code:    string(apiErr.Kind),
	}, nil
}
