package apply_penalty

import (
	"context"

	applyPenalty "github.com/m04kA/M4Y-RentalService/internal/usecase/apply_penalty"
)

type ApplyPenaltyUseCase interface {
	Execute(ctx context.Context, req *applyPenalty.Request) (*applyPenalty.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
