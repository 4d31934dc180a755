package delete_spot

import "context"

type SpotsService interface {
	Delete(ctx context.Context, spotID, ownerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
