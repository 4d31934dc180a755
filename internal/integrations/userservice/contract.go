package userservice

// Logger is the subset of the application logger the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
