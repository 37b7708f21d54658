package generr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option   { return func(e *Error) { e.Message = msg } }
func WithService(svc string) Option   { return func(e *Error) { e.Service = svc } }
func WithAction(action string) Option { return func(e *Error) { e.Action = action } }
func WithArgument(arg string) Option  { return func(e *Error) { e.Argument = arg } }
func WithURL(url string) Option       { return func(e *Error) { e.URL = url } }
func WithPath(path string) Option     { return func(e *Error) { e.Path = path } }
func WithCause(err error) Option      { return func(e *Error) { e.Cause = err } }
