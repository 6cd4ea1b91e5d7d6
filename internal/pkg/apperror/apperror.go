package apperror

// AppError ошибка предметной области с HTTP-статусом и сообщением для пользователя
type AppError struct {
	Code    int    // HTTP статус (400, 404, 409...)
	Message string // текст для пользователя
	Err     error  // исходная ошибка, наружу не отдаётся
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду и сообщению, чтобы обёрнутые копии сентинелов находились через errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New создаёт AppError с кодом и сообщением
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap создаёт AppError поверх существующей ошибки
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
