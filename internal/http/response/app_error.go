package response

// AppError 统一错误包装
type AppError struct {
	Type    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(failType int, message string, err error) *AppError {
	return &AppError{
		Type:    failType,
		Message: message,
		Err:     err,
	}
}
