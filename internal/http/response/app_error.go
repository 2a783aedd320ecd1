package response

// AppError 统一错误包装，Name 为对外暴露的稳定错误名
type AppError struct {
	Code    int
	Name    string
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
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapNamedError 包装带错误名的错误
func WrapNamedError(code int, name, message string, err error) *AppError {
	appErr := WrapError(code, message, err)
	appErr.Name = name
	return appErr
}

// Data 响应中的错误数据
func (e *AppError) Data() interface{} {
	if e == nil || e.Name == "" {
		return nil
	}
	return map[string]interface{}{"error": e.Name}
}
