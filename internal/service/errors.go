package service

// ValidationError 携带可直接展示给用户的校验提示。
// handler 层通过 errors.As 将其映射为 400 响应，不回滚以外的副作用。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
