package utils

// P 返回值的指针，用于填充可选字段
func P[T any](v T) *T {
	return &v
}

// V 读取可选字段，nil 时返回零值
func V[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
