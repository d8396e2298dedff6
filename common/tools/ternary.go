package tools

// Tern - replacement of the ternary conditional operator
func Tern[T any](cond bool, ifTrue, ifFalse T) T {
	if cond {
		return ifTrue
	}

	return ifFalse
}
