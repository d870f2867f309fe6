package handler

const (
	errInternalServer  = "internal server error"
	errEmailTaken      = "email already registered"
	errEmailUnknown    = "email not registered"
	errBadPassword     = "incorrect password"
	errProductNotFound = "product not found"
	errNotOwner        = "you do not have permission to modify this product"
)
