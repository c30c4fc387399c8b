package domain

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyCSRFToken CtxKey = "CSRFToken"
)
