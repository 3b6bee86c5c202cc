package response

// type 字段取值：0 表示成功，非 0 为业务失败分类，HTTP 状态保持 200。
const (
	TypeOK              = 0
	TypeDomainFailure   = 1
	TypeBadRequest      = 400
	TypeUnauthorized    = 401
	TypeForbidden       = 403
	TypeNotFound        = 404
	TypeConflict        = 409
	TypeTooManyRequests = 429
	TypeInternal        = 500
	TypeUpstream        = 502
)
