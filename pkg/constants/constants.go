package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	TenantIDKey  ContextKey = "tenant_id"
	UserIDKey    ContextKey = "user_id"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	RequestIDKey ContextKey = "request_id"
)

// Validate is the process-wide validator instance shared by all DTOs.
var Validate = validator.New(validator.WithRequiredStructEnabled())
