package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetMiseBinary() string
	GetAuditDBPath() string
	IsAuditEnabled() bool
}

type TimeoutConfig interface {
	GetDefaultTimeout() time.Duration
	GetTaskTimeout() time.Duration
	GetUpdateTimeout() time.Duration
}

type TransportConfig interface {
	GetTransport() string
	GetListenAddr() string
	GetBaseURL() string
}
