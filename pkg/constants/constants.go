package constants

type ContextKey string

const (
	AppKey       ContextKey = "app"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	RequestStart ContextKey = "requestStart"
	RequestIDKey ContextKey = "requestID"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
