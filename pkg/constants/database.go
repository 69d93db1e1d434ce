package constants

// Database status prefixes. The full status carries a health suffix, e.g. "running:healthy".
const (
	DatabaseStatusRunning = "running"
	DatabaseStatusExited  = "exited"
)

// Runtime environment variable keys propagated from the settings form
const (
	EnvRedisUsername = "REDIS_USERNAME"
	EnvRedisPassword = "REDIS_PASSWORD"
)

// RedisInternalPort is the port the database listens on inside the private network
const RedisInternalPort = 6379

// RedisUsernameMinVersion is the first Redis release with ACL users
const RedisUsernameMinVersion = "6.0"

// DefaultReportedVersion is used when the image reference carries no tag
const DefaultReportedVersion = "0.0"

// DatabaseLockKeyPrefix prefixes the Redis key that serializes operations on one database
const DatabaseLockKeyPrefix = "dbhost:lock:database:"
