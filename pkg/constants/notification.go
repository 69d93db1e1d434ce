package constants

// NotificationLevel is the severity of a message surfaced to the caller
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

func (l NotificationLevel) String() string {
	return string(l)
}

// User facing messages emitted by the database settings controller
const (
	MsgPublicPortRequired   = "Public port is required."
	MsgDatabaseNotRunning   = "Database must be started to be publicly accessible."
	MsgNowPublic            = "Database is now publicly accessible."
	MsgNoLongerPublic       = "Database is no longer publicly accessible."
	MsgDatabaseUpdated      = "Database updated."
	MsgRestartRequired      = "You need to restart the service for the changes to take effect."
	MsgLogDrainNotSupported = "Log drain is not enabled on the server. Please enable it first."
)
