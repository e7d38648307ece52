package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "NUTRIGUARD"
)

// Subjects published on NATS.
const (
	SubjectAlertCreated    = "nutriguard.alert.created"
	SubjectAlertCreatedAll = SubjectAlertCreated + ".*"
)
