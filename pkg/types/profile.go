package types

// AWSProfile is a profile parsed from the shared AWS config files
type AWSProfile struct {
	Name   string
	Region string // region from the config file, when set
	Source string // which shared file defined it: "credentials" or "config"
}
