package types

// CallerIdentity describes the AWS identity behind the configured credentials
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}
