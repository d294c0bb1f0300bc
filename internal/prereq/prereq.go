package prereq

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

// CheckResult is the outcome of one prerequisite check. The credentials
// check fills Identity on success.
type CheckResult struct {
	Name     string
	OK       bool
	Detail   string
	Remedy   string
	Identity *types.CallerIdentity
}

// Checker verifies the environment before the menu starts: the aws
// executable on PATH and credentials that pass the identity probe. Neither
// failure is retried; both need out-of-band action.
type Checker struct {
	identity provider.IdentityProvider
	profile  string

	// lookPath is swappable in tests
	lookPath func(file string) (string, error)
}

// New creates a checker for the given identity probe and profile
func New(identity provider.IdentityProvider, profile string) *Checker {
	return &Checker{
		identity: identity,
		profile:  profile,
		lookPath: exec.LookPath,
	}
}

// Run executes every check and returns all results. err is non-nil when any
// check failed; the first failing result carries the remediation text.
func (c *Checker) Run(ctx context.Context) ([]CheckResult, error) {
	results := []CheckResult{
		c.checkCLI(),
		c.checkCredentials(ctx),
	}

	for _, r := range results {
		if !r.OK {
			return results, fmt.Errorf("prerequisite %s failed: %s", r.Name, r.Detail)
		}
	}

	return results, nil
}

func (c *Checker) checkCLI() CheckResult {
	r := CheckResult{Name: "aws cli"}

	path, err := c.lookPath("aws")
	if err != nil {
		r.Detail = "aws executable not found on PATH"
		r.Remedy = "run 'stratus setup' or install the AWS CLI (https://aws.amazon.com/cli/)"
		return r
	}

	r.OK = true
	r.Detail = path
	return r
}

func (c *Checker) checkCredentials(ctx context.Context) CheckResult {
	r := CheckResult{Name: "credentials"}

	ident, err := c.identity.WhoAmI(ctx)
	if err != nil {
		r.Detail = err.Error()
		r.Remedy = c.credentialRemedy()
		return r
	}

	r.OK = true
	r.Identity = ident
	r.Detail = fmt.Sprintf("account %s (%s)", ident.Account, ident.Arn)
	return r
}

func (c *Checker) credentialRemedy() string {
	if c.profile != "" {
		return fmt.Sprintf("run 'aws configure --profile %s' or 'aws sso login --profile %s'", c.profile, c.profile)
	}
	return "run 'aws configure' to set up credentials"
}
