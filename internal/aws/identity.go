package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

// AWSIdentityProvider implements the IdentityProvider interface over STS
type AWSIdentityProvider struct {
	client *Client
}

// NewIdentityProvider creates a new STS-backed identity provider
func NewIdentityProvider(client *Client) *AWSIdentityProvider {
	return &AWSIdentityProvider{client: client}
}

// WhoAmI returns the identity behind the configured credentials. It doubles
// as the credential-health probe: any error means the credentials are not
// usable.
func (p *AWSIdentityProvider) WhoAmI(ctx context.Context) (*types.CallerIdentity, error) {
	output, err := p.client.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrAuthFailed, err)
	}

	return &types.CallerIdentity{
		Account: deref(output.Account),
		Arn:     deref(output.Arn),
		UserID:  deref(output.UserId),
	}, nil
}
