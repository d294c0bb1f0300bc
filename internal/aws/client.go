package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/stratusctl/stratus/pkg/provider"
)

// Client bundles the EC2, S3 and STS service clients built from one
// shared credential resolution.
type Client struct {
	EC2 *ec2.Client
	S3  *s3.Client
	STS *sts.Client

	profile string
	region  string
}

// ClientOption customizes how the client resolves its configuration.
type ClientOption func(*Client)

// WithProfile selects a named profile from the shared AWS config files.
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion pins the region instead of letting the SDK resolve it.
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// NewClient resolves AWS configuration once and builds every service
// client from it. An empty profile or region falls through to the
// SDK's default resolution chain.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	var loadOpts []func(*config.LoadOptions) error
	if c.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(c.profile))
	}
	if c.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrNotConfigured, err)
	}

	// Keep whatever region the SDK settled on so the UI can show it.
	c.region = cfg.Region

	c.EC2 = ec2.NewFromConfig(cfg)
	c.S3 = s3.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}

// Profile returns the profile the client was built with.
func (c *Client) Profile() string {
	return c.profile
}

// Region returns the region the client resolved at construction.
func (c *Client) Region() string {
	return c.region
}
