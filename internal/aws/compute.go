package aws

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

// AWSComputeProvider implements the ComputeProvider interface over EC2
type AWSComputeProvider struct {
	client *Client
}

// NewComputeProvider creates a new EC2-backed compute provider
func NewComputeProvider(client *Client) *AWSComputeProvider {
	return &AWSComputeProvider{client: client}
}

// List returns EC2 instances matching the filter
func (p *AWSComputeProvider) List(ctx context.Context, filter *provider.InstanceFilter) ([]types.Instance, error) {
	// Build filters
	var filters []ec2types.Filter

	if filter != nil && len(filter.States) > 0 {
		values := make([]string, 0, len(filter.States))
		for _, s := range filter.States {
			values = append(values, string(s))
		}
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("instance-state-name"),
			Values: values,
		})
	}

	if filter != nil && filter.Name != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:Name"),
			Values: []string{"*" + filter.Name + "*"},
		})
	}

	input := &ec2.DescribeInstancesInput{}
	if len(filters) > 0 {
		input.Filters = filters
	}

	var instances []types.Instance
	paginator := ec2.NewDescribeInstancesPaginator(p.client.EC2, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}

	return instances, nil
}

// Get returns a single instance by ID or Name tag
func (p *AWSComputeProvider) Get(ctx context.Context, nameOrID string) (*types.Instance, error) {
	// Instance ID lookup
	if strings.HasPrefix(nameOrID, "i-") {
		output, err := p.client.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			InstanceIds: []string{nameOrID},
		})
		if err != nil {
			return nil, notFoundErr(nameOrID, err)
		}
		if len(output.Reservations) > 0 && len(output.Reservations[0].Instances) > 0 {
			inst := toInstance(output.Reservations[0].Instances[0])
			return &inst, nil
		}
		return nil, notFoundErr(nameOrID, nil)
	}

	// Name tag lookup, skipping terminated instances
	output, err := p.client.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag:Name"),
				Values: []string{nameOrID},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find instance: %w", err)
	}

	for _, reservation := range output.Reservations {
		for _, raw := range reservation.Instances {
			inst := toInstance(raw)
			if inst.State == types.StateTerminated {
				continue
			}
			return &inst, nil
		}
	}

	return nil, notFoundErr(nameOrID, nil)
}

// notFoundErr wraps ErrNotFound with the lookup target and, when the API
// call itself failed, the underlying cause.
func notFoundErr(nameOrID string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", provider.ErrNotFound, nameOrID, cause)
	}
	return fmt.Errorf("%w: %s", provider.ErrNotFound, nameOrID)
}

// Start starts a stopped instance
func (p *AWSComputeProvider) Start(ctx context.Context, id string) error {
	_, err := p.client.EC2.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("failed to start instance %s: %w", id, err)
	}
	return nil
}

// Stop stops a running instance
func (p *AWSComputeProvider) Stop(ctx context.Context, id string) error {
	_, err := p.client.EC2.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", id, err)
	}
	return nil
}

// Reboot reboots an instance
func (p *AWSComputeProvider) Reboot(ctx context.Context, id string) error {
	_, err := p.client.EC2.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("failed to reboot instance %s: %w", id, err)
	}
	return nil
}

// Connect opens an interactive SSM session to the instance. Interactive
// sessions need the session-manager plugin, so this stays a CLI shell-out.
func (p *AWSComputeProvider) Connect(ctx context.Context, id string) error {
	args := []string{"ssm", "start-session", "--target", id}

	if p.client.profile != "" {
		args = append(args, "--profile", p.client.profile)
	}

	if p.client.region != "" {
		args = append(args, "--region", p.client.region)
	}

	ssmCmd := exec.CommandContext(ctx, "aws", args...)
	ssmCmd.Stdin = os.Stdin
	ssmCmd.Stdout = os.Stdout
	ssmCmd.Stderr = os.Stderr

	return ssmCmd.Run()
}

// toInstance converts an EC2 API instance to the unified Instance type
func toInstance(i ec2types.Instance) types.Instance {
	inst := types.Instance{
		ID:    deref(i.InstanceId),
		Type:  string(i.InstanceType),
		State: types.StateUnknown,
		Tags:  make(map[string]string),
	}

	if i.State != nil {
		inst.State = toInstanceState(i.State.Name)
	}

	if i.PrivateIpAddress != nil {
		inst.PrivateIP = *i.PrivateIpAddress
	}

	if i.PublicIpAddress != nil {
		inst.PublicIP = *i.PublicIpAddress
	}

	if i.Placement != nil && i.Placement.AvailabilityZone != nil {
		inst.AZ = *i.Placement.AvailabilityZone
	}

	if i.LaunchTime != nil {
		inst.LaunchTime = *i.LaunchTime
	}

	// Extract tags
	for _, tag := range i.Tags {
		key := deref(tag.Key)
		inst.Tags[key] = deref(tag.Value)
		if key == "Name" {
			inst.Name = inst.Tags[key]
		}
	}

	return inst
}

// toInstanceState converts the EC2 state name to an InstanceState
func toInstanceState(state ec2types.InstanceStateName) types.InstanceState {
	switch state {
	case ec2types.InstanceStateNamePending:
		return types.StatePending
	case ec2types.InstanceStateNameRunning:
		return types.StateRunning
	case ec2types.InstanceStateNameStopping:
		return types.StateStopping
	case ec2types.InstanceStateNameStopped:
		return types.StateStopped
	case ec2types.InstanceStateNameShuttingDown:
		return types.StateShuttingDown
	case ec2types.InstanceStateNameTerminated:
		return types.StateTerminated
	default:
		return types.StateUnknown
	}
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
