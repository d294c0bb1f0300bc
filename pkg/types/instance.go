package types

import "time"

// InstanceState represents the lifecycle state of an EC2 instance
type InstanceState string

const (
	StatePending      InstanceState = "pending"
	StateRunning      InstanceState = "running"
	StateStopping     InstanceState = "stopping"
	StateStopped      InstanceState = "stopped"
	StateShuttingDown InstanceState = "shutting-down"
	StateTerminated   InstanceState = "terminated"
	StateUnknown      InstanceState = "unknown"
)

// Instance represents an EC2 instance
type Instance struct {
	ID         string
	Name       string // Name tag if set
	State      InstanceState
	Type       string // t3.micro, m5.large, ...
	AZ         string // availability zone
	PrivateIP  string
	PublicIP   string
	LaunchTime time.Time
	Tags       map[string]string
}

// IsRunning returns true if the instance is running
func (i *Instance) IsRunning() bool {
	return i.State == StateRunning
}

// IsStopped returns true if the instance is stopped
func (i *Instance) IsStopped() bool {
	return i.State == StateStopped
}
