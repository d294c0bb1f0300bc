package menu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/internal/ui"
	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

func (m *Menu) listBuckets(ctx context.Context) error {
	buckets, err := m.storage.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("listing buckets: %w", err)
	}
	if len(buckets) == 0 {
		m.log.Warningf("no buckets found")
		return nil
	}
	fmt.Fprint(m.out, ui.RenderBucketTable(buckets))
	m.log.Successf("listed %d buckets", len(buckets))
	return nil
}

// uploadFile validates the local file before any remote call is made,
// then the bucket, then transfers. The object key defaults to the base
// name of the local file.
func (m *Menu) uploadFile(ctx context.Context) error {
	local, err := m.prompt.ReadLine(ctx, "Local file path")
	if err != nil {
		return err
	}
	if local == "" {
		return errors.New("no file path given")
	}
	info, err := os.Stat(local)
	if err != nil {
		return fmt.Errorf("local file %s not found", local)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", local)
	}

	bucket, err := m.prompt.ReadLine(ctx, "Destination bucket")
	if err != nil {
		return err
	}
	if bucket == "" {
		return errors.New("no bucket given")
	}
	ok, err := m.storage.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist or is not accessible", bucket)
	}

	key, err := m.prompt.ReadLineDefault(ctx, "Object key", filepath.Base(local))
	if err != nil {
		return err
	}

	n, err := m.storage.Upload(ctx, bucket, key, local)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", local, err)
	}
	m.log.Successf("uploaded %s to s3://%s/%s (%s)", local, bucket, key, humanize.Bytes(uint64(n)))
	return nil
}

// downloadFile validates the bucket but not the key; a missing key
// surfaces from the transfer itself. The destination path defaults to
// the base name of the key.
func (m *Menu) downloadFile(ctx context.Context) error {
	bucket, err := m.prompt.ReadLine(ctx, "Source bucket")
	if err != nil {
		return err
	}
	if bucket == "" {
		return errors.New("no bucket given")
	}
	ok, err := m.storage.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist or is not accessible", bucket)
	}

	key, err := m.prompt.ReadLine(ctx, "Object key")
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("no object key given")
	}

	dest, err := m.prompt.ReadLineDefault(ctx, "Destination path", filepath.Base(key))
	if err != nil {
		return err
	}

	n, err := m.storage.Download(ctx, bucket, key, dest)
	if err != nil {
		return fmt.Errorf("downloading s3://%s/%s: %w", bucket, key, err)
	}
	m.log.Successf("downloaded s3://%s/%s to %s (%s)", bucket, key, dest, humanize.Bytes(uint64(n)))
	return nil
}

func (m *Menu) listInstances(ctx context.Context) error {
	instances, err := m.compute.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing instances: %w", err)
	}
	if len(instances) == 0 {
		m.log.Warningf("no instances found")
		return nil
	}
	fmt.Fprint(m.out, ui.RenderInstanceTable(instances))
	m.log.Successf("listed %d instances", len(instances))
	return nil
}

// instancePower fetches the current state before offering the action
// sub-menu. Start on a running instance and stop on a stopped one are
// warnings without a service call; reboot always issues the call.
func (m *Menu) instancePower(ctx context.Context) error {
	instances, err := m.compute.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing instances: %w", err)
	}
	if len(instances) == 0 {
		m.log.Warningf("no instances found")
		return nil
	}
	fmt.Fprint(m.out, ui.RenderInstanceTable(instances))

	target, err := m.prompt.ReadLine(ctx, "Instance ID or name")
	if err != nil {
		return err
	}
	if target == "" {
		return errors.New("no instance given")
	}
	inst, err := m.compute.Get(ctx, target)
	if err != nil {
		return fmt.Errorf("looking up instance %s: %w", target, err)
	}
	fmt.Fprintf(m.out, "  %s (%s) is %s\n", inst.ID, inst.Name, inst.State)

	if inst.State == types.StateTerminated || inst.State == types.StateShuttingDown {
		return fmt.Errorf("%w: instance %s is %s", provider.ErrNotSupported, inst.ID, inst.State)
	}

	action, err := m.prompt.ReadLine(ctx, "Action [1=start 2=stop 3=reboot 4=cancel]")
	if err != nil {
		return err
	}

	switch action {
	case "1":
		if inst.IsRunning() {
			m.log.Warningf("instance %s is already running", inst.ID)
			return nil
		}
		if err := m.compute.Start(ctx, inst.ID); err != nil {
			return fmt.Errorf("starting %s: %w", inst.ID, err)
		}
		m.log.Successf("start requested for %s", inst.ID)
	case "2":
		if inst.IsStopped() {
			m.log.Warningf("instance %s is already stopped", inst.ID)
			return nil
		}
		if err := m.compute.Stop(ctx, inst.ID); err != nil {
			return fmt.Errorf("stopping %s: %w", inst.ID, err)
		}
		m.log.Successf("stop requested for %s", inst.ID)
	case "3":
		if err := m.compute.Reboot(ctx, inst.ID); err != nil {
			return fmt.Errorf("rebooting %s: %w", inst.ID, err)
		}
		m.log.Successf("reboot requested for %s", inst.ID)
	case "4":
		m.log.Infof("no action taken for %s", inst.ID)
	default:
		return fmt.Errorf("invalid action %q: enter a number between 1 and 4", action)
	}
	return nil
}

func (m *Menu) viewLogs(ctx context.Context) error {
	entries, err := logging.Tail(m.log.Path(), m.logTail)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	if len(entries) == 0 {
		m.log.Warningf("log file is empty")
		return nil
	}
	fmt.Fprint(m.out, ui.RenderLogEntries(entries))
	m.log.Infof("displayed last %d log entries", len(entries))
	return nil
}
