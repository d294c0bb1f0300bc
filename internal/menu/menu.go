package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/internal/ui"
	"github.com/stratusctl/stratus/pkg/provider"
)

// ErrInterrupted is returned by Run when the session is cancelled by a
// signal rather than by the exit choice.
var ErrInterrupted = errors.New("interrupted")

const defaultLogTail = 20

// Options configures an interactive session
type Options struct {
	Storage provider.StorageProvider
	Compute provider.ComputeProvider
	Logger  *logging.Logger
	In      io.Reader
	Out     io.Writer
	Profile string
	Region  string
	Version string
	LogTail int
}

// Menu drives the read-eval loop over the fixed set of operations
type Menu struct {
	storage provider.StorageProvider
	compute provider.ComputeProvider
	log     *logging.Logger
	prompt  *Prompter
	out     io.Writer
	profile string
	region  string
	version string
	logTail int
}

// New creates a menu session from the given options
func New(opts Options) *Menu {
	logTail := opts.LogTail
	if logTail <= 0 {
		logTail = defaultLogTail
	}
	return &Menu{
		storage: opts.Storage,
		compute: opts.Compute,
		log:     opts.Logger,
		prompt:  NewPrompter(opts.In, opts.Out),
		out:     opts.Out,
		profile: opts.Profile,
		region:  opts.Region,
		version: opts.Version,
		logTail: logTail,
	}
}

// Run repeatedly renders the menu and dispatches the chosen operation.
// Handler errors are reported and the loop continues. The loop ends on
// the exit choice or end of input; cancellation ends it with
// ErrInterrupted.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprint(m.out, ui.RenderBanner(m.version))

	for {
		fmt.Fprintln(m.out)
		fmt.Fprint(m.out, ui.RenderMenu(m.profile, m.region, Labels()))

		line, err := m.prompt.ReadLine(ctx, fmt.Sprintf("Select an option [1-%d]", int(ChoiceExit)))
		if err != nil {
			return m.finish(err)
		}

		choice, err := ParseChoice(line)
		if err != nil {
			m.log.Errorf("%v", err)
			continue
		}

		if choice == ChoiceExit {
			m.log.Successf("goodbye")
			return nil
		}

		if err := m.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) || isCancelled(err) {
				return m.finish(err)
			}
			m.log.Errorf("%v", err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoiceListBuckets:
		return m.listBuckets(ctx)
	case ChoiceUploadFile:
		return m.uploadFile(ctx)
	case ChoiceDownloadFile:
		return m.downloadFile(ctx)
	case ChoiceListInstances:
		return m.listInstances(ctx)
	case ChoiceInstancePower:
		return m.instancePower(ctx)
	case ChoiceViewLogs:
		return m.viewLogs(ctx)
	case ChoiceExit:
		return nil
	}
	return fmt.Errorf("invalid option %d", int(choice))
}

// finish translates the terminal read error into the session result:
// end of input is a normal exit, cancellation maps to ErrInterrupted.
func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		m.log.Infof("input closed, exiting")
		return nil
	}
	if isCancelled(err) {
		m.log.Warningf("interrupted, exiting")
		return ErrInterrupted
	}
	return err
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
