// Package tidy runs a sort of one directory: scan, provision folders,
// move files, report. The steps never interleave; the scan is finished
// before anything on disk changes.
package tidy

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/mainbong/tidyup/internal/config"
	"github.com/mainbong/tidyup/internal/filesystem"
	"github.com/mainbong/tidyup/internal/folders"
	"github.com/mainbong/tidyup/internal/logger"
	"github.com/mainbong/tidyup/internal/mover"
	"github.com/mainbong/tidyup/internal/report"
	"github.com/mainbong/tidyup/internal/scanner"
	"github.com/mainbong/tidyup/internal/terminal"
)

// ErrLocked is returned when another run holds the lock for the same root.
var ErrLocked = errors.New("another tidyup run is already sorting this directory")

// Runner wires the scanner, provisioner and executor together
type Runner struct {
	scanner     *scanner.Scanner
	provisioner *folders.Provisioner
	executor    *mover.Executor
	reports     *report.Writer
	printer     *terminal.Printer
	lockDir     string
}

// NewRunner creates a runner on the OS file system. Lock files live in
// the OS temp directory so they never show up in a scan.
func NewRunner(printer *terminal.Printer) *Runner {
	return &Runner{
		scanner:     scanner.NewScanner(),
		provisioner: folders.NewProvisioner(),
		executor:    mover.NewExecutor(),
		reports:     report.NewWriter(),
		printer:     printer,
		lockDir:     os.TempDir(),
	}
}

// NewRunnerWithFS creates a runner with a custom FileSystem (for testing)
func NewRunnerWithFS(fs filesystem.FileSystem, printer *terminal.Printer, lockDir string) *Runner {
	return &Runner{
		scanner:     scanner.NewScannerWithFS(fs),
		provisioner: folders.NewProvisionerWithFS(fs),
		executor:    mover.NewExecutorWithFS(fs),
		reports:     report.NewWriterWithFS(fs),
		printer:     printer,
		lockDir:     lockDir,
	}
}

// LockPath returns the lock file used for root
func (r *Runner) LockPath(root string) string {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(root))
	return filepath.Join(r.lockDir, fmt.Sprintf("tidyup-%08x.lock", hasher.Sum32()))
}

// Run sorts opts.Root. Per-file move failures are reported but do not
// make Run fail; an unreadable root, a folder that cannot be provisioned,
// a held lock or a report that cannot be written do. When a report path
// is set the report is written even if the run stopped early.
func (r *Runner) Run(opts *config.Options) (*report.Report, error) {
	lock := flock.New(r.LockPath(opts.Root))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release lock %s: %v", lock.Path(), err)
		}
	}()

	rep := report.New(opts.Root)
	rep.DryRun = opts.DryRun
	runErr := r.run(opts, rep)
	rep.Finish()

	if opts.ReportPath != "" {
		if err := r.reports.Write(opts.ReportPath, rep); err != nil {
			logger.Error("report write failed: %v", err)
			return rep, errors.Join(runErr, err)
		}
		logger.Info("report written to %s", opts.ReportPath)
	}
	return rep, runErr
}

func (r *Runner) run(opts *config.Options, rep *report.Report) error {
	root := opts.Root
	logger.Info("run %s: scanning %s", rep.ID, root)

	// tidyup's own output must never be sorted along with the user's files
	result, err := r.scanner.Scan(root, r.ownPaths(opts)...)
	if err != nil {
		logger.Error("scan failed: %v", err)
		return err
	}
	rep.Groups = result.Groups
	rep.Notices = result.Notices

	for _, n := range result.Notices {
		logger.Info("%s", n.Message())
		r.printer.Notice(n.Message())
	}
	logger.Debug("found %d files in %d groups", result.FileCount(), len(result.Groups))

	if opts.DryRun {
		r.printPlan(root, result)
		return nil
	}

	outcomes, err := r.provisioner.Ensure(root, result.Extensions())
	rep.Folders = outcomes
	for _, o := range outcomes {
		if o.Status == folders.StatusCreated {
			r.printer.Success(o.Message())
		} else {
			r.printer.Info(o.Message())
		}
	}
	if err != nil {
		logger.Error("folder provisioning failed: %v", err)
		return err
	}

	rep.Moves = r.executor.MoveAll(root, result.Groups, func(res mover.Result) {
		if res.Status == mover.StatusFailed {
			logger.Info("%s", res.Message())
			r.printer.Failure(res.Message())
			return
		}
		logger.Debug("%s", res.Message())
		r.printer.Success(res.Message())
	})

	counts := mover.Tally(rep.Moves)
	logger.Info("run %s: %d moved, %d failed, %d skipped", rep.ID, counts.Moved, counts.Failed, len(result.Notices))
	r.printer.Info(fmt.Sprintf("Finished sorting files in `%s` according to their extensions.", root))
	return nil
}

// ownPaths lists the files and folders a run writes itself
func (r *Runner) ownPaths(opts *config.Options) []string {
	paths := []string{r.LockPath(opts.Root)}
	if opts.LogDir != "" {
		paths = append(paths, opts.LogDir)
	}
	if opts.ReportPath != "" {
		paths = append(paths, opts.ReportPath)
	}
	return paths
}

func (r *Runner) printPlan(root string, result *scanner.Result) {
	rows := make([]terminal.PlanRow, 0, result.FileCount())
	for _, group := range result.Groups {
		for _, path := range group.Paths {
			rows = append(rows, terminal.PlanRow{
				Extension:   group.Extension,
				Source:      path,
				Destination: mover.Destination(root, group.Extension, path),
			})
		}
	}
	if len(rows) > 0 {
		r.printer.Plain(terminal.RenderPlan(rows))
	}
	r.printer.Info(fmt.Sprintf("Dry run: %d files would be sorted into %d folders in `%s`.", len(rows), len(result.Groups), root))
}
