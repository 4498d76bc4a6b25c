package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/oidkit/internal/registry"
)

// parseArcs converts command-line arguments to arcs. Each argument is one
// decimal arc; dotted strings are rejected.
func parseArcs(args []string) ([]uint32, error) {
	arcs := make([]uint32, len(args))
	for i, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, &registry.LoadError{
				Code:    registry.ErrCodeArcRange,
				Message: fmt.Sprintf("arc %d: %q is not an unsigned 32-bit integer (pass arcs as separate arguments)", i, arg),
				Err:     err,
			}
		}
		arcs[i] = uint32(n)
	}
	return arcs, nil
}

// resolveRegistryDir returns the directory argument, or the configured
// registry directory when none was given.
func resolveRegistryDir(opts *RootOptions, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if dir := opts.cfg().Registry; dir != "" {
		return dir, nil
	}
	return "", errors.New("no registry directory given and none configured")
}

// loadRegistry loads a registry directory and logs what was found.
func loadRegistry(opts *RootOptions, dir string, mode registry.LoadMode) (*registry.LoadResult, []error) {
	log := opts.logger()
	log.Debug("loading registry", "dir", dir, "collect_all", mode == registry.LoadModeCollectAll)

	result, errs := registry.LoadDir(dir, mode)
	if result != nil {
		for _, f := range result.Files {
			log.Debug("registry file", "path", f, "format", registry.FormatOf(f))
		}
	}
	if len(errs) > 0 {
		log.Debug("registry load failed", "dir", dir, "errors", len(errs))
	}
	return result, errs
}

// errorParts extracts error code and message from an error.
func errorParts(err error) (string, string) {
	var loadErr *registry.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return registry.ErrCodeGeneric, err.Error()
}

// LoadErrorDetail is the JSON form of one registry error.
type LoadErrorDetail struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Position string `json:"position,omitempty"`
}

func loadErrorDetails(errs []error) []LoadErrorDetail {
	details := make([]LoadErrorDetail, len(errs))
	for i, err := range errs {
		code, message := errorParts(err)
		details[i] = LoadErrorDetail{Code: code, Message: message}
		var loadErr *registry.LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			details[i].Position = loadErr.Pos.String()
		}
	}
	return details
}

// outputLoadErrors reports registry errors. The exit code is exitCode.
func outputLoadErrors(formatter *OutputFormatter, title string, exitCode int, errs []error) error {
	details := loadErrorDetails(errs)
	summary := fmt.Sprintf("%s with %d error(s)", title, len(errs))

	if formatter.Format == "json" {
		_ = formatter.Error(details[0].Code, details[0].Message, details)
		return reported(NewExitError(exitCode, summary))
	}

	fmt.Fprintf(formatter.Writer, "✗ %s\n\n", title)
	for _, d := range details {
		if d.Position != "" {
			fmt.Fprintln(formatter.Writer, d.Position)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", d.Code, d.Message)
	}
	return reported(NewExitError(exitCode, summary))
}

// outputDirError reports a registry directory that could not be used at all.
func outputDirError(formatter *OutputFormatter, errs []error) error {
	code, message := errorParts(errs[0])
	return formatter.fail(ExitCommandError, code, message, nil)
}
