package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// validatePattern matches every file a registered validator understands.
// It is matched case-insensitively, like the registry's extensions.
const validatePattern = "**/*.{html,htm,css,js,yaml,yml}"

// errValidationFailed signals that at least one file had errors.
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a theme directory",
	Long: `Run the file validators over every template, stylesheet, script and
config file below dir (default: the configured workspace) and check
theme.yaml against the configured platform version.

Exits non-zero when any file has errors. Warnings are reported but do not
fail the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("theme.workspace_dir")
	if len(args) == 1 {
		dir = args[0]
	}

	msg := i18n.New(viper.GetString("notifications.locale"))
	failed, err := validateTree(cmd.OutOrStdout(), os.DirFS(dir),
		validation.NewDefaultRegistry(msg),
		validation.NewDescriptorValidator(msg, viper.GetString("theme.platform_version")))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d file(s) with errors", errValidationFailed, failed)
	}
	return nil
}

// validateTree validates every matching file in fsys and reports the results
// to w. It returns the number of files with errors.
func validateTree(
	w io.Writer,
	fsys fs.FS,
	files *validation.Registry,
	descriptors *validation.DescriptorValidator,
) (int, error) {
	matches, err := doublestar.Glob(fsys, validatePattern, doublestar.WithCaseInsensitive(), doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("listing theme files: %w", err)
	}
	sort.Strings(matches)

	failed := 0
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return failed, fmt.Errorf("reading %s: %w", name, err)
		}

		var result models.ValidationResult
		if path.Base(name) == models.DescriptorFileName {
			_, result = descriptors.ValidateDocument(data)
		} else {
			result = files.Validate(name, string(data))
		}

		if !result.Valid {
			failed++
		}
		report(w, name, result)
	}

	fmt.Fprintf(w, "%d file(s) checked, %d with errors\n", len(matches), failed)
	return failed, nil
}

func report(w io.Writer, name string, result models.ValidationResult) {
	status := "ok"
	if !result.Valid {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%-4s %s\n", status, name)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "     error: %s\n", e)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "     warning: %s\n", warning)
	}
}
