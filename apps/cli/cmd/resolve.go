package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqspec/packages/core/spec"
	"github.com/abdul-hamid-achik/reqspec/packages/specfile"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve a request file and print the final request",
	Long: `Resolve a request file against the configured defaults and print the
request exactly as it would go on the wire, without sending it.

Examples:
  reqspec resolve create-user.yaml
  reqspec resolve create-user.yaml --config staging.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: resolveCommand,
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	resolved, err := resolveFile(args[0])
	if err != nil {
		return err
	}
	printResolved(cmd.OutOrStdout(), resolved)
	return nil
}

func resolveFile(path string) (*spec.ResolvedRequest, error) {
	f, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Spec()
	if err != nil {
		return nil, err
	}
	// Report every missing path param up front; Resolve alone would
	// stop at the first.
	if missing := s.MissingPathParams(); len(missing) > 0 {
		return nil, fmt.Errorf("path %s is missing params: %s", f.Path, strings.Join(missing, ", "))
	}
	return s.Resolve()
}

func printResolved(w io.Writer, r *spec.ResolvedRequest) {
	method := color.New(color.FgCyan, color.Bold)
	key := color.New(color.FgYellow)

	fmt.Fprintf(w, "%s %s\n", method.Sprint(r.Method), r.AbsoluteURL)
	for _, h := range r.Headers {
		fmt.Fprintf(w, "%s: %s\n", key.Sprint(h.Name), h.Value)
	}
	if r.Auth != nil {
		fmt.Fprintf(w, "%s: basic %s:****\n", key.Sprint("Auth"), r.Auth.User)
	}
	fmt.Fprintf(w, "%s: %s  %s: %v\n",
		key.Sprint("Timeout"), r.Timeout, key.Sprint("FollowRedirects"), r.FollowRedirects)

	if r.HasBody() {
		fmt.Fprintln(w)
		if utf8.Valid(r.Body) {
			fmt.Fprintln(w, string(r.Body))
		} else {
			fmt.Fprintf(w, "<%d bytes of binary body>\n", len(r.Body))
		}
	}
}
