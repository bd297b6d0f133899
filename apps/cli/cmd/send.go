package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqspec/packages/http"
)

// WatchDebounceDelay coalesces rapid editor write events into one re-run.
const WatchDebounceDelay = 250 * time.Millisecond

var (
	extractFlag  string
	watchFlag    bool
	insecureFlag bool
)

var sendCmd = &cobra.Command{
	Use:   "send <file>",
	Short: "Resolve a request file and execute it",
	Long: `Resolve a request file against the configured defaults and send it.

Examples:
  reqspec send create-user.yaml
  reqspec send create-user.yaml --extract user.id
  reqspec send create-user.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: sendCommand,
}

func init() {
	sendCmd.Flags().StringVar(&extractFlag, "extract", "", "print only this gjson path of the response body")
	sendCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-send whenever the request file changes")
	sendCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "skip SSL certificate validation")
}

func sendCommand(cmd *cobra.Command, args []string) error {
	file := args[0]
	client := http.NewClient(
		http.WithLogger(newLogger(cmd)),
		http.WithValidateSSL(!insecureFlag),
	)

	if err := sendOnce(cmd, client, file); err != nil {
		if !watchFlag {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}

	if !watchFlag {
		return nil
	}
	return watchAndResend(cmd, client, file)
}

func sendOnce(cmd *cobra.Command, client *http.Client, file string) error {
	resolved, err := resolveFile(file)
	if err != nil {
		return err
	}

	resp, err := client.Do(resolved)
	if err != nil {
		return err
	}

	if extractFlag != "" {
		value, err := resp.Extract(extractFlag)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	printResponse(cmd, resp)
	return nil
}

func printResponse(cmd *cobra.Command, resp *http.Response) {
	out := cmd.OutOrStdout()

	statusColor := color.New(color.FgGreen, color.Bold)
	switch resp.Class() {
	case http.ClassClientError, http.ClassServerError:
		statusColor = color.New(color.FgRed, color.Bold)
	case http.ClassRedirect:
		statusColor = color.New(color.FgYellow, color.Bold)
	}
	fmt.Fprintf(out, "%s (%dms)\n", statusColor.Sprint(resp.Status), resp.DurationMs())

	if verboseFlag {
		key := color.New(color.FgYellow)
		for k, v := range resp.Headers {
			fmt.Fprintf(out, "%s: %s\n", key.Sprint(k), v)
		}
	}

	if len(resp.Body) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, resp.BodyString())
	}
}

func watchAndResend(cmd *cobra.Command, client *http.Client, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", file)

	var debounceTimer *time.Timer
	target, _ := filepath.Abs(file)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if !event.Has(fsnotify.Write) || changed != target {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n\n", event.Name)
				if err := sendOnce(cmd, client, file); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
