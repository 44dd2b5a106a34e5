package cli

import (
	"context"
	"fmt"

	"github.com/fakhrymubarak/forecast/internal/service"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the forecast command. A nil svc is replaced by the
// default service when the command runs, so flag parsing and --help never
// touch the configuration.
func NewRootCmd(svc service.ForecastServiceInterface) *cobra.Command {
	var days uint8

	cmd := &cobra.Command{
		Use:           "forecast",
		Short:         "Weather in the terminal!",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if svc == nil {
				svc = service.NewForecastService()
			}
			summary, err := svc.Run(cmd.Context(), days)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}
	cmd.Flags().Uint8VarP(&days, "days", "d", 0, "Number of days for the forecast.")

	return cmd
}

// Execute runs the forecast command with the given arguments (without the
// program name).
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd(nil)
	// cobra reads os.Args when given nil.
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(ctx)
}
