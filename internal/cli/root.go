package cli

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "glovebox",
	Short:         "Vehicle paperwork and expense tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = rootCmd.ErrOrStderr().Write([]byte(Error("error: "+err.Error()) + "\n"))
	}
	return err
}
