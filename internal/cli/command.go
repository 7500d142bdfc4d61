package cli

import "github.com/spf13/cobra"

type BoolFlag struct {
	Name    string
	Usage   string
	Default bool
}

type StringFlag struct {
	Name    string
	Usage   string
	Default string
}

// LeafCommand declares a runnable command and its flags.
type LeafCommand struct {
	Use       string
	Short     string
	Args      cobra.PositionalArgs
	BoolFlags []BoolFlag
	StrFlags  []StringFlag
	RunE      func(cmd *cobra.Command, args []string) error
}

func (lc LeafCommand) Build() *cobra.Command {
	cmd := &cobra.Command{
		Use:   lc.Use,
		Short: lc.Short,
		Args:  lc.Args,
		RunE:  lc.RunE,
	}
	for _, f := range lc.BoolFlags {
		cmd.Flags().Bool(f.Name, f.Default, f.Usage)
	}
	for _, f := range lc.StrFlags {
		cmd.Flags().String(f.Name, f.Default, f.Usage)
	}
	return cmd
}
