package cli

import (
	"github.com/spf13/cobra"

	"github.com/resilientgo/core/pkg/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Exercise the registry and its lifecycle events",
}

var registryDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create entries, replace one, remove one, printing each lifecycle event",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := registry.New[string](
			registry.WithDefaultConfig("default-config"),
			registry.WithTags(map[string]string{"owner": "resiliencectl"}),
		)

		r.OnEntryAdded(func(e registry.EntryAdded) { printf("added   %s = %v\n", e.Name, e.Entry) })
		r.OnEntryReplaced(func(e registry.EntryReplaced) { printf("replaced %s: %v -> %v\n", e.Name, e.Old, e.New) })
		r.OnEntryRemoved(func(e registry.EntryRemoved) { printf("removed %s\n", e.Name) })

		for _, name := range []string{"payments", "inventory", "shipping"} {
			if _, err := r.ComputeIfAbsent(name, func(n string) (string, error) {
				return "instance-of-" + n, nil
			}); err != nil {
				return err
			}
		}

		if _, _, err := r.Replace("payments", "instance-of-payments-v2"); err != nil {
			return err
		}
		r.Remove("inventory")

		printf("remaining entries: %v\n", r.Values())
		return nil
	},
}

func init() {
	registryCmd.AddCommand(registryDemoCmd)
	rootCmd.AddCommand(registryCmd)
}
