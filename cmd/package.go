package cmd

import (
	"fmt"
	"strings"

	"sapcli/internal/adt"

	"github.com/spf13/cobra"
)

type packageOptions struct {
	superPackage      string
	softwareComponent string
	transportLayer    string
	appComponent      string
	packageType       string
	corrNr            string
}

var pkgOpts packageOptions

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Manage ABAP development packages",
}

var packageCreateCmd = &cobra.Command{
	Use:   "create <name> <description>",
	Short: "Create a new package",
	Args:  cobra.ExactArgs(2),
	RunE:  runPackageCreate,
}

func init() {
	rootCmd.AddCommand(packageCmd)
	packageCmd.AddCommand(packageCreateCmd)

	f := packageCreateCmd.Flags()
	f.StringVar(&pkgOpts.superPackage, "super-package", "", "parent package")
	f.StringVar(&pkgOpts.softwareComponent, "software-component", "LOCAL", "software component")
	f.StringVar(&pkgOpts.transportLayer, "transport-layer", "", "transport layer")
	f.StringVar(&pkgOpts.appComponent, "app-component", "", "application component")
	f.StringVar(&pkgOpts.packageType, "type", "development", "package type: development, structure or main")
	f.StringVar(&pkgOpts.corrNr, "corrnr", "", "transport request (correction number)")
}

func newPackage(conn adt.Connector, name, description string, opts packageOptions) *adt.Package {
	pkg := adt.NewPackage(conn, name, newCoreData(description))
	pkg.SetPackageType(opts.packageType)
	pkg.SetSoftwareComponent(opts.softwareComponent)
	if opts.superPackage != "" {
		pkg.SetSuperPackage(strings.ToUpper(opts.superPackage))
	}
	if opts.transportLayer != "" {
		pkg.SetTransportLayer(opts.transportLayer)
	}
	if opts.appComponent != "" {
		pkg.SetAppComponent(opts.appComponent)
	}
	return pkg
}

func runPackageCreate(cmd *cobra.Command, args []string) error {
	conn, err := openConnection()
	if err != nil {
		return err
	}

	name := strings.ToUpper(args[0])
	if _, err := newPackage(conn, name, args[1], pkgOpts).Create(cmd.Context(), pkgOpts.corrNr); err != nil {
		return fmt.Errorf("failed to create package %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created package %s\n", name)
	return nil
}
