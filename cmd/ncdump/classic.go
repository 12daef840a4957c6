package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-netcdf/netcdf"
)

func newExportCmd(a *app) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "export-classic FILE OUT",
		Short: "Write one group of FILE as a NetCDF classic file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportClassic(cmd.OutOrStdout(), args[0], args[1], group)
		},
	}
	cmd.Flags().StringVar(&group, "group", "/", "path of the group to export")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		group     string
		noClobber bool
	)
	cmd := &cobra.Command{
		Use:   "import-classic IN OUT",
		Short: "Create OUT from the NetCDF classic file IN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importClassic(cmd.OutOrStdout(), args[0], args[1], group, noClobber)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "import into a new subgroup of this name instead of the root")
	cmd.Flags().BoolVar(&noClobber, "no-clobber", false, "fail if OUT exists")
	return cmd
}

func (a *app) exportClassic(w io.Writer, in, out, group string) error {
	f, err := netcdf.Open(in, netcdf.ReadOnly, a.options(false)...)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := f.GroupByPath(group)
	if err != nil {
		return err
	}
	if err := netcdf.ExportClassic(g, out); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %s%s to %s\n", in, g.FullPath(), out)
	return nil
}

func (a *app) importClassic(w io.Writer, in, out, group string, noClobber bool) (err error) {
	mode := netcdf.Clobber
	if noClobber {
		mode = netcdf.NoClobber
	}
	f, err := netcdf.Create(out, mode, a.options(true)...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	g := f.Root()
	if group != "" {
		if g, err = f.AddGroup(group); err != nil {
			return err
		}
	}
	if err := netcdf.ImportClassic(g, in); err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %s into %s%s\n", in, out, g.FullPath())
	return nil
}
