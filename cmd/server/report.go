package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lknik/infoop-exposure-matrix/internal/export"
	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
)

var (
	reportComments string
	reportRaw      bool
	reportWidth    int
	stixOutput     string
)

var reportCmd = &cobra.Command{
	Use:   "report <opId>",
	Short: "Render an operation report in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opID, errMsg := middleware.ParseID(args[0], "opId")
		if errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}

		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		md, err := rt.services.Exports.Report(cmd.Context(), opID, reportComments)
		if err != nil {
			return err
		}
		if reportRaw {
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}

		out, err := export.RenderTerminal(md, reportWidth)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var exportSTIXCmd = &cobra.Command{
	Use:   "export-stix <opId>",
	Short: "Write an operation as a STIX 2.1 bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opID, errMsg := middleware.ParseID(args[0], "opId")
		if errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}

		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		bundle, err := rt.services.Exports.STIX(cmd.Context(), opID)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if stixOutput != "" {
			f, err := os.Create(stixOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportComments, "comments", "", "analyst comments to include")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "print Markdown instead of rendering it")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "word wrap width")
	exportSTIXCmd.Flags().StringVarP(&stixOutput, "output", "o", "", "write to file instead of stdout")
}
